package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForKind maps an error kind to the HTTP status returned to clients.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindStructural:
		return http.StatusBadRequest
	case apperrors.KindBusinessRule:
		return http.StatusUnprocessableEntity
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// errorBody builds the JSON error payload, adding the details carried by typed errors.
func errorBody(err error, kind apperrors.Kind) gin.H {
	body := gin.H{"error": err.Error(), "kind": kind}

	var balanceErr *apperrors.BalanceError
	if errors.As(err, &balanceErr) {
		body["totalDebit"] = balanceErr.TotalDebit
		body["totalCredit"] = balanceErr.TotalCredit
	}
	var entryErr *apperrors.EntryError
	if errors.As(err, &entryErr) {
		body["entryIndex"] = entryErr.Index
	}
	var transitionErr *apperrors.TransitionError
	if errors.As(err, &transitionErr) {
		body["from"] = transitionErr.From
		body["to"] = transitionErr.To
	}
	return body
}

// respondError writes err with the status of its kind. Internal errors are
// logged in full and hidden behind a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	if kind == apperrors.KindInternal {
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failureMsg, "kind": kind})
		return
	}

	logger.Warn(failureMsg, slog.String("error", err.Error()), slog.String("kind", string(kind)))
	c.JSON(status, errorBody(err, kind))
}
