package domain

import (
	"fmt"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
)

// transitions lists the forward moves allowed from each status.
var transitions = map[VoucherStatus][]VoucherStatus{
	StatusDraft:      {StatusPending, StatusApproved, StatusCancelled, StatusRejected},
	StatusPending:    {StatusApproved, StatusCancelled, StatusRejected},
	StatusApproved:   {StatusCompleted, StatusReconciled},
	StatusReconciled: {StatusCompleted},
}

// CanTransition reports whether current -> target is an allowed move.
// It does not look at voucher contents; see Apply for the full check.
func CanTransition(current, target VoucherStatus) bool {
	for _, next := range transitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
func (s VoucherStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// IsEditable reports whether entries and amounts may still change.
func (s VoucherStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusPending
}

// requiresBalance reports whether entering s re-runs the entry validator.
func (s VoucherStatus) requiresBalance() bool {
	return s == StatusApproved || s == StatusReconciled || s == StatusCompleted
}

// EnsureEditable returns ErrVoucherLocked unless the voucher is in draft or pending.
func (v Voucher) EnsureEditable() error {
	if !v.Status.IsEditable() {
		return fmt.Errorf("%w: voucher %s is %s", apperrors.ErrVoucherLocked, v.VoucherID, v.Status)
	}
	return nil
}

// Apply moves the voucher to target and returns the updated copy.
// Moving into approved or later re-validates the entries, and reconciled
// is only reachable for vouchers carrying a ReconciliationRecord.
func Apply(v Voucher, target VoucherStatus) (Voucher, error) {
	if !target.IsValid() || !CanTransition(v.Status, target) {
		return v, &apperrors.TransitionError{From: string(v.Status), To: string(target)}
	}
	if target == StatusReconciled && v.Reconciliation == nil {
		return v, fmt.Errorf("%w: voucher %s has no reconciliation record",
			&apperrors.TransitionError{From: string(v.Status), To: string(target)}, v.VoucherID)
	}
	if target.requiresBalance() {
		if err := ValidateVoucherEntries(v); err != nil {
			return v, err
		}
	}
	v.Status = target
	return v, nil
}
