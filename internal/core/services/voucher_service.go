package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/SscSPs/voucher_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// relatedRefTypes are the record kinds a voucher may point at.
var relatedRefTypes = map[string]bool{"Purchase": true, "Sale": true, "Payment": true, "Voucher": true}

type voucherService struct {
	BaseService
	voucherRepo portsrepo.VoucherRepositoryFacade
	resolver    portssvc.AccountResolverSvc
	conversion  portssvc.ConversionSvc
	numbering   portssvc.NumberingSvc
	attachments portsrepo.AttachmentStore
}

// NewVoucherService creates the voucher service. attachments may be nil when
// no blob store is configured; uploads then fail with an internal error.
func NewVoucherService(
	voucherRepo portsrepo.VoucherRepositoryFacade,
	resolver portssvc.AccountResolverSvc,
	conversion portssvc.ConversionSvc,
	numbering portssvc.NumberingSvc,
	attachments portsrepo.AttachmentStore,
) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo: voucherRepo,
		resolver:    resolver,
		conversion:  conversion,
		numbering:   numbering,
		attachments: attachments,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	v, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get voucher", slog.String("voucher_id", voucherID))
		}
		return nil, err
	}
	return v, nil
}

func (s *voucherService) CanTransition(from, to domain.VoucherStatus) bool {
	return domain.CanTransition(from, to)
}

// CreateVoucher runs every check before anything is written, so a failure
// leaves no voucher behind. A consumed number may leave a gap in the sequence.
func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := s.GetLogger(ctx).With(slog.String("voucher_type", string(req.VoucherType)))

	if !req.VoucherType.IsValid() {
		return nil, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, req.VoucherType)
	}

	v, err := s.buildContent(ctx, req.VoucherType, req.VoucherBody)
	if err != nil {
		logger.Warn("Voucher rejected", slog.String("error", err.Error()))
		return nil, err
	}
	v.VoucherType = req.VoucherType

	if req.Reconciliation != nil {
		if req.VoucherType != domain.ReconciliationVoucher {
			return nil, fmt.Errorf("%w: only reconciliation vouchers carry a reconciliation record", apperrors.ErrValidation)
		}
		record, err := s.checkedRecord(ctx, *req.Reconciliation)
		if err != nil {
			return nil, err
		}
		v.Reconciliation = &record
	}

	if err := domain.ValidateVoucherEntries(v); err != nil {
		logger.Warn("Voucher entries failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	number, err := s.numbering.NextNumber(ctx, req.VoucherType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v.VoucherID = uuid.NewString()
	v.VoucherNumber = number.Number
	v.ReferCode = number.ReferCode
	v.Status = domain.StatusDraft
	if req.Submit {
		v.Status = domain.StatusPending
	}
	for i := range v.Entries {
		v.Entries[i].EntryID = uuid.NewString()
	}
	v.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
		Version:       1,
	}

	if err := s.voucherRepo.SaveVoucher(ctx, v); err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()), slog.String("refer_code", v.ReferCode))
		return nil, fmt.Errorf("failed to save voucher %s: %w", v.ReferCode, err)
	}

	logger.Info("Voucher created",
		slog.String("voucher_id", v.VoucherID),
		slog.String("refer_code", v.ReferCode),
		slog.String("status", string(v.Status)))
	return &v, nil
}

func (s *voucherService) UpdateVoucherEntries(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	existing, err := s.loadForWrite(ctx, voucherID, req.Version)
	if err != nil {
		return nil, err
	}
	if err := existing.EnsureEditable(); err != nil {
		return nil, err
	}

	content, err := s.buildContent(ctx, existing.VoucherType, req.VoucherBody)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.VoucherDate = content.VoucherDate
	updated.CurrencyCode = content.CurrencyCode
	updated.CurrencyPrecision = content.CurrencyPrecision
	updated.ExchangeRate = content.ExchangeRate
	updated.Amount = content.Amount
	updated.ConvertedAmount = content.ConvertedAmount
	updated.CommissionPercentage = content.CommissionPercentage
	updated.CommissionAmount = content.CommissionAmount
	updated.Entries = content.Entries
	updated.RelatedRefs = content.RelatedRefs
	updated.Description = content.Description
	updated.Notes = content.Notes
	for i := range updated.Entries {
		updated.Entries[i].EntryID = uuid.NewString()
	}

	if err := domain.ValidateVoucherEntries(updated); err != nil {
		return nil, err
	}

	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID
	if err := s.voucherRepo.UpdateVoucher(ctx, updated, req.Version); err != nil {
		return nil, s.writeFailed(ctx, err, "Failed to update voucher entries", voucherID)
	}
	updated.Version = req.Version + 1

	s.LogInfo(ctx, "Voucher entries updated", slog.String("voucher_id", voucherID), slog.Int64("version", updated.Version))
	return &updated, nil
}

func (s *voucherService) TransitionVoucher(ctx context.Context, voucherID string, req dto.TransitionRequest, userID string) (*domain.Voucher, error) {
	existing, err := s.loadForWrite(ctx, voucherID, req.Version)
	if err != nil {
		return nil, err
	}

	updated, err := domain.Apply(*existing, req.Target)
	if err != nil {
		s.LogInfo(ctx, "Transition refused",
			slog.String("voucher_id", voucherID),
			slog.String("from", string(existing.Status)),
			slog.String("to", string(req.Target)),
			slog.String("error", err.Error()))
		return nil, err
	}

	if req.Target == domain.StatusReconciled {
		result := accounting.ReconcileRecord(*existing.Reconciliation, nil, existing.CurrencyPrecision)
		if !result.Balanced {
			return nil, fmt.Errorf("%w: reconciliation residual is %s",
				&apperrors.TransitionError{From: string(existing.Status), To: string(req.Target)},
				result.Residual.String())
		}
	}

	now := time.Now().UTC()
	if err := s.voucherRepo.UpdateVoucherStatus(ctx, voucherID, updated.Status, req.Version, userID, now); err != nil {
		return nil, s.writeFailed(ctx, err, "Failed to update voucher status", voucherID)
	}
	updated.Version = req.Version + 1
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	s.LogInfo(ctx, "Voucher transitioned",
		slog.String("voucher_id", voucherID),
		slog.String("from", string(existing.Status)),
		slog.String("to", string(updated.Status)))
	return &updated, nil
}

func (s *voucherService) AttachReconciliation(ctx context.Context, voucherID string, req dto.AttachReconciliationRequest, userID string) (*domain.Voucher, error) {
	existing, err := s.loadForWrite(ctx, voucherID, req.Version)
	if err != nil {
		return nil, err
	}
	if existing.VoucherType != domain.ReconciliationVoucher {
		return nil, fmt.Errorf("%w: voucher %s is a %s voucher", apperrors.ErrValidation, voucherID, existing.VoucherType)
	}
	if err := existing.EnsureEditable(); err != nil {
		return nil, err
	}

	record, err := s.checkedRecord(ctx, req.Record)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.voucherRepo.SaveReconciliation(ctx, voucherID, record, req.Version, userID, now); err != nil {
		return nil, s.writeFailed(ctx, err, "Failed to save reconciliation record", voucherID)
	}

	updated := *existing
	updated.Reconciliation = &record
	updated.Version = req.Version + 1
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID
	return &updated, nil
}

func (s *voucherService) UploadAttachment(ctx context.Context, voucherID string, file dto.UploadAttachmentInput, userID string) (*domain.Attachment, error) {
	if s.attachments == nil {
		return nil, fmt.Errorf("%w: attachment storage is not configured", apperrors.ErrInternal)
	}
	if len(file.Content) == 0 {
		return nil, fmt.Errorf("%w: attachment is empty", apperrors.ErrValidation)
	}
	if _, err := s.voucherRepo.FindVoucherByID(ctx, voucherID); err != nil {
		return nil, err
	}

	name := path.Base(strings.ReplaceAll(file.Name, "\\", "/"))
	key := fmt.Sprintf("vouchers/%s/%s-%s", voucherID, uuid.NewString(), name)
	url, err := s.attachments.Upload(ctx, key, bytes.NewReader(file.Content), int64(len(file.Content)), file.ContentType)
	if err != nil {
		s.LogError(ctx, err, "Failed to upload attachment", slog.String("voucher_id", voucherID), slog.String("key", key))
		return nil, fmt.Errorf("failed to upload attachment %s: %w", name, err)
	}

	attachment := domain.Attachment{Name: name, URL: url, Type: file.ContentType}
	if err := s.voucherRepo.AddAttachment(ctx, voucherID, attachment); err != nil {
		return nil, s.writeFailed(ctx, err, "Failed to link attachment", voucherID)
	}

	s.LogInfo(ctx, "Attachment uploaded",
		slog.String("voucher_id", voucherID),
		slog.String("key", key),
		slog.String("uploaded_by", userID))
	return &attachment, nil
}

// loadForWrite fetches the voucher and rejects a stale version before any work is done.
func (s *voucherService) loadForWrite(ctx context.Context, voucherID string, version int64) (*domain.Voucher, error) {
	existing, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if existing.Version != version {
		return nil, fmt.Errorf("%w: voucher %s is at version %d, request carried %d",
			apperrors.ErrConcurrentModification, voucherID, existing.Version, version)
	}
	return existing, nil
}

func (s *voucherService) writeFailed(ctx context.Context, err error, msg, voucherID string) error {
	if errors.Is(err, apperrors.ErrConcurrentModification) {
		s.LogInfo(ctx, msg, slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
		return err
	}
	s.LogError(ctx, err, msg, slog.String("voucher_id", voucherID))
	return fmt.Errorf("%s: %w", strings.ToLower(msg), err)
}

// buildContent turns the request body into voucher content: resolved entries,
// converted amounts and checked related refs. It does not run the balance check;
// entry amounts are held to the currency precision there.
func (s *voucherService) buildContent(ctx context.Context, voucherType domain.VoucherType, body dto.VoucherBody) (domain.Voucher, error) {
	entries, amount, err := entriesFromBody(voucherType, body)
	if err != nil {
		return domain.Voucher{}, err
	}

	refs := make([]domain.AccountRef, len(entries))
	for i, e := range entries {
		refs[i] = e.AccountRef
	}
	resolved, err := s.resolver.ResolveAll(ctx, refs)
	if err != nil {
		return domain.Voucher{}, err
	}
	for i := range entries {
		entries[i].AccountName = resolved[entries[i].AccountRef].AccountName
	}

	currencyCode := strings.ToUpper(body.Currency)
	precision, err := s.conversion.CurrencyPrecision(ctx, currencyCode)
	if err != nil {
		return domain.Voucher{}, err
	}
	if body.Amount != nil && domain.ExceedsPrecision(*body.Amount, precision) {
		return domain.Voucher{}, fmt.Errorf("%w: amount %s has more than %d decimal places for %s",
			apperrors.ErrValidation, amount.String(), precision, currencyCode)
	}
	conv, err := s.conversion.ConvertAmounts(accounting.ConversionInput{
		Amount:               amount,
		ExchangeRate:         body.CurrencyExchangeRate,
		CommissionPercentage: body.CommissionPercentage,
		Commission:           body.Commission,
		Precision:            &precision,
	})
	if err != nil {
		return domain.Voucher{}, err
	}

	if err := s.checkRelatedRefs(ctx, body.RelatedRefs); err != nil {
		return domain.Voucher{}, err
	}

	return domain.Voucher{
		VoucherDate:          body.VoucherDate,
		CurrencyCode:         currencyCode,
		CurrencyPrecision:    precision,
		ExchangeRate:         conv.ExchangeRate,
		Amount:               amount,
		ConvertedAmount:      conv.ConvertedAmount,
		CommissionPercentage: body.CommissionPercentage,
		CommissionAmount:     conv.CommissionAmount,
		Entries:              entries,
		RelatedRefs:          body.RelatedRefs,
		Description:          body.Description,
		Notes:                body.Notes,
	}, nil
}

// entriesFromBody returns the entry list and the voucher amount. Payment-style
// vouchers expand from/to/amount into two implicit entries; journal-style ones
// take their entries verbatim and use the debit total as their amount.
func entriesFromBody(voucherType domain.VoucherType, body dto.VoucherBody) ([]domain.Entry, decimal.Decimal, error) {
	if voucherType.IsPaymentStyle() {
		if len(body.Entries) > 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: %s vouchers take fromAccount, toAccount and amount instead of entries",
				apperrors.ErrValidation, voucherType)
		}
		if body.FromAccount == nil || body.ToAccount == nil {
			return nil, decimal.Zero, fmt.Errorf("%w: fromAccount and toAccount are required", apperrors.ErrMissingAccount)
		}
		if body.Amount == nil || !body.Amount.IsPositive() {
			return nil, decimal.Zero, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
		}
		return domain.ImplicitEntries(*body.FromAccount, *body.ToAccount, *body.Amount, body.Description), *body.Amount, nil
	}

	if body.FromAccount != nil || body.ToAccount != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %s vouchers take entries instead of fromAccount/toAccount",
			apperrors.ErrValidation, voucherType)
	}

	entries := make([]domain.Entry, len(body.Entries))
	for i, e := range body.Entries {
		entries[i] = domain.Entry{
			AccountRef:  domain.AccountRef{Model: domain.AccountModel(e.AccountModel), ID: e.AccountID},
			Debit:       e.Debit,
			Credit:      e.Credit,
			Description: e.Description,
		}
	}

	amount := decimal.Zero
	for _, e := range entries {
		amount = amount.Add(e.Debit)
	}
	if body.Amount != nil {
		amount = *body.Amount
	}
	return entries, amount, nil
}

func (s *voucherService) checkRelatedRefs(ctx context.Context, refs []domain.RelatedRef) error {
	for _, ref := range refs {
		if !relatedRefTypes[ref.RefType] {
			return fmt.Errorf("%w: unknown related ref type %q", apperrors.ErrValidation, ref.RefType)
		}
		if ref.RefID == "" {
			return fmt.Errorf("%w: related %s ref has no id", apperrors.ErrValidation, ref.RefType)
		}
		// only vouchers live in this store; the other kinds are opaque links
		if ref.RefType != "Voucher" {
			continue
		}
		exists, err := s.voucherRepo.VoucherExists(ctx, ref.RefID)
		if err != nil {
			return fmt.Errorf("failed to check related voucher %s: %w", ref.RefID, err)
		}
		if !exists {
			return fmt.Errorf("%w: related voucher %s", apperrors.ErrNotFound, ref.RefID)
		}
	}
	return nil
}

// checkedRecord converts the payload and confirms the bank account exists.
func (s *voucherService) checkedRecord(ctx context.Context, req dto.ReconciliationRecordRequest) (domain.ReconciliationRecord, error) {
	record := req.ToReconciliationRecord()
	if _, err := s.resolver.Resolve(ctx, domain.AccountRef{Model: domain.BankAccount, ID: record.BankAccountID}); err != nil {
		return domain.ReconciliationRecord{}, err
	}
	return record, nil
}
