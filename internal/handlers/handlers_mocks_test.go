package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/SscSPs/voucher_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/mock"
)

// --- Mock VoucherService ---
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) CanTransition(from, to domain.VoucherStatus) bool {
	return m.Called(from, to).Bool(0)
}
func (m *MockVoucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) UpdateVoucherEntries(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) TransitionVoucher(ctx context.Context, voucherID string, req dto.TransitionRequest, userID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) AttachReconciliation(ctx context.Context, voucherID string, req dto.AttachReconciliationRequest, userID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) UploadAttachment(ctx context.Context, voucherID string, file dto.UploadAttachmentInput, userID string) (*domain.Attachment, error) {
	args := m.Called(ctx, voucherID, file, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

var _ portssvc.VoucherSvcFacade = (*MockVoucherService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Reconcile(ctx context.Context, req dto.ReconcileRequest) (*dto.ReconciliationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReconciliationResponse), args.Error(1)
}
func (m *MockReconciliationService) ImportStatement(ctx context.Context, fileName string, r io.Reader) (*dto.StatementImportResponse, error) {
	args := m.Called(ctx, fileName, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatementImportResponse), args.Error(1)
}

var _ portssvc.ReconciliationSvc = (*MockReconciliationService)(nil)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) CurrencyPrecision(ctx context.Context, currencyCode string) (int, error) {
	args := m.Called(ctx, currencyCode)
	return args.Int(0), args.Error(1)
}
func (m *MockConversionService) ConvertAmounts(in accounting.ConversionInput) (accounting.ConversionResult, error) {
	args := m.Called(in)
	return args.Get(0).(accounting.ConversionResult), args.Error(1)
}
func (m *MockConversionService) Convert(ctx context.Context, req dto.ConversionRequest) (*dto.ConversionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConversionResponse), args.Error(1)
}

var _ portssvc.ConversionSvc = (*MockConversionService)(nil)

// --- Mock AccountResolver ---
type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) Resolve(ctx context.Context, ref domain.AccountRef) (domain.ResolvedAccount, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(domain.ResolvedAccount), args.Error(1)
}
func (m *MockAccountResolver) ResolveAll(ctx context.Context, refs []domain.AccountRef) (map[domain.AccountRef]domain.ResolvedAccount, error) {
	args := m.Called(ctx, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountRef]domain.ResolvedAccount), args.Error(1)
}

var _ portssvc.AccountResolverSvc = (*MockAccountResolver)(nil)
