package services_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) VoucherExists(ctx context.Context, voucherID string) (bool, error) {
	args := m.Called(ctx, voucherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoucherRepository) MaxVoucherNumbers(ctx context.Context) (map[domain.VoucherType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.VoucherType]int64), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher, expectedVersion int64) error {
	args := m.Called(ctx, voucher, expectedVersion)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, voucherID, status, expectedVersion, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockVoucherRepository) SaveReconciliation(ctx context.Context, voucherID string, record domain.ReconciliationRecord, expectedVersion int64, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, voucherID, record, expectedVersion, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockVoucherRepository) AddAttachment(ctx context.Context, voucherID string, attachment domain.Attachment) error {
	args := m.Called(ctx, voucherID, attachment)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Mock AccountMasterReader ---
type MockAccountMaster struct {
	mock.Mock
}

func (m *MockAccountMaster) FindAccountName(ctx context.Context, accountID string) (string, bool, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Bool(1), args.Error(2)
}

// --- Mock SequenceAllocator ---
type MockSequenceAllocator struct {
	mock.Mock
}

func (m *MockSequenceAllocator) NextValue(ctx context.Context, sequenceName string) (int64, error) {
	args := m.Called(ctx, sequenceName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceAllocator) EnsureAtLeast(ctx context.Context, sequenceName string, floor int64) error {
	args := m.Called(ctx, sequenceName, floor)
	return args.Error(0)
}

// --- Mock AttachmentStore ---
type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, body, size, contentType)
	return args.String(0), args.Error(1)
}

// --- Mock StatementParser ---
type MockStatementParser struct {
	mock.Mock
}

func (m *MockStatementParser) ParseStatement(ctx context.Context, r io.Reader) ([]domain.StatementLine, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementLine), args.Error(1)
}
