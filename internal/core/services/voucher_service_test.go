package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/core/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type VoucherServiceTestSuite struct {
	suite.Suite
	voucherRepo  *MockVoucherRepository
	currencyRepo *MockCurrencyRepository
	banks        *MockAccountMaster
	suppliers    *MockAccountMaster
	customers    *MockAccountMaster
	cashBooks    *MockAccountMaster
	sequences    *MockSequenceAllocator
	store        *MockAttachmentStore
	service      portssvc.VoucherSvcFacade
	userID       string
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.voucherRepo = new(MockVoucherRepository)
	suite.currencyRepo = new(MockCurrencyRepository)
	suite.banks = new(MockAccountMaster)
	suite.suppliers = new(MockAccountMaster)
	suite.customers = new(MockAccountMaster)
	suite.cashBooks = new(MockAccountMaster)
	suite.sequences = new(MockSequenceAllocator)
	suite.store = new(MockAttachmentStore)
	suite.userID = uuid.NewString()

	resolver, err := services.NewAccountResolverService(portsrepo.AccountMasters{
		domain.BankAccount: suite.banks,
		domain.Supplier:    suite.suppliers,
		domain.Customer:    suite.customers,
		domain.CashBook:    suite.cashBooks,
	})
	suite.Require().NoError(err)

	suite.service = services.NewVoucherService(
		suite.voucherRepo,
		resolver,
		services.NewConversionService(suite.currencyRepo),
		services.NewNumberingService(suite.sequences),
		suite.store,
	)

	suite.banks.On("FindAccountName", mock.Anything, "A").Return("Meezan Current", true, nil).Maybe()
	suite.suppliers.On("FindAccountName", mock.Anything, "B").Return("Acme Traders", true, nil).Maybe()
	suite.cashBooks.On("FindAccountName", mock.Anything, "C").Return("Petty Cash", true, nil).Maybe()
	suite.currencyRepo.On("FindCurrencyByCode", mock.Anything, "PKR").
		Return(&domain.Currency{CurrencyCode: "PKR", Precision: 2}, nil).Maybe()
}

func entryReq(model domain.AccountModel, id, debit, credit string) dto.EntryRequest {
	return dto.EntryRequest{
		AccountModel: string(model),
		AccountID:    id,
		Debit:        decimal.RequireFromString(debit),
		Credit:       decimal.RequireFromString(credit),
	}
}

func journalRequest(entries ...dto.EntryRequest) dto.CreateVoucherRequest {
	one := decimal.NewFromInt(1)
	return dto.CreateVoucherRequest{
		VoucherType: domain.JournalEntryVoucher,
		VoucherBody: dto.VoucherBody{
			VoucherDate:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Currency:             "PKR",
			CurrencyExchangeRate: &one,
			Entries:              entries,
			Description:          "month end accrual",
		},
	}
}

func storedVoucher(status domain.VoucherStatus, version int64) *domain.Voucher {
	return &domain.Voucher{
		VoucherID:         "v-1",
		VoucherNumber:     7,
		ReferCode:         "JV-000007",
		VoucherType:       domain.JournalEntryVoucher,
		CurrencyCode:      "PKR",
		CurrencyPrecision: 2,
		ExchangeRate:      decimal.NewFromInt(1),
		Status:            status,
		Entries: []domain.Entry{
			{EntryID: "e-1", AccountRef: domain.AccountRef{Model: domain.BankAccount, ID: "A"}, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{EntryID: "e-2", AccountRef: domain.AccountRef{Model: domain.Supplier, ID: "B"}, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		},
		AuditFields: domain.AuditFields{Version: version},
	}
}

// --- CreateVoucher ---

func (suite *VoucherServiceTestSuite) TestCreateVoucher_BalancedJournal() {
	ctx := context.Background()
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "500", "0"),
		entryReq(domain.Supplier, "B", "0", "500"),
	)

	suite.sequences.On("NextValue", ctx, "voucher:journal_entry").Return(int64(12), nil).Once()
	suite.voucherRepo.On("SaveVoucher", ctx, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.ReferCode == "JV-000012" &&
			v.Status == domain.StatusDraft &&
			v.Version == 1 &&
			v.CreatedBy == suite.userID &&
			len(v.Entries) == 2 &&
			v.Entries[0].AccountName == "Meezan Current" &&
			v.Entries[1].AccountName == "Acme Traders" &&
			v.Entries[0].EntryID != ""
	})).Return(nil).Once()

	v, err := suite.service.CreateVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(v.VoucherID)
	suite.Equal(int64(12), v.VoucherNumber)
	suite.Equal("PKR", v.CurrencyCode)
	suite.True(v.Amount.Equal(decimal.NewFromInt(500)))
	suite.Equal("500.00", v.ConvertedAmount.StringFixed(2))
	suite.voucherRepo.AssertExpectations(suite.T())
	suite.sequences.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SubmitCreatesPending() {
	ctx := context.Background()
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "500", "0"),
		entryReq(domain.Supplier, "B", "0", "500"),
	)
	req.Submit = true

	suite.sequences.On("NextValue", ctx, "voucher:journal_entry").Return(int64(1), nil).Once()
	suite.voucherRepo.On("SaveVoucher", ctx, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.Status == domain.StatusPending
	})).Return(nil).Once()

	v, err := suite.service.CreateVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, v.Status)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_UnbalancedIsNotNumberedOrSaved() {
	ctx := context.Background()
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "200", "0"),
		entryReq(domain.CashBook, "C", "100", "0"),
		entryReq(domain.Supplier, "B", "0", "250"),
	)

	v, err := suite.service.CreateVoucher(ctx, req, suite.userID)

	suite.Nil(v)
	var balanceErr *apperrors.BalanceError
	suite.Require().True(errors.As(err, &balanceErr))
	suite.True(balanceErr.TotalDebit.Equal(decimal.NewFromInt(300)))
	suite.True(balanceErr.TotalCredit.Equal(decimal.NewFromInt(250)))
	suite.sequences.AssertNotCalled(suite.T(), "NextValue", mock.Anything, mock.Anything)
	suite.voucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_EntryWithBothSides() {
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "100", "50"),
		entryReq(domain.Supplier, "B", "0", "50"),
	)

	_, err := suite.service.CreateVoucher(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidEntrySplit)
	suite.Equal(apperrors.KindStructural, apperrors.KindOf(err))
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_UnknownAccount() {
	suite.customers.On("FindAccountName", mock.Anything, "nobody").Return("", false, nil).Once()
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "100", "0"),
		entryReq(domain.Customer, "nobody", "0", "100"),
	)

	_, err := suite.service.CreateVoucher(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.voucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_PaymentStyleWithCommission() {
	ctx := context.Background()
	amount := decimal.NewFromInt(1000)
	rate := decimal.RequireFromString("1.5")
	pct := decimal.NewFromInt(2)
	req := dto.CreateVoucherRequest{
		VoucherType: domain.PaymentVoucher,
		VoucherBody: dto.VoucherBody{
			VoucherDate:          time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Currency:             "PKR",
			CurrencyExchangeRate: &rate,
			FromAccount:          &domain.AccountRef{Model: domain.BankAccount, ID: "A"},
			ToAccount:            &domain.AccountRef{Model: domain.Supplier, ID: "B"},
			Amount:               &amount,
			CommissionPercentage: &pct,
		},
	}

	suite.sequences.On("NextValue", ctx, "voucher:payment").Return(int64(3), nil).Once()
	suite.voucherRepo.On("SaveVoucher", ctx, mock.Anything).Return(nil).Once()

	v, err := suite.service.CreateVoucher(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("PV-000003", v.ReferCode)
	suite.Equal("1500.00", v.ConvertedAmount.StringFixed(2))
	suite.Equal("20.00", v.CommissionAmount.StringFixed(2))
	suite.Require().Len(v.Entries, 2)
	suite.Equal(domain.Supplier, v.Entries[0].Model)
	suite.True(v.Entries[0].Debit.Equal(amount))
	suite.Equal(domain.BankAccount, v.Entries[1].Model)
	suite.True(v.Entries[1].Credit.Equal(amount))
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_EntriesFinerThanCurrencyPrecision() {
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "0.000000001", "0"),
		entryReq(domain.Supplier, "B", "0", "0.000000001"),
	)

	v, err := suite.service.CreateVoucher(context.Background(), req, suite.userID)

	suite.Nil(v)
	suite.ErrorIs(err, apperrors.ErrInvalidEntrySplit)
	var entryErr *apperrors.EntryError
	suite.Require().True(errors.As(err, &entryErr))
	suite.Equal(0, entryErr.Index)
	suite.sequences.AssertNotCalled(suite.T(), "NextValue", mock.Anything, mock.Anything)
	suite.voucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_PaymentAmountFinerThanCurrencyPrecision() {
	amount := decimal.RequireFromString("10.005")
	req := dto.CreateVoucherRequest{
		VoucherType: domain.PaymentVoucher,
		VoucherBody: dto.VoucherBody{
			Currency:    "PKR",
			FromAccount: &domain.AccountRef{Model: domain.BankAccount, ID: "A"},
			ToAccount:   &domain.AccountRef{Model: domain.Supplier, ID: "B"},
			Amount:      &amount,
		},
	}

	_, err := suite.service.CreateVoucher(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(apperrors.KindStructural, apperrors.KindOf(err))
	suite.voucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_PaymentStyleWithoutAccounts() {
	amount := decimal.NewFromInt(10)
	req := dto.CreateVoucherRequest{
		VoucherType: domain.TransferVoucher,
		VoucherBody: dto.VoucherBody{Currency: "PKR", Amount: &amount},
	}

	_, err := suite.service.CreateVoucher(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrMissingAccount)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_ZeroExchangeRate() {
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "500", "0"),
		entryReq(domain.Supplier, "B", "0", "500"),
	)
	zero := decimal.Zero
	req.CurrencyExchangeRate = &zero

	_, err := suite.service.CreateVoucher(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidExchangeRate)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_MissingRelatedVoucher() {
	ctx := context.Background()
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "500", "0"),
		entryReq(domain.Supplier, "B", "0", "500"),
	)
	req.RelatedRefs = []domain.RelatedRef{{RefType: "Purchase", RefID: "po-1"}, {RefType: "Voucher", RefID: "v-missing"}}
	suite.voucherRepo.On("VoucherExists", ctx, "v-missing").Return(false, nil).Once()

	_, err := suite.service.CreateVoucher(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_DuplicateNumberIsConflict() {
	ctx := context.Background()
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "500", "0"),
		entryReq(domain.Supplier, "B", "0", "500"),
	)
	suite.sequences.On("NextValue", ctx, "voucher:journal_entry").Return(int64(5), nil).Once()
	suite.voucherRepo.On("SaveVoucher", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateVoucher(ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_RecordOnNonReconciliationVoucher() {
	req := journalRequest(
		entryReq(domain.BankAccount, "A", "500", "0"),
		entryReq(domain.Supplier, "B", "0", "500"),
	)
	req.Reconciliation = &dto.ReconciliationRecordRequest{BankAccount: "A"}

	_, err := suite.service.CreateVoucher(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateVoucherEntries ---

func (suite *VoucherServiceTestSuite) TestUpdateVoucherEntries_Success() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusPending, 3), nil).Once()
	suite.voucherRepo.On("UpdateVoucher", ctx, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.VoucherID == "v-1" && v.ReferCode == "JV-000007" &&
			len(v.Entries) == 2 && v.Entries[0].Debit.Equal(decimal.NewFromInt(750)) &&
			v.LastUpdatedBy == suite.userID
	}), int64(3)).Return(nil).Once()

	body := journalRequest(
		entryReq(domain.BankAccount, "A", "750", "0"),
		entryReq(domain.Supplier, "B", "0", "750"),
	).VoucherBody

	v, err := suite.service.UpdateVoucherEntries(ctx, "v-1", dto.UpdateVoucherRequest{Version: 3, VoucherBody: body}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(4), v.Version)
	suite.Equal(domain.StatusPending, v.Status)
	suite.voucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestUpdateVoucherEntries_LockedAfterApproval() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusApproved, 2), nil).Once()

	_, err := suite.service.UpdateVoucherEntries(ctx, "v-1", dto.UpdateVoucherRequest{Version: 2}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrVoucherLocked)
	suite.Equal(apperrors.KindBusinessRule, apperrors.KindOf(err))
}

func (suite *VoucherServiceTestSuite) TestUpdateVoucherEntries_StaleVersion() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusDraft, 5), nil).Once()

	_, err := suite.service.UpdateVoucherEntries(ctx, "v-1", dto.UpdateVoucherRequest{Version: 4}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
	suite.voucherRepo.AssertNotCalled(suite.T(), "UpdateVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestUpdateVoucherEntries_LostRace() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusDraft, 1), nil).Once()
	suite.voucherRepo.On("UpdateVoucher", ctx, mock.Anything, int64(1)).Return(apperrors.ErrConcurrentModification).Once()

	body := journalRequest(
		entryReq(domain.BankAccount, "A", "10", "0"),
		entryReq(domain.Supplier, "B", "0", "10"),
	).VoucherBody

	_, err := suite.service.UpdateVoucherEntries(ctx, "v-1", dto.UpdateVoucherRequest{Version: 1, VoucherBody: body}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConcurrentModification)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
}

// --- TransitionVoucher ---

func (suite *VoucherServiceTestSuite) TestTransitionVoucher_DraftPendingApproved() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusDraft, 1), nil).Once()
	suite.voucherRepo.On("UpdateVoucherStatus", ctx, "v-1", domain.StatusPending, int64(1), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	v, err := suite.service.TransitionVoucher(ctx, "v-1", dto.TransitionRequest{Target: domain.StatusPending, Version: 1}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, v.Status)
	suite.Equal(int64(2), v.Version)

	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusPending, 2), nil).Once()
	suite.voucherRepo.On("UpdateVoucherStatus", ctx, "v-1", domain.StatusApproved, int64(2), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	v, err = suite.service.TransitionVoucher(ctx, "v-1", dto.TransitionRequest{Target: domain.StatusApproved, Version: 2}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, v.Status)
	suite.voucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestTransitionVoucher_CompletedToPendingFails() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusCompleted, 9), nil).Once()

	_, err := suite.service.TransitionVoucher(ctx, "v-1", dto.TransitionRequest{Target: domain.StatusPending, Version: 9}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.voucherRepo.AssertNotCalled(suite.T(), "UpdateVoucherStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestTransitionVoucher_ApprovalRevalidatesEntries() {
	ctx := context.Background()
	stale := storedVoucher(domain.StatusPending, 4)
	stale.Entries[1].Credit = decimal.NewFromInt(450)
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(stale, nil).Once()

	_, err := suite.service.TransitionVoucher(ctx, "v-1", dto.TransitionRequest{Target: domain.StatusApproved, Version: 4}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrUnbalanced)
}

func (suite *VoucherServiceTestSuite) TestTransitionVoucher_ReconciledNeedsBalancedRecord() {
	ctx := context.Background()
	v := &domain.Voucher{
		VoucherID:         "rc-1",
		VoucherType:       domain.ReconciliationVoucher,
		CurrencyPrecision: 2,
		Status:            domain.StatusApproved,
		Reconciliation: &domain.ReconciliationRecord{
			BankAccountID:    "A",
			BookBalance:      decimal.NewFromInt(5000),
			StatementBalance: decimal.NewFromInt(5200),
			OutstandingItems: domain.OutstandingItems{BankCharges: decimal.NewFromInt(200)},
		},
		AuditFields: domain.AuditFields{Version: 2},
	}
	suite.voucherRepo.On("FindVoucherByID", ctx, "rc-1").Return(v, nil).Once()

	_, err := suite.service.TransitionVoucher(ctx, "rc-1", dto.TransitionRequest{Target: domain.StatusReconciled, Version: 2}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.Contains(err.Error(), "400")
}

func (suite *VoucherServiceTestSuite) TestTransitionVoucher_NotFound() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.TransitionVoucher(ctx, "nope", dto.TransitionRequest{Target: domain.StatusPending, Version: 1}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- AttachReconciliation ---

func (suite *VoucherServiceTestSuite) TestAttachReconciliation_Success() {
	ctx := context.Background()
	v := &domain.Voucher{
		VoucherID:   "rc-1",
		VoucherType: domain.ReconciliationVoucher,
		Status:      domain.StatusDraft,
		AuditFields: domain.AuditFields{Version: 1},
	}
	suite.voucherRepo.On("FindVoucherByID", ctx, "rc-1").Return(v, nil).Once()
	suite.voucherRepo.On("SaveReconciliation", ctx, "rc-1", mock.MatchedBy(func(r domain.ReconciliationRecord) bool {
		return r.BankAccountID == "A" && r.BankCharges.Equal(decimal.NewFromInt(200))
	}), int64(1), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	out, err := suite.service.AttachReconciliation(ctx, "rc-1", dto.AttachReconciliationRequest{
		Version: 1,
		Record: dto.ReconciliationRecordRequest{
			BankAccount:      "A",
			BookBalance:      decimal.NewFromInt(5000),
			StatementBalance: decimal.NewFromInt(5200),
			BankCharges:      decimal.NewFromInt(200),
		},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(out.Reconciliation)
	suite.Equal(int64(2), out.Version)
}

func (suite *VoucherServiceTestSuite) TestAttachReconciliation_WrongVoucherType() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusDraft, 1), nil).Once()

	_, err := suite.service.AttachReconciliation(ctx, "v-1", dto.AttachReconciliationRequest{Version: 1}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UploadAttachment ---

func (suite *VoucherServiceTestSuite) TestUploadAttachment_Success() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusApproved, 3), nil).Once()
	suite.store.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return len(key) > len("vouchers/v-1/") && key[:len("vouchers/v-1/")] == "vouchers/v-1/"
	}), mock.Anything, int64(5), "application/pdf").Return("https://files.example.com/receipt.pdf", nil).Once()
	suite.voucherRepo.On("AddAttachment", ctx, "v-1", domain.Attachment{
		Name: "receipt.pdf", URL: "https://files.example.com/receipt.pdf", Type: "application/pdf",
	}).Return(nil).Once()

	att, err := suite.service.UploadAttachment(ctx, "v-1", dto.UploadAttachmentInput{
		Name:        "../../receipt.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-"),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("receipt.pdf", att.Name)
	suite.store.AssertExpectations(suite.T())
	suite.voucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestUploadAttachment_StoreFailure() {
	ctx := context.Background()
	suite.voucherRepo.On("FindVoucherByID", ctx, "v-1").Return(storedVoucher(domain.StatusDraft, 1), nil).Once()
	suite.store.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	_, err := suite.service.UploadAttachment(ctx, "v-1", dto.UploadAttachmentInput{Name: "a.png", Content: []byte{1}}, suite.userID)

	suite.ErrorIs(err, assert.AnError)
	suite.voucherRepo.AssertNotCalled(suite.T(), "AddAttachment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestUploadAttachment_NoStoreConfigured() {
	svc := services.NewVoucherService(suite.voucherRepo, nil, nil, nil, nil)

	_, err := svc.UploadAttachment(context.Background(), "v-1", dto.UploadAttachmentInput{Name: "a.png", Content: []byte{1}}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInternal)
}

func (suite *VoucherServiceTestSuite) TestCanTransition() {
	suite.True(suite.service.CanTransition(domain.StatusApproved, domain.StatusReconciled))
	suite.False(suite.service.CanTransition(domain.StatusCompleted, domain.StatusPending))
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
