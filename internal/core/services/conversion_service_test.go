package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	"github.com/SscSPs/voucher_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/voucher_ledger/internal/core/ports/services"
	"github.com/SscSPs/voucher_ledger/internal/core/services"
	"github.com/SscSPs/voucher_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ConversionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.ConversionSvc
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewConversionService(suite.mockRepo)
}

func (suite *ConversionServiceTestSuite) TestCurrencyPrecision_FromMaster() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "PKR").Return(&domain.Currency{CurrencyCode: "PKR", Precision: 2}, nil).Once()

	p, err := suite.service.CurrencyPrecision(ctx, "pkr")

	suite.Require().NoError(err)
	suite.Equal(2, p)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestCurrencyPrecision_FallsBackToISO() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "JPY").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "KWD").Return(nil, apperrors.ErrNotFound).Once()

	jpy, err := suite.service.CurrencyPrecision(ctx, "JPY")
	suite.Require().NoError(err)
	suite.Equal(0, jpy)

	kwd, err := suite.service.CurrencyPrecision(ctx, "KWD")
	suite.Require().NoError(err)
	suite.Equal(3, kwd)
}

func (suite *ConversionServiceTestSuite) TestCurrencyPrecision_UnknownCode() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "ZZQ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CurrencyPrecision(ctx, "ZZQ")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConversionServiceTestSuite) TestCurrencyPrecision_RepositoryError() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(nil, assert.AnError).Once()

	_, err := suite.service.CurrencyPrecision(ctx, "USD")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *ConversionServiceTestSuite) TestConvert_CommissionPercentage() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "AFN").Return(&domain.Currency{CurrencyCode: "AFN", Precision: 2}, nil).Once()
	rate := decimal.RequireFromString("0.333333")
	pct := decimal.NewFromInt(2)

	resp, err := suite.service.Convert(ctx, dto.ConversionRequest{
		Amount:               decimal.NewFromInt(1000),
		Currency:             "AFN",
		CurrencyExchangeRate: &rate,
		CommissionPercentage: &pct,
	})

	suite.Require().NoError(err)
	suite.Equal("333.33", resp.ConvertedAmount.StringFixed(2))
	suite.Equal("20.00", resp.CommissionAmount.StringFixed(2))
	suite.Equal(2, resp.Precision)
}

func (suite *ConversionServiceTestSuite) TestConvert_ZeroRate() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Once()
	zero := decimal.Zero

	_, err := suite.service.Convert(ctx, dto.ConversionRequest{Amount: decimal.NewFromInt(5), Currency: "USD", CurrencyExchangeRate: &zero})

	suite.ErrorIs(err, apperrors.ErrInvalidExchangeRate)
	suite.Equal(apperrors.KindBusinessRule, apperrors.KindOf(err))
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
