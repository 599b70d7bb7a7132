package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	"github.com/finbooks/ledger_backend/internal/core/domain"
	"github.com/finbooks/ledger_backend/internal/core/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTransactions *MockTransactionRepository
	mockAccounts     *MockAccountRepository
	service          *services.TransactionService
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTransactions = new(MockTransactionRepository)
	suite.mockAccounts = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTransactions, suite.mockAccounts)
}

func validSaveRequest() dto.SaveTransactionRequest {
	return dto.SaveTransactionRequest{
		Description:     "Groceries",
		Date:            "2026-08-20",
		Amount:          "42.99",
		DebitAccountID:  1,
		CreditAccountID: 2,
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()

	suite.mockTransactions.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Transaction).TransactionID = 10
	}).Return(nil).Once()
	suite.mockTransactions.On("FindTransactionByID", ctx, int64(10)).Return(&domain.Transaction{
		TransactionID:   10,
		Description:     "Groceries",
		Date:            time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.RequireFromString("42.99"),
		DebitAccountID:  1,
		CreditAccountID: 2,
		IsActive:        true,
		DebitAccount:    &domain.AccountRef{AccountID: 1, Name: "Food", AccountType: domain.Expense},
		CreditAccount:   &domain.AccountRef{AccountID: 2, Name: "Bank", AccountType: domain.Asset},
	}, nil).Once()

	created, err := suite.service.CreateTransaction(ctx, validSaveRequest())

	suite.Require().NoError(err)
	suite.Equal(int64(10), created.TransactionID)
	suite.Require().NotNil(created.DebitAccount)
	suite.Equal("Food", created.DebitAccount.Name)
	suite.mockTransactions.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoAccountExistenceCheck() {
	ctx := context.Background()
	req := validSaveRequest()
	req.DebitAccountID = 998
	req.CreditAccountID = 999

	suite.mockTransactions.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Transaction).TransactionID = 11
	}).Return(nil).Once()
	suite.mockTransactions.On("FindTransactionByID", ctx, int64(11)).Return(&domain.Transaction{TransactionID: 11, IsActive: true}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req)

	// Legs referencing unknown accounts are accepted; only distinctness is checked.
	suite.Require().NoError(err)
	suite.mockAccounts.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidAmount() {
	req := validSaveRequest()
	req.Amount = "not-a-number"

	_, err := suite.service.CreateTransaction(context.Background(), req)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockTransactions.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ZeroAndNegativeAmountsAccepted() {
	ctx := context.Background()

	for _, amount := range []string{"0", "-15.75"} {
		req := validSaveRequest()
		req.Amount = amount

		suite.mockTransactions.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Transaction).TransactionID = 12
		}).Return(nil).Once()
		suite.mockTransactions.On("FindTransactionByID", ctx, int64(12)).Return(&domain.Transaction{TransactionID: 12, IsActive: true}, nil).Once()

		_, err := suite.service.CreateTransaction(ctx, req)
		suite.Require().NoError(err, "amount %s should be accepted", amount)
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidDate() {
	req := validSaveRequest()
	req.Date = "20/08/2026"

	_, err := suite.service.CreateTransaction(context.Background(), req)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidDate)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DatetimeTruncatedToDate() {
	ctx := context.Background()
	req := validSaveRequest()
	req.Date = "2026-08-20T14:35:00Z"

	var saved *domain.Transaction
	suite.mockTransactions.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Transaction)
		saved.TransactionID = 13
	}).Return(nil).Once()
	suite.mockTransactions.On("FindTransactionByID", ctx, int64(13)).Return(&domain.Transaction{TransactionID: 13, IsActive: true}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), saved.Date)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SameAccounts() {
	req := validSaveRequest()
	req.CreditAccountID = req.DebitAccountID

	_, err := suite.service.CreateTransaction(context.Background(), req)

	suite.Require().ErrorIs(err, apperrors.ErrSameAccounts)
	suite.mockTransactions.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	ctx := context.Background()
	suite.mockTransactions.On("FindTransactionByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateTransaction(ctx, 99, validSaveRequest())

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RetiredIsNotFound() {
	ctx := context.Background()
	retired := &domain.Transaction{TransactionID: 99, IsActive: false}
	suite.mockTransactions.On("FindTransactionByID", ctx, int64(99)).Return(retired, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, 99, validSaveRequest())

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTransactions.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_FullReplacement() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID:   20,
		Description:     "Old description",
		Date:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.NewFromInt(5),
		DebitAccountID:  7,
		CreditAccountID: 8,
		IsActive:        true,
	}
	req := dto.SaveTransactionRequest{
		Description:     "New description",
		Date:            "2026-03-15",
		Amount:          "99.95",
		DebitAccountID:  8,
		CreditAccountID: 7,
	}

	var updated *domain.Transaction
	suite.mockTransactions.On("FindTransactionByID", ctx, int64(20)).Return(existing, nil).Once()
	suite.mockTransactions.On("UpdateTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Run(func(args mock.Arguments) {
		updated = args.Get(1).(*domain.Transaction)
	}).Return(nil).Once()
	suite.mockTransactions.On("FindTransactionByID", ctx, int64(20)).Return(existing, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, 20, req)

	suite.Require().NoError(err)
	suite.Equal("New description", updated.Description)
	suite.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), updated.Date)
	suite.True(updated.Amount.Equal(decimal.RequireFromString("99.95")))
	suite.Equal(int64(8), updated.DebitAccountID)
	suite.Equal(int64(7), updated.CreditAccountID)
}

func (suite *TransactionServiceTestSuite) TestRetireTransaction_NotFound() {
	ctx := context.Background()
	suite.mockTransactions.On("FindTransactionByID", ctx, int64(30)).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.RetireTransaction(ctx, 30)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestRetireTransaction_AlreadyRetired() {
	ctx := context.Background()
	retired := &domain.Transaction{TransactionID: 30, IsActive: false}
	suite.mockTransactions.On("FindTransactionByID", ctx, int64(30)).Return(retired, nil).Once()

	_, _, err := suite.service.RetireTransaction(ctx, 30)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTransactions.AssertNotCalled(suite.T(), "RetireTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRetireTransaction_ReportsPostRetirementBalances() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID:   31,
		Amount:          decimal.NewFromInt(100),
		DebitAccountID:  1,
		CreditAccountID: 2,
		IsActive:        true,
	}
	debitAccount := &domain.Account{AccountID: 1, Name: "Bank", AccountType: domain.Asset, IsActive: true}
	creditAccount := &domain.Account{AccountID: 2, Name: "Salary", AccountType: domain.Income, IsActive: true}

	suite.mockTransactions.On("FindTransactionByID", ctx, int64(31)).Return(existing, nil).Once()
	suite.mockTransactions.On("RetireTransaction", ctx, int64(31)).Return(nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, int64(1)).Return(debitAccount, nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, int64(2)).Return(creditAccount, nil).Once()
	// The retired transaction no longer shows up in the active set.
	suite.mockTransactions.On("FindActiveTransactionsByAccountID", ctx, int64(1)).Return([]domain.Transaction{}, nil).Once()
	suite.mockTransactions.On("FindActiveTransactionsByAccountID", ctx, int64(2)).Return([]domain.Transaction{}, nil).Once()

	debit, credit, err := suite.service.RetireTransaction(ctx, 31)

	suite.Require().NoError(err)
	suite.Require().NotNil(debit)
	suite.Require().NotNil(credit)
	suite.True(debit.Balance.IsZero())
	suite.True(credit.Balance.IsZero())
	suite.mockTransactions.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRetireTransaction_UnresolvedLegIsNil() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID:   32,
		Amount:          decimal.NewFromInt(10),
		DebitAccountID:  1,
		CreditAccountID: 404,
		IsActive:        true,
	}
	debitAccount := &domain.Account{AccountID: 1, Name: "Bank", AccountType: domain.Asset, IsActive: true}

	suite.mockTransactions.On("FindTransactionByID", ctx, int64(32)).Return(existing, nil).Once()
	suite.mockTransactions.On("RetireTransaction", ctx, int64(32)).Return(nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, int64(1)).Return(debitAccount, nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTransactions.On("FindActiveTransactionsByAccountID", ctx, int64(1)).Return([]domain.Transaction{}, nil).Once()

	debit, credit, err := suite.service.RetireTransaction(ctx, 32)

	suite.Require().NoError(err)
	suite.NotNil(debit)
	suite.Nil(credit)
}

func (suite *TransactionServiceTestSuite) TestListActive_PassesFilterThrough() {
	ctx := context.Background()
	accountID := int64(5)
	expected := []domain.Transaction{{TransactionID: 1, IsActive: true}}

	suite.mockTransactions.On("ListActiveTransactions", ctx, &accountID).Return(expected, nil).Once()

	got, err := suite.service.ListActive(ctx, &accountID)

	suite.Require().NoError(err)
	suite.Equal(expected, got)
}

func (suite *TransactionServiceTestSuite) TestListActive_NilBecomesEmptySlice() {
	ctx := context.Background()
	suite.mockTransactions.On("ListActiveTransactions", ctx, (*int64)(nil)).Return(nil, nil).Once()

	got, err := suite.service.ListActive(ctx, nil)

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
