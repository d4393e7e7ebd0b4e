package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"tablemate/internal/common"
)

type StockRepoTestSuite struct {
	suite.Suite
	mock         pgxmock.PgxPoolIface
	repo         StockRepository
	restaurantID uuid.UUID
	stockID      uuid.UUID
	ctx          context.Context
}

func (suite *StockRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewStockRepo(mock)
	suite.restaurantID = uuid.New()
	suite.stockID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *StockRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestStockRepoTestSuite(t *testing.T) {
	suite.Run(t, new(StockRepoTestSuite))
}

func (suite *StockRepoTestSuite) TestDecrement_Success() {
	suite.mock.ExpectExec(`UPDATE stocks`).
		WithArgs(2, suite.stockID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Decrement(suite.ctx, suite.stockID, 2)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StockRepoTestSuite) TestDecrement_InsufficientQuantity() {
	// The conditional update matches no row, but the stock exists.
	suite.mock.ExpectExec(`UPDATE stocks`).
		WithArgs(5, suite.stockID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.stockID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err := suite.repo.Decrement(suite.ctx, suite.stockID, 5)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StockRepoTestSuite) TestDecrement_UnknownStock() {
	suite.mock.ExpectExec(`UPDATE stocks`).
		WithArgs(1, suite.stockID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(suite.stockID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	err := suite.repo.Decrement(suite.ctx, suite.stockID, 1)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StockRepoTestSuite) TestIncrement_Success() {
	suite.mock.ExpectExec(`UPDATE stocks`).
		WithArgs(3, suite.stockID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Increment(suite.ctx, suite.stockID, 3)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StockRepoTestSuite) TestIncrement_UnknownStock() {
	suite.mock.ExpectExec(`UPDATE stocks`).
		WithArgs(3, suite.stockID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Increment(suite.ctx, suite.stockID, 3)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StockRepoTestSuite) TestGetByID_NoRows() {
	suite.mock.ExpectQuery(`SELECT id, restaurant_id, drink_name`).
		WithArgs(suite.restaurantID, suite.stockID).
		WillReturnError(pgx.ErrNoRows)

	stock, err := suite.repo.GetByID(suite.ctx, suite.restaurantID, suite.stockID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), stock)
}
