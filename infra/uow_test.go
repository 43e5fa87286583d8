package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormUoW_Repositories(t *testing.T) {
	require := require.New(t)
	db, _ := newMockDB(t)
	uow := NewGormUoW(db)

	users, err := uow.UserRepository()
	require.NoError(err)
	require.NotNil(users)

	accounts, err := uow.AccountRepository()
	require.NoError(err)
	require.NotNil(accounts)

	transactions, err := uow.TransactionRepository()
	require.NoError(err)
	require.NotNil(transactions)
}

func TestGormUoW_DoCommits(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	uow := NewGormUoW(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return transactions.Create(context.Background(), &domain.Transaction{
			ID:        uuid.New(),
			AccountID: uuid.New(),
			Type:      domain.TransactionDeposit,
			Amount:    100,
			CreatedAt: time.Now(),
		})
	})
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())
}

func TestGormUoW_DoRollsBackOnError(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	uow := NewGormUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(uow repository.UnitOfWork) error {
		return boom
	})
	require.ErrorIs(err, boom)
	require.NoError(mock.ExpectationsWereMet())
}
