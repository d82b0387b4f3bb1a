package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"depositor/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestDepositRepository_Create(t *testing.T) {
	t.Run("inserts one row and returns the generated id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepositRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "deposits"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectCommit()

		deposit := &models.Deposit{UserID: 3, Amount: decimal.RequireFromString("100")}
		err := repo.Create(context.Background(), deposit)

		require.NoError(t, err)
		assert.Equal(t, uint(7), deposit.ID)
		assert.False(t, deposit.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write failure is returned and rolled back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepositRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "deposits"`).WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &models.Deposit{UserID: 3, Amount: decimal.NewFromInt(5)})

		assert.ErrorContains(t, err, "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDepositRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDepositRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "deposits"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "deposits" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "created_at", "updated_at"}).
			AddRow(2, 3, "42.50", now, now).
			AddRow(1, 3, "100.00", now, now))

	deposits, total, err := repo.ListByUser(context.Background(), 3, 10, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, deposits, 2)
	assert.True(t, deposits[0].Amount.Equal(decimal.RequireFromString("42.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	t.Run("updates every unread row in one statement", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNotificationRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "notifications" SET "read_at"=\$1,"updated_at"=\$2 WHERE \(?notifiable_type = \$3 AND notifiable_id = \$4 AND read_at IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		n, err := repo.MarkAllRead(context.Background(), 9, time.Now())

		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing unread is not an error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNotificationRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "notifications"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		n, err := repo.MarkAllRead(context.Background(), 9, time.Now())

		require.NoError(t, err)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNotificationRepository_CountUnread(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications" WHERE \(?notifiable_type = \$1 AND notifiable_id = \$2 AND read_at IS NULL`).
		WithArgs(models.NotifiableUser, 9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountUnread(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, nil, nil)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password", "role", "token_version"}).
				AddRow(1, "ada@example.com", "Ada", "hash", "user", 1))

		user, err := repo.GetByEmail(context.Background(), " Ada@Example.com ")

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.Equal(t, "hash", user.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, nil, nil)

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
