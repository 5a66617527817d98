package database

import (
	"errors"
	"testing"
	"time"

	"fintrack/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestLoadMonth(t *testing.T) {
	db, mock := setupMockDB(t)
	month, err := models.ParseMonth("2024-02")
	require.NoError(t, err)
	day := time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(uint(3), "2024-02-01", "2024-02-29").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "description", "date"}).
			AddRow(1, 3, "120.50", "Food", "lunch", day).
			AddRow(2, 3, "80", "Transport", "", day))
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(uint(3), "2024-02-01", "2024-02-29").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "source", "date", "recurring"}).
			AddRow(1, 3, "1000", "Salary", day, true))
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs(uint(3), "2024-02").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "amount", "month"}).
			AddRow(1, 3, "Food", "500", "2024-02"))

	rec, err := LoadMonth(db, 3, month)
	require.NoError(t, err)
	require.Len(t, rec.Expenses, 2)
	assert.Equal(t, "120.5", rec.Expenses[0].Amount.String())
	assert.Equal(t, "Transport", rec.Expenses[1].Category)
	require.Len(t, rec.Income, 1)
	assert.True(t, rec.Income[0].Recurring)
	require.Len(t, rec.Budgets, 1)
	assert.Equal(t, "2024-02", rec.Month.Month)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadMonth_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	month, _ := models.ParseMonth("2024-02")

	mock.ExpectQuery("SELECT .* FROM `expenses`").WillReturnError(errors.New("connection reset"))

	_, err := LoadMonth(db, 3, month)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserData(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses`").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM `incomes`").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `budgets`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `users`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	counts, err := DeleteUserData(db, 9)
	require.NoError(t, err)
	assert.Equal(t, DeletedCounts{Expenses: 4, Income: 2, Budgets: 1}, counts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserData_RollsBack(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses`").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM `incomes`").WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	_, err := DeleteUserData(db, 9)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
