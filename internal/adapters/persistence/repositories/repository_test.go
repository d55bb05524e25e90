package repositories

import (
	"context"
	"errors"
	"testing"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return db, mock
}

var employeeColumns = []string{"id", "name", "email", "position", "salary", "status"}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password"}).
			AddRow(1, "Admin", "admin@company.com", "$2a$hash"))

	user, err := repo.GetByEmail(context.Background(), "admin@company.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "$2a$hash", user.Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@company.com")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'admin@company.com' for key 'users.idx_users_email'"})

	err := repo.Create(context.Background(), &models.User{Name: "Admin", Email: "admin@company.com", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_GetByTokenHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `personal_access_tokens` WHERE token_hash = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "token_hash"}).
			AddRow(9, 1, "auth-token", "abc"))

	token, err := repo.GetByTokenHash(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, uint(9), token.ID)
	assert.Equal(t, uint(1), token.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_DeleteSingleRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectExec("DELETE FROM `personal_access_tokens` WHERE `personal_access_tokens`.`id` = \\?").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `personal_access_tokens`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 9))
	assert.ErrorIs(t, repo.Delete(context.Background(), 9), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `employees` ORDER BY id ASC").
		WillReturnRows(sqlmock.NewRows(employeeColumns).
			AddRow(1, "Alice Johnson", "alice.johnson@company.com", "Software Engineer", 85000.00, "active").
			AddRow(2, "David Brown", "david.brown@company.com", "DevOps Engineer", 90000.00, "inactive"))

	employees, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Alice Johnson", employees[0].Name)
	assert.Equal(t, domain.EmployeeInactive, employees[1].Status)
	assert.Equal(t, 90000.0, employees[1].Salary)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `employees` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(employeeColumns))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("INSERT INTO `employees`").
		WillReturnResult(sqlmock.NewResult(16, 1))

	employee := &models.Employee{}
	employee.Apply(domain.EmployeeFields{
		Name:     "Paul Walker",
		Email:    "paul.walker@company.com",
		Position: "Designer",
		Salary:   50000,
		Status:   domain.EmployeeActive,
	})
	require.NoError(t, repo.Create(context.Background(), employee))
	assert.Equal(t, uint(16), employee.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_UpdateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("UPDATE `employees` SET").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Update(context.Background(), &models.Employee{ID: 2, Email: "alice.johnson@company.com"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_UpdateVanishedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("UPDATE `employees` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `employees` WHERE id = \\?").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := repo.Update(context.Background(), &models.Employee{ID: 2, Email: "bob.smith@company.com"})
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_UpdateUnchangedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("UPDATE `employees` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `employees` WHERE id = \\?").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	require.NoError(t, repo.Update(context.Background(), &models.Employee{ID: 2, Email: "bob.smith@company.com"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("DELETE FROM `employees`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `employees`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_ExistsByEmailExcludesSelf(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `employees` WHERE email = \\? AND id <> \\?").
		WithArgs("alice.johnson@company.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `employees` WHERE email = \\?").
		WithArgs("alice.johnson@company.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.ExistsByEmail(context.Background(), "alice.johnson@company.com", 1)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.ExistsByEmail(context.Background(), "alice.johnson@company.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), ErrDuplicateEntry)
	assert.ErrorIs(t, translateError(&mysql.MySQLError{Number: 1062}), ErrDuplicateEntry)

	other := errors.New("boom")
	assert.Equal(t, other, translateError(other))
}
