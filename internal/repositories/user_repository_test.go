package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/marketbase/catalog-api/internal/models"
	repository "github.com/marketbase/catalog-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	assert.NotNil(t, repo, "NewUserRepo should return a non-nil repository")
}

func TestUserRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	ctx := context.Background()

	t.Run("CreateUser_Success", func(t *testing.T) {
		// Arrange
		user := &models.User{
			Email:    "test@example.com",
			Password: "hashedpassword",
			Name:     "Test User",
			Role:     models.RoleCustomer,
		}
		now := time.Now()
		newID := uuid.New()

		expectedSQL := regexp.QuoteMeta(`
		INSERT INTO users(email, password, name, role, created_at, updated_at)
		VALUES($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`)

		mock.ExpectQuery(expectedSQL).
			WithArgs(user.Email, user.Password, user.Name, user.Role).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(newID.String(), now, now))

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, user.ID)
		assert.WithinDuration(t, now, user.CreatedAt, time.Second)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateUser_Error", func(t *testing.T) {
		// Arrange
		user := &models.User{Email: "dup@example.com", Password: "x", Name: "Dup", Role: models.RoleCustomer}
		dbError := errors.New("unique constraint violation")

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(dbError)

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		assert.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserByEmail_Success", func(t *testing.T) {
		// Arrange
		userID := uuid.New()
		now := time.Now()

		expectedSQL := regexp.QuoteMeta(`
		SELECT id, email, password, name, role, created_at, updated_at
		FROM users
		WHERE email = $1`)

		rows := sqlmock.NewRows([]string{"id", "email", "password", "name", "role", "created_at", "updated_at"}).
			AddRow(userID.String(), "test@example.com", "hashedpassword", "Test User", models.RoleAdmin, now, now)

		mock.ExpectQuery(expectedSQL).WithArgs("test@example.com").WillReturnRows(rows)

		// Act
		user, err := repo.GetUserByEmail(ctx, "test@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "hashedpassword", user.Password, "login needs the stored hash")
		assert.Equal(t, models.RoleAdmin, user.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserByEmail_NotFound", func(t *testing.T) {
		// Arrange
		expectedSQL := regexp.QuoteMeta(`SELECT id, email, password, name, role, created_at, updated_at FROM users WHERE email = $1`)

		mock.ExpectQuery(expectedSQL).WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "role", "created_at", "updated_at"}))

		// Act
		user, err := repo.GetUserByEmail(ctx, "missing@example.com")

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserById_Success", func(t *testing.T) {
		// Arrange
		userID := uuid.New()
		now := time.Now()

		expectedSQL := regexp.QuoteMeta(`
		SELECT id, email, name, role, created_at, updated_at
		FROM users
		WHERE id = $1`)

		rows := sqlmock.NewRows([]string{"id", "email", "name", "role", "created_at", "updated_at"}).
			AddRow(userID.String(), "test@example.com", "Test User", models.RoleCustomer, now, now)

		mock.ExpectQuery(expectedSQL).WithArgs(userID).WillReturnRows(rows)

		// Act
		user, err := repo.GetUserById(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Empty(t, user.Password, "profile read must not include the password hash")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserById_NotFound", func(t *testing.T) {
		// Arrange
		userID := uuid.New()

		expectedSQL := regexp.QuoteMeta(`SELECT id, email, name, role, created_at, updated_at FROM users WHERE id = $1`)

		mock.ExpectQuery(expectedSQL).WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "created_at", "updated_at"}))

		// Act
		user, err := repo.GetUserById(ctx, userID)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
