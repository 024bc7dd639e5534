package genremodule

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/types"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return NewRepository(db), mock
}

func TestCreateErrorMessages(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "genres"`)).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_genres_name\""})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &database.Genre{Name: "Drama"})
		assert.Equal(t, types.ErrorCodeConflict, types.CodeOf(err))
		assert.Contains(t, err.Error(), "Genre Drama already exists")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "genres"`)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &database.Genre{Name: "Drama"})
		assert.Equal(t, types.ErrorCodeInternal, types.CodeOf(err))
		assert.Contains(t, err.Error(), "genre storage failure")
		assert.NotContains(t, err.Error(), "Drama")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
