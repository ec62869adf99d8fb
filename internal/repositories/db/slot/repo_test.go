package slotrepo

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"insightflow/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *repository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := NewRepository(sqlxDB)
	return sqlxDB, mock, repo
}

func TestGet_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow("sid1:userId", "user-1", time.Now())

	mock.ExpectQuery("SELECT(.|\n)*FROM session_slots s(.|\n)*WHERE s.key").
		WithArgs("sid1:userId").
		WillReturnRows(rows)

	value, err := repo.Get(context.Background(), "sid1:userId")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery("SELECT(.|\n)*FROM session_slots").
		WithArgs("sid1:userId").
		WillReturnError(sql.ErrNoRows)

	value, err := repo.Get(context.Background(), "sid1:userId")
	assert.ErrorIs(t, err, models.ErrSlotNotFound)
	assert.Empty(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_DBError(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery("SELECT(.|\n)*FROM session_slots").
		WithArgs("sid1:userId").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), "sid1:userId")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrSlotNotFound)
}

func TestSet_Upsert(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return now }

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO session_slots (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`)).
		WithArgs("sid1:userId", "user-1", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Set(context.Background(), "sid1:userId", "user-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDel_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session_slots WHERE key = ANY($1)`)).
		WithArgs(pq.Array([]string{"sid1:userId", "sid1:token"})).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.Del(context.Background(), "sid1:userId", "sid1:token")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDel_NoKeys(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	err := repo.Del(context.Background())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
