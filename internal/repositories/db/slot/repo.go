package slotrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"insightflow/internal/entities"
	"insightflow/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pkg = "slotRepo/"

type repository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db, now: time.Now}
}

func (r *repository) Get(ctx context.Context, key string) (string, error) {
	op := pkg + "Get"

	rawSlot := entities.Slot{}

	err := r.db.GetContext(ctx, &rawSlot,
		`SELECT
			s.key AS key,
			s.value AS value,
			s.updated_at AS updated_at
		FROM session_slots s
		WHERE s.key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", models.ErrSlotNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return rawSlot.Value, nil
}

func (r *repository) Set(ctx context.Context, key string, value string) error {
	op := pkg + "Set"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_slots (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, r.now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) Del(ctx context.Context, keys ...string) error {
	op := pkg + "Del"

	if len(keys) == 0 {
		return nil
	}

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session_slots WHERE key = ANY($1)`,
		pq.Array(keys))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
