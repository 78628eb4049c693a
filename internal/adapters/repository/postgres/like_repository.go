package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) ports.LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle deletes an existing like or inserts a new one. The delete-first
// order makes the unique constraint the only arbiter under concurrency.
func (r *LikeRepository) Toggle(ctx context.Context, userID uuid.UUID, target domain.LikeTarget, targetID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND target = $2 AND target_id = $3`,
		userID, target, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}
	if affected > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO likes (user_id, target, target_id) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, target, target_id) DO NOTHING`,
		userID, target, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to insert like: %w", err)
	}
	return true, nil
}
