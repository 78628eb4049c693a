package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type TweetRepository struct {
	db *sql.DB
}

func NewTweetRepository(db *sql.DB) ports.TweetRepository {
	return &TweetRepository{db: db}
}

const tweetSelect = `
	SELECT t.id, t.owner_id, t.content, t.created_at, t.updated_at,
		u.id, u.handle, u.display_name, u.avatar_url, u.avatar_key,
		(SELECT count(*) FROM likes WHERE target = 'tweet' AND target_id = t.id) AS like_count
	FROM tweets t
	JOIN users u ON u.id = t.owner_id
`

func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	query := `
		INSERT INTO tweets (id, owner_id, content)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, tweet.ID, tweet.OwnerID, tweet.Content).
		Scan(&tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	row := r.db.QueryRowContext(ctx, tweetSelect+` WHERE t.id = $1`, id)
	tweet, err := scanTweet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return tweet, nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Tweet, error) {
	query := tweetSelect + ` WHERE t.owner_id = $1 ORDER BY t.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer rows.Close()

	var tweets []*domain.Tweet
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tweet: %w", err)
		}
		tweets = append(tweets, tweet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tweets: %w", err)
	}
	return tweets, nil
}

func (r *TweetRepository) Update(ctx context.Context, tweet *domain.Tweet) error {
	query := `UPDATE tweets SET content = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, tweet.ID, tweet.Content).Scan(&tweet.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE target = 'tweet' AND target_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete tweet likes: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanTweet(row rowScanner) (*domain.Tweet, error) {
	tweet := &domain.Tweet{Owner: &domain.Owner{}}
	var avatarURL, avatarKey sql.NullString
	err := row.Scan(
		&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt,
		&tweet.Owner.ID, &tweet.Owner.Handle, &tweet.Owner.DisplayName,
		&avatarURL, &avatarKey,
		&tweet.Likes,
	)
	if err != nil {
		return nil, err
	}
	tweet.Owner.Avatar = assetFromColumns(avatarURL, avatarKey)
	return tweet, nil
}
