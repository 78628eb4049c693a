package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

const pqUniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, handle, email, display_name, password_hash, refresh_token,
	avatar_url, avatar_key, cover_url, cover_key, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, handle, email, display_name, password_hash, avatar_url, avatar_key, cover_url, cover_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	avatarURL, avatarKey := assetColumns(user.Avatar)
	coverURL, coverKey := assetColumns(user.CoverImage)
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Handle, user.Email, user.DisplayName, user.PasswordHash,
		avatarURL, avatarKey, coverURL, coverKey,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("%w: handle or email already taken", domain.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *UserRepository) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	return r.getBy(ctx, "handle = $1", handle)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET display_name = $2, email = $3, avatar_url = $4, avatar_key = $5,
			cover_url = $6, cover_key = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	avatarURL, avatarKey := assetColumns(user.Avatar)
	coverURL, coverKey := assetColumns(user.CoverImage)
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.DisplayName, user.Email, avatarURL, avatarKey, coverURL, coverKey,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("%w: email already taken", domain.ErrConflict)
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.execOnUser(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	return r.execOnUser(ctx, `UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`, id, token)
}

func (r *UserRepository) execOnUser(ctx context.Context, query string, id uuid.UUID, arg any) error {
	res, err := r.db.ExecContext(ctx, query, id, arg)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ChannelProfile(ctx context.Context, handle string, viewerID uuid.UUID) (*domain.ChannelProfile, error) {
	query := `
		SELECT ` + userColumns + `,
			(SELECT count(*) FROM subscriptions WHERE channel_id = users.id) AS subscriber_count,
			(SELECT count(*) FROM subscriptions WHERE subscriber_id = users.id) AS subscribed_to_count,
			EXISTS (
				SELECT 1 FROM subscriptions
				WHERE channel_id = users.id AND subscriber_id = $2
			) AS is_subscribed
		FROM users
		WHERE handle = $1
	`
	row := r.db.QueryRowContext(ctx, query, handle, viewerID)

	profile := &domain.ChannelProfile{}
	var avatarURL, avatarKey, coverURL, coverKey sql.NullString
	err := row.Scan(
		&profile.ID, &profile.Handle, &profile.Email, &profile.DisplayName,
		&profile.PasswordHash, &profile.User.RefreshToken,
		&avatarURL, &avatarKey, &coverURL, &coverKey,
		&profile.CreatedAt, &profile.UpdatedAt,
		&profile.SubscriberCount, &profile.SubscribedToCount, &profile.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}
	profile.Avatar = assetFromColumns(avatarURL, avatarKey)
	profile.CoverImage = assetFromColumns(coverURL, coverKey)
	// A channel page never exposes credentials, even internally.
	profile.PasswordHash = ""
	profile.User.RefreshToken = nil
	return profile, nil
}

func (r *UserRepository) AppendWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	query := `
		INSERT INTO watch_history (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("failed to append watch history: %w", err)
	}
	return nil
}

func (r *UserRepository) WatchHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Video, error) {
	query := videoSelect + `
		JOIN watch_history wh ON wh.video_id = v.id
		WHERE wh.user_id = $1 AND v.is_published
		ORDER BY wh.watched_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var avatarURL, avatarKey, coverURL, coverKey sql.NullString
	err := row.Scan(
		&user.ID, &user.Handle, &user.Email, &user.DisplayName,
		&user.PasswordHash, &user.RefreshToken,
		&avatarURL, &avatarKey, &coverURL, &coverKey,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Avatar = assetFromColumns(avatarURL, avatarKey)
	user.CoverImage = assetFromColumns(coverURL, coverKey)
	return user, nil
}

func assetColumns(asset *domain.Asset) (url, key sql.NullString) {
	if asset == nil {
		return
	}
	return sql.NullString{String: asset.URL, Valid: true}, sql.NullString{String: asset.Key, Valid: true}
}

func assetFromColumns(url, key sql.NullString) *domain.Asset {
	if !url.Valid {
		return nil
	}
	return &domain.Asset{URL: url.String, Key: key.String}
}
