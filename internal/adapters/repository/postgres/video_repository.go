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

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) ports.VideoRepository {
	return &VideoRepository{db: db}
}

// videoSelect joins the owner projection and like count; queries append
// their own WHERE/ORDER/LIMIT clauses.
const videoSelect = `
	SELECT v.id, v.owner_id, v.title, v.description,
		v.file_url, v.file_key, v.thumbnail_url, v.thumbnail_key,
		v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		u.id, u.handle, u.display_name, u.avatar_url, u.avatar_key,
		(SELECT count(*) FROM likes WHERE target = 'video' AND target_id = v.id) AS like_count
	FROM videos v
	JOIN users u ON u.id = v.owner_id
`

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, title, description, file_url, file_key,
			thumbnail_url, thumbnail_key, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		video.ID, video.OwnerID, video.Title, video.Description,
		video.File.URL, video.File.Key, video.Thumbnail.URL, video.Thumbnail.Key,
		video.Duration, video.IsPublished,
	).Scan(&video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	row := r.db.QueryRowContext(ctx, videoSelect+` WHERE v.id = $1`, id)
	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

func (r *VideoRepository) List(ctx context.Context, filter ports.VideoFilter) ([]*domain.Video, error) {
	query := videoSelect + ` WHERE 1=1`
	args := []any{}

	if filter.OnlyPublished {
		query += ` AND v.is_published`
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(` AND v.title ILIKE $%d`, len(args))
	}
	if filter.OwnerID != uuid.Nil {
		args = append(args, filter.OwnerID)
		query += fmt.Sprintf(` AND v.owner_id = $%d`, len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY v.created_at DESC LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *VideoRepository) Update(ctx context.Context, video *domain.Video) error {
	query := `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4, thumbnail_key = $5,
			is_published = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		video.ID, video.Title, video.Description,
		video.Thumbnail.URL, video.Thumbnail.Key, video.IsPublished,
	).Scan(&video.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// Delete removes the video and its dependent content in one transaction.
// Comments, playlist entries and history rows go via ON DELETE CASCADE;
// likes reference by target id and are removed explicitly.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE (target = 'video' AND target_id = $1)
			OR (target = 'comment' AND target_id IN (SELECT id FROM comments WHERE video_id = $1))`, id); err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *VideoRepository) OwnerVideos(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error) {
	query := videoSelect + ` WHERE v.owner_id = $1 ORDER BY v.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *VideoRepository) LikedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Video, error) {
	query := videoSelect + `
		JOIN likes l ON l.target = 'video' AND l.target_id = v.id
		WHERE l.user_id = $1 AND v.is_published
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

func scanVideo(row rowScanner) (*domain.Video, error) {
	video := &domain.Video{Owner: &domain.Owner{}}
	var avatarURL, avatarKey sql.NullString
	err := row.Scan(
		&video.ID, &video.OwnerID, &video.Title, &video.Description,
		&video.File.URL, &video.File.Key, &video.Thumbnail.URL, &video.Thumbnail.Key,
		&video.Duration, &video.Views, &video.IsPublished, &video.CreatedAt, &video.UpdatedAt,
		&video.Owner.ID, &video.Owner.Handle, &video.Owner.DisplayName, &avatarURL, &avatarKey,
		&video.Likes,
	)
	if err != nil {
		return nil, err
	}
	video.Owner.Avatar = assetFromColumns(avatarURL, avatarKey)
	return video, nil
}

func scanVideos(rows *sql.Rows) ([]*domain.Video, error) {
	var videos []*domain.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}
	return videos, nil
}
