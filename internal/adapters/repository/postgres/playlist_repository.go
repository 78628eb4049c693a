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

type PlaylistRepository struct {
	db *sql.DB
}

func NewPlaylistRepository(db *sql.DB) ports.PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	query := `
		INSERT INTO playlists (id, owner_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description,
	).Scan(&playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	query := `SELECT id, owner_id, name, description, created_at, updated_at FROM playlists WHERE id = $1`
	playlist := &domain.Playlist{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
		&playlist.CreatedAt, &playlist.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	videos, err := r.fetchVideos(ctx, id)
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos
	return playlist, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	query := `UPDATE playlists SET name = $2, description = $3, updated_at = now() WHERE id = $1 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, playlist.ID, playlist.Name, playlist.Description).
		Scan(&playlist.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to add video to playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`
	if _, err := r.db.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) fetchVideos(ctx context.Context, playlistID uuid.UUID) ([]*domain.Video, error) {
	query := videoSelect + `
		JOIN playlist_videos pv ON pv.video_id = v.id
		WHERE pv.playlist_id = $1 AND v.is_published
		ORDER BY pv.added_at
	`
	rows, err := r.db.QueryContext(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist videos: %w", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}
