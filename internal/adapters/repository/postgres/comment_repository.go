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

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) ports.CommentRepository {
	return &CommentRepository{db: db}
}

const commentSelect = `
	SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
		u.id, u.handle, u.display_name, u.avatar_url, u.avatar_key,
		(SELECT count(*) FROM likes WHERE target = 'comment' AND target_id = c.id) AS like_count
	FROM comments c
	JOIN users u ON u.id = c.owner_id
`

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, video_id, owner_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		comment.ID, comment.VideoID, comment.OwnerID, comment.Content,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, limit, offset int) ([]*domain.Comment, error) {
	query := commentSelect + ` WHERE c.video_id = $1 ORDER BY c.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, videoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query := `UPDATE comments SET content = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE target = 'comment' AND target_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete comment likes: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	comment := &domain.Comment{Owner: &domain.Owner{}}
	var avatarURL, avatarKey sql.NullString
	err := row.Scan(
		&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
		&comment.Owner.ID, &comment.Owner.Handle, &comment.Owner.DisplayName,
		&avatarURL, &avatarKey,
		&comment.Likes,
	)
	if err != nil {
		return nil, err
	}
	comment.Owner.Avatar = assetFromColumns(avatarURL, avatarKey)
	return comment, nil
}
