package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) ports.DashboardRepository {
	return &DashboardRepository{db: db}
}

// ChannelStats aggregates the dashboard numbers in a single round trip.
func (r *DashboardRepository) ChannelStats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM videos WHERE owner_id = $1),
			(SELECT COALESCE(sum(views), 0) FROM videos WHERE owner_id = $1),
			(SELECT count(*) FROM subscriptions WHERE channel_id = $1),
			(SELECT count(*) FROM likes l
				JOIN videos v ON l.target = 'video' AND l.target_id = v.id
				WHERE v.owner_id = $1)
	`
	stats := &domain.ChannelStats{}
	err := r.db.QueryRowContext(ctx, query, channelID).Scan(
		&stats.TotalVideos, &stats.TotalViews, &stats.TotalSubscribers, &stats.TotalLikes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}
	return stats, nil
}
