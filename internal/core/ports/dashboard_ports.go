package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
)

type DashboardRepository interface {
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error)
}

type DashboardService interface {
	Stats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error)
	// Videos lists the owner's videos including unpublished ones.
	Videos(ctx context.Context, channelID uuid.UUID) ([]*domain.Video, error)
}
