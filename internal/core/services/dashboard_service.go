package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type DashboardService struct {
	dashboard ports.DashboardRepository
	videos    ports.VideoRepository
}

func NewDashboardService(dashboard ports.DashboardRepository, videos ports.VideoRepository) *DashboardService {
	return &DashboardService{dashboard: dashboard, videos: videos}
}

func (s *DashboardService) Stats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error) {
	return s.dashboard.ChannelStats(ctx, channelID)
}

func (s *DashboardService) Videos(ctx context.Context, channelID uuid.UUID) ([]*domain.Video, error) {
	return s.videos.OwnerVideos(ctx, channelID)
}
