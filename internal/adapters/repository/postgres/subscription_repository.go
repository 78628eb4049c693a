package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) ports.SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle subscription: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to toggle subscription: %w", err)
	}
	if affected > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (subscriber_id, channel_id) VALUES ($1, $2)
			ON CONFLICT (subscriber_id, channel_id) DO NOTHING`,
		subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to insert subscription: %w", err)
	}
	return true, nil
}

func (r *SubscriptionRepository) Subscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.Owner, error) {
	query := `
		SELECT u.id, u.handle, u.display_name, u.avatar_url, u.avatar_key
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
	`
	return r.queryOwners(ctx, query, channelID)
}

func (r *SubscriptionRepository) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.Owner, error) {
	query := `
		SELECT u.id, u.handle, u.display_name, u.avatar_url, u.avatar_key
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
	`
	return r.queryOwners(ctx, query, subscriberID)
}

func (r *SubscriptionRepository) queryOwners(ctx context.Context, query string, arg any) ([]*domain.Owner, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var owners []*domain.Owner
	for rows.Next() {
		owner := &domain.Owner{}
		var avatarURL, avatarKey sql.NullString
		if err := rows.Scan(&owner.ID, &owner.Handle, &owner.DisplayName, &avatarURL, &avatarKey); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		owner.Avatar = assetFromColumns(avatarURL, avatarKey)
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}
	return owners, nil
}
