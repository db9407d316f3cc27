package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/adforge/api/internal/model"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different workspace.
var ErrNotFound = errors.New("record not found")

func campaignKey(id string) string          { return fmt.Sprintf("campaign:%s", id) }
func workspaceCampaignsKey(ws string) string { return fmt.Sprintf("workspace:%s:campaigns", ws) }

// CampaignStore persists campaigns in Redis, indexed per workspace.
type CampaignStore struct {
	redis *redis.Client
}

func NewCampaignStore(redisClient *redis.Client) *CampaignStore {
	return &CampaignStore{redis: redisClient}
}

// Create inserts a new campaign and adds it to the workspace index
func (s *CampaignStore) Create(ctx context.Context, c *model.Campaign) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}

	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, campaignKey(c.ID), data, 0)
	pipe.SAdd(ctx, workspaceCampaignsKey(c.WorkspaceID), c.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}
	return nil
}

// Get fetches a campaign by id, scoped to the workspace.
func (s *CampaignStore) Get(ctx context.Context, workspaceID, id string) (*model.Campaign, error) {
	data, err := s.redis.Get(ctx, campaignKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var c model.Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign: %w", err)
	}
	if c.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	return &c, nil
}

// List returns all campaigns in a workspace, newest first
func (s *CampaignStore) List(ctx context.Context, workspaceID string) ([]*model.Campaign, error) {
	ids, err := s.redis.SMembers(ctx, workspaceCampaignsKey(workspaceID)).Result()
	if err != nil {
		return nil, err
	}

	campaigns := make([]*model.Campaign, 0, len(ids))
	for _, id := range ids {
		c, err := s.Get(ctx, workspaceID, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		campaigns = append(campaigns, c)
	}

	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt)
	})
	return campaigns, nil
}

// Update overwrites an existing campaign record
func (s *CampaignStore) Update(ctx context.Context, c *model.Campaign) error {
	if _, err := s.Get(ctx, c.WorkspaceID, c.ID); err != nil {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}
	return s.redis.Set(ctx, campaignKey(c.ID), data, 0).Err()
}

// Delete removes a campaign record and its workspace index entry. Cascading
// deletion of generations and video jobs is the campaign service's job.
func (s *CampaignStore) Delete(ctx context.Context, workspaceID, id string) error {
	if _, err := s.Get(ctx, workspaceID, id); err != nil {
		return err
	}

	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, campaignKey(id))
	pipe.SRem(ctx, workspaceCampaignsKey(workspaceID), id)
	_, err := pipe.Exec(ctx)
	return err
}
