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

func generationKey(id string) string           { return fmt.Sprintf("generation:%s", id) }
func campaignGenerationsKey(cid string) string { return fmt.Sprintf("campaign:%s:generations", cid) }

// GenerationStore persists pipeline stage outputs. Records are append-only:
// the latest per (campaign, stage) is the current value, older ones are
// history.
type GenerationStore struct {
	redis *redis.Client
}

func NewGenerationStore(redisClient *redis.Client) *GenerationStore {
	return &GenerationStore{redis: redisClient}
}

// Insert saves a new generation and indexes it under its campaign
func (s *GenerationStore) Insert(ctx context.Context, g *model.Generation) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal generation: %w", err)
	}

	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, generationKey(g.ID), data, 0)
	pipe.SAdd(ctx, campaignGenerationsKey(g.CampaignID), g.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save generation: %w", err)
	}
	return nil
}

// Get fetches a generation by id
func (s *GenerationStore) Get(ctx context.Context, id string) (*model.Generation, error) {
	data, err := s.redis.Get(ctx, generationKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var g model.Generation
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generation: %w", err)
	}
	return &g, nil
}

// ListByCampaign returns a campaign's generations, newest first. An empty
// stage means all stages.
func (s *GenerationStore) ListByCampaign(ctx context.Context, campaignID string, stage model.Stage) ([]*model.Generation, error) {
	ids, err := s.redis.SMembers(ctx, campaignGenerationsKey(campaignID)).Result()
	if err != nil {
		return nil, err
	}

	generations := make([]*model.Generation, 0, len(ids))
	for _, id := range ids {
		g, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		if stage != "" && g.Stage != stage {
			continue
		}
		generations = append(generations, g)
	}

	sort.Slice(generations, func(i, j int) bool {
		return generations[i].CreatedAt.After(generations[j].CreatedAt)
	})
	return generations, nil
}

// LatestByStage returns the canonical current output for a stage, or
// ErrNotFound if the campaign has not reached that stage.
func (s *GenerationStore) LatestByStage(ctx context.Context, campaignID string, stage model.Stage) (*model.Generation, error) {
	generations, err := s.ListByCampaign(ctx, campaignID, stage)
	if err != nil {
		return nil, err
	}
	if len(generations) == 0 {
		return nil, ErrNotFound
	}
	return generations[0], nil
}

// DeleteByCampaign removes all of a campaign's generations
func (s *GenerationStore) DeleteByCampaign(ctx context.Context, campaignID string) error {
	ids, err := s.redis.SMembers(ctx, campaignGenerationsKey(campaignID)).Result()
	if err != nil {
		return err
	}

	pipe := s.redis.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, generationKey(id))
	}
	pipe.Del(ctx, campaignGenerationsKey(campaignID))
	_, err = pipe.Exec(ctx)
	return err
}
