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

func videoJobKey(id string) string       { return fmt.Sprintf("videojob:%s", id) }
func campaignJobsKey(cid string) string  { return fmt.Sprintf("campaign:%s:jobs", cid) }
func workspaceJobsKey(ws string) string  { return fmt.Sprintf("workspace:%s:jobs", ws) }

// VideoJobStore persists video rendering jobs. Jobs are indexed both per
// workspace and, when associated, per campaign; quick jobs only appear in
// the workspace index.
type VideoJobStore struct {
	redis *redis.Client
}

func NewVideoJobStore(redisClient *redis.Client) *VideoJobStore {
	return &VideoJobStore{redis: redisClient}
}

// Create inserts a new job record and returns before any rendering starts
func (s *VideoJobStore) Create(ctx context.Context, job *model.VideoJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal video job: %w", err)
	}

	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, videoJobKey(job.ID), data, 0)
	pipe.SAdd(ctx, workspaceJobsKey(job.WorkspaceID), job.ID)
	if job.CampaignID != "" {
		pipe.SAdd(ctx, campaignJobsKey(job.CampaignID), job.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save video job: %w", err)
	}
	return nil
}

// Get fetches a job by id
func (s *VideoJobStore) Get(ctx context.Context, id string) (*model.VideoJob, error) {
	data, err := s.redis.Get(ctx, videoJobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var job model.VideoJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal video job: %w", err)
	}
	return &job, nil
}

// Update overwrites an existing job record
func (s *VideoJobStore) Update(ctx context.Context, job *model.VideoJob) error {
	if _, err := s.Get(ctx, job.ID); err != nil {
		return err
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal video job: %w", err)
	}
	return s.redis.Set(ctx, videoJobKey(job.ID), data, 0).Err()
}

// ListByCampaign returns a campaign's jobs ordered by scene number
func (s *VideoJobStore) ListByCampaign(ctx context.Context, campaignID string) ([]*model.VideoJob, error) {
	return s.list(ctx, campaignJobsKey(campaignID))
}

// ListByWorkspace returns every job in a workspace ordered by scene number
func (s *VideoJobStore) ListByWorkspace(ctx context.Context, workspaceID string) ([]*model.VideoJob, error) {
	return s.list(ctx, workspaceJobsKey(workspaceID))
}

func (s *VideoJobStore) list(ctx context.Context, indexKey string) ([]*model.VideoJob, error) {
	ids, err := s.redis.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	jobs := make([]*model.VideoJob, 0, len(ids))
	for _, id := range ids {
		job, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		jobs = append(jobs, job)
	}

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].SceneNumber != jobs[j].SceneNumber {
			return jobs[i].SceneNumber < jobs[j].SceneNumber
		}
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// Delete removes a job record and its index entries. Removing the job's
// local video file is the caller's responsibility and must accompany this.
func (s *VideoJobStore) Delete(ctx context.Context, id string) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, videoJobKey(id))
	pipe.SRem(ctx, workspaceJobsKey(job.WorkspaceID), id)
	if job.CampaignID != "" {
		pipe.SRem(ctx, campaignJobsKey(job.CampaignID), id)
	}
	_, err = pipe.Exec(ctx)
	return err
}
