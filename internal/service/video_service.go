package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/client"
	"github.com/adforge/api/internal/model"
	"github.com/adforge/api/internal/store"
	"github.com/adforge/api/internal/websocket"
	"github.com/adforge/api/pkg/response"
)

// Asynq task types for video rendering
const (
	TaskTypeVideoScene = "video:scene"
	TaskTypeVideoBatch = "video:batch"
	QueueVideos        = "videos"
)

// ErrJobNotRetryable is returned when retry is requested for a job that did
// not fail.
var ErrJobNotRetryable = errors.New("only failed jobs can be retried")

// ErrMissingPrompt is returned when a scene render is requested without an
// AI video prompt to submit.
var ErrMissingPrompt = errors.New("scene has no ai video prompt")

// SceneTaskPayload is the asynq payload for a single-scene render
type SceneTaskPayload struct {
	JobID         string                `json:"jobId"`
	Scene         model.StoryboardScene `json:"scene"`
	ProductImages []string              `json:"productImages,omitempty"`
	Provider      string                `json:"provider"`
}

// BatchTaskPayload is the asynq payload for a sequential batch render
type BatchTaskPayload struct {
	JobIDs        []string                `json:"jobIds"`
	Scenes        []model.StoryboardScene `json:"scenes"`
	ProductImages []string                `json:"productImages,omitempty"`
	Provider      string                  `json:"provider"`
}

// SceneOutcome reports one scene's terminal state inside a batch
type SceneOutcome struct {
	JobID       string `json:"jobId"`
	SceneNumber int    `json:"sceneNumber"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// VideoService manages video rendering jobs: it creates queued job records,
// enqueues background tasks, drives providers to a terminal state, and gates
// completion on a successful local download.
type VideoService struct {
	jobs        *store.VideoJobStore
	registry    *client.ProviderRegistry
	asynqClient *asynq.Client
	httpClient  *http.Client
	hub         *websocket.Hub
	logger      zerolog.Logger

	videosDir  string
	batchDelay time.Duration
}

func NewVideoService(jobs *store.VideoJobStore, registry *client.ProviderRegistry, asynqClient *asynq.Client, hub *websocket.Hub, videosDir string, batchDelay time.Duration, logger zerolog.Logger) *VideoService {
	return &VideoService{
		jobs:        jobs,
		registry:    registry,
		asynqClient: asynqClient,
		httpClient:  &http.Client{Timeout: 5 * time.Minute},
		hub:         hub,
		logger:      logger.With().Str("component", "videos").Logger(),
		videosDir:   videosDir,
		batchDelay:  batchDelay,
	}
}

// StartScene creates a queued job for one scene and enqueues its render task.
// The job id is returned immediately; rendering happens in the background.
func (s *VideoService) StartScene(ctx context.Context, workspaceID string, req *model.GenerateSceneRequest) (*model.VideoJobStartResponse, error) {
	if strings.TrimSpace(req.Scene.AIVideoPrompt) == "" {
		return nil, ErrMissingPrompt
	}

	providerName, err := s.resolveProvider(req.Provider)
	if err != nil {
		return nil, err
	}

	job := s.newJob(workspaceID, req.CampaignID, req.Scene, providerName, req.Settings)
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(SceneTaskPayload{
		JobID:         job.ID,
		Scene:         req.Scene,
		ProductImages: req.ProductImages,
		Provider:      providerName,
	})
	if err != nil {
		return nil, err
	}

	if err := s.enqueue(ctx, TaskTypeVideoScene, payload); err != nil {
		return nil, err
	}

	s.logger.Info().Str("jobId", job.ID).Str("provider", providerName).Msg("scene job queued")
	return &model.VideoJobStartResponse{JobID: job.ID, Status: model.JobStatusQueued, CreatedAt: job.CreatedAt}, nil
}

// StartBatch creates queued jobs for every scene up front so all job ids are
// known immediately, then enqueues one sequential batch task.
func (s *VideoService) StartBatch(ctx context.Context, workspaceID string, req *model.BatchGenerateRequest) (*model.BatchStartResponse, error) {
	providerName, err := s.resolveProvider(req.Provider)
	if err != nil {
		return nil, err
	}

	jobIDs := make([]string, 0, len(req.Scenes))
	var createdAt time.Time
	for _, scene := range req.Scenes {
		job := s.newJob(workspaceID, req.CampaignID, scene, providerName, req.Settings)
		if err := s.jobs.Create(ctx, job); err != nil {
			return nil, err
		}
		jobIDs = append(jobIDs, job.ID)
		createdAt = job.CreatedAt
	}

	payload, err := json.Marshal(BatchTaskPayload{
		JobIDs:        jobIDs,
		Scenes:        req.Scenes,
		ProductImages: req.ProductImages,
		Provider:      providerName,
	})
	if err != nil {
		return nil, err
	}

	if err := s.enqueue(ctx, TaskTypeVideoBatch, payload); err != nil {
		return nil, err
	}

	s.logger.Info().Str("campaignId", req.CampaignID).Int("scenes", len(req.Scenes)).Str("provider", providerName).Msg("batch queued")
	return &model.BatchStartResponse{JobIDs: jobIDs, Status: model.JobStatusQueued, CreatedAt: createdAt}, nil
}

// RetryJob creates a fresh job from a failed one, optionally on a different
// provider. The failed job is left in place as history; retries always submit
// text-to-video from the stored prompt.
func (s *VideoService) RetryJob(ctx context.Context, workspaceID, jobID string, req *model.RetryJobRequest) (*model.VideoJobStartResponse, error) {
	old, err := s.GetJob(ctx, workspaceID, jobID)
	if err != nil {
		return nil, err
	}
	if old.Status != model.JobStatusFailed {
		return nil, ErrJobNotRetryable
	}

	providerName, err := s.resolveProvider(req.Provider)
	if err != nil {
		return nil, err
	}

	job := &model.VideoJob{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		CampaignID:  old.CampaignID,
		SceneNumber: old.SceneNumber,
		Provider:    providerName,
		Status:      model.JobStatusQueued,
		Prompt:      old.Prompt,
		Settings:    old.Settings,
		CreatedAt:   time.Now(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(SceneTaskPayload{
		JobID: job.ID,
		Scene: model.StoryboardScene{
			SceneNumber:   old.SceneNumber,
			AIVideoPrompt: old.Prompt,
		},
		Provider: providerName,
	})
	if err != nil {
		return nil, err
	}

	if err := s.enqueue(ctx, TaskTypeVideoScene, payload); err != nil {
		return nil, err
	}

	s.logger.Info().Str("jobId", job.ID).Str("retryOf", old.ID).Str("provider", providerName).Msg("retry job queued")
	return &model.VideoJobStartResponse{JobID: job.ID, Status: model.JobStatusQueued, CreatedAt: job.CreatedAt}, nil
}

// GetJob fetches a job scoped to the workspace
func (s *VideoService) GetJob(ctx context.Context, workspaceID, jobID string) (*model.VideoJob, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.WorkspaceID != workspaceID {
		return nil, store.ErrNotFound
	}
	return job, nil
}

// ListByCampaign returns a campaign's jobs ordered by scene number
func (s *VideoService) ListByCampaign(ctx context.Context, campaignID string) ([]*model.VideoJob, error) {
	return s.jobs.ListByCampaign(ctx, campaignID)
}

// DeleteJob removes a job record and its downloaded video file
func (s *VideoService) DeleteJob(ctx context.Context, workspaceID, jobID string) error {
	job, err := s.GetJob(ctx, workspaceID, jobID)
	if err != nil {
		return err
	}

	if job.Result != nil && job.Result.LocalPath != "" {
		if err := os.Remove(job.Result.LocalPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("jobId", jobID).Str("path", job.Result.LocalPath).Msg("failed to remove video file")
		}
	}

	return s.jobs.Delete(ctx, jobID)
}

// ProcessScene is the worker entry point for a single-scene task. It marks
// the job processing, renders the scene, and records the terminal state.
func (s *VideoService) ProcessScene(ctx context.Context, payload *SceneTaskPayload) error {
	job, err := s.jobs.Get(ctx, payload.JobID)
	if err != nil {
		return err
	}

	s.markProcessing(ctx, job)

	result := s.GenerateScene(ctx, job, payload.Scene, payload.ProductImages, payload.Provider)
	return s.finishJob(ctx, job, result)
}

// ProcessBatch is the worker entry point for a batch task. Scenes render
// strictly sequentially with a pacing delay between submissions; one scene's
// failure never aborts the rest.
func (s *VideoService) ProcessBatch(ctx context.Context, payload *BatchTaskPayload) error {
	for i, jobID := range payload.JobIDs {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.batchDelay):
			}
		}

		job, err := s.jobs.Get(ctx, jobID)
		if err != nil {
			s.logger.Error().Err(err).Str("jobId", jobID).Msg("batch job record missing")
			continue
		}

		s.markProcessing(ctx, job)
		result := s.GenerateScene(ctx, job, payload.Scenes[i], payload.ProductImages, payload.Provider)
		if err := s.finishJob(ctx, job, result); err != nil {
			s.logger.Error().Err(err).Str("jobId", jobID).Msg("failed to record batch job outcome")
		}
	}
	return nil
}

// GenerateScene drives one scene through a provider to a terminal local
// result. Completion requires both a provider success and a successful
// download of the video file.
func (s *VideoService) GenerateScene(ctx context.Context, job *model.VideoJob, scene model.StoryboardScene, productImages []string, providerName string) *model.VideoJobResult {
	provider, err := s.registry.Get(providerName)
	if err != nil {
		return &model.VideoJobResult{Error: err.Error()}
	}

	var result *client.VideoResult
	imageURL := s.sourceImage(scene, productImages)
	if imageURL != "" {
		result, err = provider.SubmitImageToVideo(ctx, imageURL, scene.AIVideoPrompt, job.Settings)
	} else {
		result, err = provider.SubmitTextToVideo(ctx, scene.AIVideoPrompt, job.Settings)
	}
	if err != nil {
		return &model.VideoJobResult{Error: err.Error()}
	}
	if !result.Success {
		return &model.VideoJobResult{TaskID: result.TaskID, Error: result.Error}
	}

	fileName := s.fileName(job)
	localPath, err := s.download(ctx, result.VideoURL, fileName)
	if err != nil {
		return &model.VideoJobResult{
			RemoteURL: result.VideoURL,
			TaskID:    result.TaskID,
			Error:     fmt.Sprintf("video generated but download failed: %v", err),
		}
	}

	return &model.VideoJobResult{
		LocalPath: localPath,
		FileName:  fileName,
		RemoteURL: result.VideoURL,
		TaskID:    result.TaskID,
	}
}

// sourceImage resolves the image-to-video source, if any. A scene only uses
// image-to-video when it asks for it and its index points at a real image.
func (s *VideoService) sourceImage(scene model.StoryboardScene, productImages []string) string {
	if scene.GenerationMethod != model.GenerationMethodImageToVideo {
		return ""
	}
	if scene.SourceImageIndex == nil {
		return ""
	}
	idx := *scene.SourceImageIndex
	if idx < 0 || idx >= len(productImages) {
		return ""
	}
	return productImages[idx]
}

func (s *VideoService) fileName(job *model.VideoJob) string {
	scope := job.CampaignID
	if scope == "" {
		scope = "quick"
	}
	return fmt.Sprintf("%s_scene%d_%d.mp4", scope, job.SceneNumber, time.Now().UnixMilli())
}

// download fetches the remote video into the videos directory. A partial file
// is removed on failure so the directory only ever holds complete videos.
func (s *VideoService) download(ctx context.Context, url, fileName string) (string, error) {
	if err := os.MkdirAll(s.videosDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create videos directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video download returned status %d", resp.StatusCode)
	}

	localPath := filepath.Join(s.videosDir, fileName)
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create video file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(localPath)
		return "", fmt.Errorf("failed to write video file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(localPath)
		return "", err
	}
	return localPath, nil
}

func (s *VideoService) newJob(workspaceID, campaignID string, scene model.StoryboardScene, providerName string, settings model.VideoSettings) *model.VideoJob {
	return &model.VideoJob{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		CampaignID:  campaignID,
		SceneNumber: scene.SceneNumber,
		Provider:    providerName,
		Status:      model.JobStatusQueued,
		Prompt:      scene.AIVideoPrompt,
		Settings:    settings,
		CreatedAt:   time.Now(),
	}
}

// resolveProvider maps a requested provider id to a registered, configured
// provider. An empty id means the default.
func (s *VideoService) resolveProvider(name string) (string, error) {
	provider, err := s.registry.Get(name)
	if err != nil {
		return "", err
	}
	if !provider.IsConfigured() {
		return "", fmt.Errorf("%w: provider %q is not configured", client.ErrUnknownProvider, provider.Name())
	}
	return provider.Name(), nil
}

func (s *VideoService) enqueue(ctx context.Context, taskType string, payload []byte) error {
	task := asynq.NewTask(taskType, payload)
	_, err := s.asynqClient.EnqueueContext(ctx, task,
		asynq.Queue(QueueVideos),
		asynq.MaxRetry(0),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", taskType, err)
	}
	return nil
}

func (s *VideoService) markProcessing(ctx context.Context, job *model.VideoJob) {
	job.Status = model.JobStatusProcessing
	if err := s.jobs.Update(ctx, job); err != nil {
		s.logger.Error().Err(err).Str("jobId", job.ID).Msg("failed to mark job processing")
	}
	s.hub.BroadcastProgress(job.ID, model.JobStatusProcessing, "submitting to provider")
}

// finishJob records the terminal state and notifies job subscribers. A result
// without a local path is a failure regardless of the provider outcome.
func (s *VideoService) finishJob(ctx context.Context, job *model.VideoJob, result *model.VideoJobResult) error {
	now := time.Now()
	job.Result = result
	job.CompletedAt = &now

	if result.LocalPath != "" {
		job.Status = model.JobStatusCompleted
	} else {
		job.Status = model.JobStatusFailed
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return err
	}

	if job.Status == model.JobStatusCompleted {
		s.logger.Info().Str("jobId", job.ID).Str("file", result.FileName).Msg("video job completed")
		s.hub.BroadcastComplete(job.ID, job)
	} else {
		s.logger.Warn().Str("jobId", job.ID).Str("error", result.Error).Msg("video job failed")
		s.hub.BroadcastJobError(job.ID, response.CodeJobFailed, result.Error)
	}
	return nil
}
