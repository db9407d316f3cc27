package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/service"
)

// VideoWorker handles queued video rendering tasks.
type VideoWorker struct {
	videos *service.VideoService
	logger zerolog.Logger
}

func NewVideoWorker(videos *service.VideoService, logger zerolog.Logger) *VideoWorker {
	return &VideoWorker{
		videos: videos,
		logger: logger.With().Str("component", "video-worker").Logger(),
	}
}

// Register attaches the worker's handlers to the asynq mux
func (w *VideoWorker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(service.TaskTypeVideoScene, w.HandleSceneTask)
	mux.HandleFunc(service.TaskTypeVideoBatch, w.HandleBatchTask)
}

// HandleSceneTask processes a single-scene render task
func (w *VideoWorker) HandleSceneTask(ctx context.Context, t *asynq.Task) error {
	var payload service.SceneTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid scene task payload: %w", err)
	}

	w.logger.Info().Str("jobId", payload.JobID).Str("provider", payload.Provider).Msg("processing scene task")
	return w.videos.ProcessScene(ctx, &payload)
}

// HandleBatchTask processes a sequential batch render task
func (w *VideoWorker) HandleBatchTask(ctx context.Context, t *asynq.Task) error {
	var payload service.BatchTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid batch task payload: %w", err)
	}

	w.logger.Info().Int("jobs", len(payload.JobIDs)).Str("provider", payload.Provider).Msg("processing batch task")
	return w.videos.ProcessBatch(ctx, &payload)
}
