package model

import "time"

// VideoSettings are the rendering knobs passed to a provider. Values outside
// a provider's supported bounds are clamped before submission.
type VideoSettings struct {
	Duration    int    `json:"duration" validate:"omitempty,min=1,max=60"`
	AspectRatio string `json:"aspectRatio" validate:"omitempty,oneof=16:9 9:16 1:1"`
	Resolution  string `json:"resolution" validate:"omitempty,oneof=480p 720p 1080p"`
	Model       string `json:"model,omitempty"`
}

// VideoJobResult holds the outcome of a finished job. LocalPath is required
// on completed jobs: a provider success without a local artifact is a failure.
type VideoJobResult struct {
	LocalPath string `json:"localPath,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	RemoteURL string `json:"remoteUrl,omitempty"`
	TaskID    string `json:"taskId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// VideoJob is one request to render a single scene into a video file via an
// external provider. CampaignID is empty for ad-hoc quick jobs; SceneNumber
// is 0 for quick/single-hook jobs.
type VideoJob struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	CampaignID  string          `json:"campaignId,omitempty"`
	SceneNumber int             `json:"sceneNumber"`
	Provider    string          `json:"provider"`
	Status      JobStatus       `json:"status"`
	Prompt      string          `json:"prompt"`
	Settings    VideoSettings   `json:"settings"`
	Result      *VideoJobResult `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// GenerateSceneRequest represents the request body for a single-scene render.
// The scene is structonly: an ad-hoc quick render carries just an
// ai_video_prompt, with no campaign, scene number, or camera directions.
type GenerateSceneRequest struct {
	CampaignID    string          `json:"campaignId" validate:"omitempty,uuid4"`
	Scene         StoryboardScene `json:"scene" validate:"structonly"`
	ProductImages []string        `json:"productImages" validate:"omitempty,dive,url"`
	Provider      string          `json:"provider" validate:"omitempty,oneof=wavespeed kling"`
	Settings      VideoSettings   `json:"settings"`
}

// BatchGenerateRequest represents the request body for a batch render
type BatchGenerateRequest struct {
	CampaignID    string            `json:"campaignId" validate:"required,uuid4"`
	Scenes        []StoryboardScene `json:"scenes" validate:"required,min=1,dive"`
	ProductImages []string          `json:"productImages" validate:"omitempty,dive,url"`
	Provider      string            `json:"provider" validate:"omitempty,oneof=wavespeed kling"`
	Settings      VideoSettings     `json:"settings"`
}

// RetryJobRequest represents the request body for retrying a failed job with
// a different provider
type RetryJobRequest struct {
	Provider string `json:"provider" validate:"required,oneof=wavespeed kling"`
}

// VideoJobStartResponse acknowledges a queued single-scene job
type VideoJobStartResponse struct {
	JobID     string    `json:"jobId"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BatchStartResponse acknowledges a queued batch
type BatchStartResponse struct {
	JobIDs    []string  `json:"jobIds"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
