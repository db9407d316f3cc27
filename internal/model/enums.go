package model

// Pipeline stages
type Stage string

const (
	StageAngles     Stage = "angles"
	StageScripts    Stage = "scripts"
	StageHooks      Stage = "hooks"
	StageStoryboard Stage = "storyboard"
	StageUGC        Stage = "ugc"
	StageIteration  Stage = "iteration"
)

var ValidStages = []Stage{
	StageAngles, StageScripts, StageHooks,
	StageStoryboard, StageUGC, StageIteration,
}

// Valid reports whether s is one of the closed stage enumeration.
func (s Stage) Valid() bool {
	for _, v := range ValidStages {
		if s == v {
			return true
		}
	}
	return false
}

// Video job status
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Video providers
const (
	ProviderWaveSpeed = "wavespeed"
	ProviderKling     = "kling"
)

// Target platforms
type Platform string

const (
	PlatformTikTok  Platform = "tiktok"
	PlatformReels   Platform = "reels"
	PlatformShorts  Platform = "shorts"
	PlatformYouTube Platform = "youtube"
)

// Scene generation methods
const (
	GenerationMethodTextToVideo  = "text-to-video"
	GenerationMethodImageToVideo = "image-to-video"
)

// Aspect ratios supported by the video providers
var ValidAspectRatios = []string{"16:9", "9:16", "1:1"}

// Export formats
type ExportFormat string

const (
	ExportFormatJSON     ExportFormat = "json"
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatPDF      ExportFormat = "pdf"
)

// Valid reports whether f is a supported export format.
func (f ExportFormat) Valid() bool {
	return f == ExportFormatJSON || f == ExportFormatMarkdown || f == ExportFormatPDF
}
