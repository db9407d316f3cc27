package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/model"
	"github.com/adforge/api/internal/store"
)

// ErrNothingToExport is returned when an export has no content: no stage has
// run for a brief, or no completed videos exist for a video archive.
var ErrNothingToExport = errors.New("nothing to export")

// CampaignBrief is the assembled export document: the campaign's product
// profile plus the latest output of each pipeline stage that has run.
type CampaignBrief struct {
	Campaign    *model.Campaign          `json:"campaign"`
	Angles      []model.Angle            `json:"angles,omitempty"`
	Hooks       []model.Hook             `json:"hooks,omitempty"`
	Scripts     []model.Script           `json:"scripts,omitempty"`
	Storyboards []model.Storyboard       `json:"storyboards,omitempty"`
	UGCBriefs   []model.UGCBrief         `json:"ugc_briefs,omitempty"`
	Iterations  []model.IterationVariant `json:"iterations,omitempty"`
	ExportedAt  time.Time                `json:"exported_at"`
}

// ExportService assembles campaign briefs and video archives.
type ExportService struct {
	campaigns   *store.CampaignStore
	generations *store.GenerationStore
	videos      *VideoService
	logger      zerolog.Logger
}

func NewExportService(campaigns *store.CampaignStore, generations *store.GenerationStore, videos *VideoService, logger zerolog.Logger) *ExportService {
	return &ExportService{
		campaigns:   campaigns,
		generations: generations,
		videos:      videos,
		logger:      logger.With().Str("component", "export").Logger(),
	}
}

// BuildBrief assembles the latest output of every stage the campaign has
// reached. Stages that never ran are simply absent; a campaign with no runs
// at all is ErrNothingToExport.
func (s *ExportService) BuildBrief(ctx context.Context, workspaceID, campaignID string) (*CampaignBrief, error) {
	campaign, err := s.campaigns.Get(ctx, workspaceID, campaignID)
	if err != nil {
		return nil, err
	}

	brief := &CampaignBrief{Campaign: campaign, ExportedAt: time.Now()}
	stages := 0

	if ok, err := s.latestInto(ctx, campaignID, model.StageAngles, &brief.Angles); err != nil {
		return nil, err
	} else if ok {
		stages++
	}
	if ok, err := s.latestInto(ctx, campaignID, model.StageHooks, &brief.Hooks); err != nil {
		return nil, err
	} else if ok {
		stages++
	}
	if ok, err := s.latestInto(ctx, campaignID, model.StageScripts, &brief.Scripts); err != nil {
		return nil, err
	} else if ok {
		stages++
	}
	if ok, err := s.latestInto(ctx, campaignID, model.StageStoryboard, &brief.Storyboards); err != nil {
		return nil, err
	} else if ok {
		stages++
	}
	if ok, err := s.latestInto(ctx, campaignID, model.StageUGC, &brief.UGCBriefs); err != nil {
		return nil, err
	} else if ok {
		stages++
	}
	if ok, err := s.latestInto(ctx, campaignID, model.StageIteration, &brief.Iterations); err != nil {
		return nil, err
	} else if ok {
		stages++
	}

	if stages == 0 {
		return nil, ErrNothingToExport
	}
	return brief, nil
}

func (s *ExportService) latestInto(ctx context.Context, campaignID string, stage model.Stage, out interface{}) (bool, error) {
	g, err := s.generations.LatestByStage(ctx, campaignID, stage)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(g.Output, out); err != nil {
		return false, fmt.Errorf("stored %s output is unreadable: %w", stage, err)
	}
	return true, nil
}

// RenderJSON serializes the brief as indented JSON
func (s *ExportService) RenderJSON(brief *CampaignBrief) ([]byte, error) {
	return json.MarshalIndent(brief, "", "  ")
}

// RenderMarkdown renders the brief as a human-readable markdown document.
func (s *ExportService) RenderMarkdown(brief *CampaignBrief) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Campaign Brief: %s\n\n", brief.Campaign.ProductName)
	fmt.Fprintf(&b, "Exported %s\n\n", brief.ExportedAt.Format("2006-01-02 15:04"))

	p := brief.Campaign.Product
	b.WriteString("## Product\n\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", p.Name)
	fmt.Fprintf(&b, "- **Description:** %s\n", p.Description)
	if p.Price != "" {
		fmt.Fprintf(&b, "- **Price:** %s\n", p.Price)
	}
	fmt.Fprintf(&b, "- **Target audience:** %s\n", p.TargetAudience)
	for _, f := range p.Features {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	b.WriteString("\n")

	if len(brief.Angles) > 0 {
		b.WriteString("## Angles\n\n")
		for i, a := range brief.Angles {
			fmt.Fprintf(&b, "### %d. %s (%s, %s)\n\n", i+1, a.AngleName, a.Framework, a.EstimatedStrength)
			fmt.Fprintf(&b, "**Hook:** %s\n\n", a.Hook)
			fmt.Fprintf(&b, "%s\n\n", a.Concept)
			fmt.Fprintf(&b, "_Why it works:_ %s\n\n", a.WhyItWorks)
		}
	}

	if len(brief.Hooks) > 0 {
		b.WriteString("## Hooks\n\n")
		b.WriteString("| # | Hook | Type | Rating | Pairs with |\n|---|------|------|--------|------------|\n")
		for i, h := range brief.Hooks {
			fmt.Fprintf(&b, "| %d | %s | %s | %d | %s |\n", i+1, h.HookText, h.HookType, h.ScrollStopRating, h.BestPairedWithAngle)
		}
		b.WriteString("\n")
	}

	if len(brief.Scripts) > 0 {
		b.WriteString("## Scripts\n\n")
		for _, script := range brief.Scripts {
			fmt.Fprintf(&b, "### %s (%s, %s)\n\n", script.AngleName, script.TotalDuration, script.Platform)
			for _, seg := range script.Segments {
				fmt.Fprintf(&b, "**%s — %s**\n\n", seg.Timestamp, seg.Section)
				fmt.Fprintf(&b, "> %s\n\n", seg.SpokenWords)
				fmt.Fprintf(&b, "_Visual:_ %s\n\n", seg.VisualDirection)
			}
			fmt.Fprintf(&b, "**Thumbnail:** %s\n\n", script.ThumbnailConcept)
			fmt.Fprintf(&b, "**Hashtags:** %s\n\n", strings.Join(script.HashtagSuggestions, " "))
		}
	}

	if len(brief.Storyboards) > 0 {
		b.WriteString("## Storyboards\n\n")
		for i, sb := range brief.Storyboards {
			fmt.Fprintf(&b, "### Storyboard %d (%s, %s)\n\n", i+1, sb.AspectRatio, sb.OverallPacing)
			for _, scene := range sb.Scenes {
				fmt.Fprintf(&b, "**Scene %d (%s):** %s\n\n", scene.SceneNumber, scene.Timestamp, scene.VisualDescription)
				fmt.Fprintf(&b, "_Camera:_ %s, %s. _Action:_ %s\n\n", scene.CameraDirection, scene.CameraMovement, scene.SubjectAction)
				fmt.Fprintf(&b, "_Video prompt:_ %s\n\n", scene.AIVideoPrompt)
			}
		}
	}

	if len(brief.UGCBriefs) > 0 {
		b.WriteString("## UGC Briefs\n\n")
		for i, u := range brief.UGCBriefs {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, u.Format)
			fmt.Fprintf(&b, "**Creator:** %s, %s, filmed in %s\n\n", u.CreatorPersona.AgeRange, u.CreatorPersona.Vibe, u.CreatorPersona.Setting)
			fmt.Fprintf(&b, "**Opening:** %s\n\n**Middle:** %s\n\n**Close:** %s\n\n", u.ScriptOutline.Opening, u.ScriptOutline.Middle, u.ScriptOutline.Close)
			fmt.Fprintf(&b, "**Do:** %s\n\n", strings.Join(u.DoList, "; "))
			fmt.Fprintf(&b, "**Don't:** %s\n\n", strings.Join(u.DontList, "; "))
		}
	}

	if len(brief.Iterations) > 0 {
		b.WriteString("## Iterations\n\n")
		for i, v := range brief.Iterations {
			fmt.Fprintf(&b, "### Variant %d — based on %s\n\n", i+1, v.BasedOn)
			fmt.Fprintf(&b, "**Changed:** %s\n\n", v.WhatChanged)
			fmt.Fprintf(&b, "**Hypothesis:** %s\n\n", v.Hypothesis)
		}
	}

	return []byte(b.String())
}

// RenderPDF renders the brief as a printable PDF document.
func (s *ExportService) RenderPDF(brief *CampaignBrief) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	title := func(text string) {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 9, text, "", "L", false)
		pdf.Ln(2)
	}
	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, text, "", "L", false)
		pdf.Ln(1)
	}
	body := func(text string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, text, "", "L", false)
		pdf.Ln(1)
	}

	title(fmt.Sprintf("Campaign Brief: %s", brief.Campaign.ProductName))
	body(fmt.Sprintf("Exported %s", brief.ExportedAt.Format("2006-01-02 15:04")))

	p := brief.Campaign.Product
	heading("Product")
	body(p.Description)
	body(fmt.Sprintf("Target audience: %s", p.TargetAudience))
	if len(p.Features) > 0 {
		body("Features: " + strings.Join(p.Features, "; "))
	}

	if len(brief.Angles) > 0 {
		heading("Angles")
		for i, a := range brief.Angles {
			body(fmt.Sprintf("%d. %s (%s, %s)", i+1, a.AngleName, a.Framework, a.EstimatedStrength))
			body("Hook: " + a.Hook)
			body(a.Concept)
		}
	}

	if len(brief.Hooks) > 0 {
		heading("Hooks")
		for i, h := range brief.Hooks {
			body(fmt.Sprintf("%d. [%d/10, %s] %s", i+1, h.ScrollStopRating, h.HookType, h.HookText))
		}
	}

	if len(brief.Scripts) > 0 {
		heading("Scripts")
		for _, script := range brief.Scripts {
			body(fmt.Sprintf("%s (%s, %s)", script.AngleName, script.TotalDuration, script.Platform))
			for _, seg := range script.Segments {
				body(fmt.Sprintf("%s %s: %s", seg.Timestamp, seg.Section, seg.SpokenWords))
			}
		}
	}

	if len(brief.Storyboards) > 0 {
		heading("Storyboards")
		for i, sb := range brief.Storyboards {
			body(fmt.Sprintf("Storyboard %d (%s, %d scenes)", i+1, sb.AspectRatio, sb.TotalScenes))
			for _, scene := range sb.Scenes {
				body(fmt.Sprintf("Scene %d (%s): %s", scene.SceneNumber, scene.Timestamp, scene.VisualDescription))
			}
		}
	}

	if len(brief.UGCBriefs) > 0 {
		heading("UGC Briefs")
		for i, u := range brief.UGCBriefs {
			body(fmt.Sprintf("%d. %s — %s, %s", i+1, u.Format, u.CreatorPersona.AgeRange, u.CreatorPersona.Vibe))
			body(fmt.Sprintf("Opening: %s / Middle: %s / Close: %s", u.ScriptOutline.Opening, u.ScriptOutline.Middle, u.ScriptOutline.Close))
		}
	}

	if len(brief.Iterations) > 0 {
		heading("Iterations")
		for i, v := range brief.Iterations {
			body(fmt.Sprintf("Variant %d (based on %s): %s", i+1, v.BasedOn, v.WhatChanged))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ZipVideos bundles the local files of a campaign's completed video jobs
// into a zip archive. Jobs whose file has gone missing are skipped.
func (s *ExportService) ZipVideos(ctx context.Context, workspaceID, campaignID string) ([]byte, error) {
	if _, err := s.campaigns.Get(ctx, workspaceID, campaignID); err != nil {
		return nil, err
	}

	jobs, err := s.videos.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	added := 0

	for _, job := range jobs {
		if job.Status != model.JobStatusCompleted || job.Result == nil || job.Result.LocalPath == "" {
			continue
		}

		f, err := os.Open(job.Result.LocalPath)
		if err != nil {
			s.logger.Warn().Err(err).Str("jobId", job.ID).Msg("video file missing, skipping in archive")
			continue
		}

		entry, err := zw.Create(job.Result.FileName)
		if err != nil {
			f.Close()
			zw.Close()
			return nil, err
		}
		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			zw.Close()
			return nil, err
		}
		f.Close()
		added++
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	if added == 0 {
		return nil, ErrNothingToExport
	}

	s.logger.Info().Str("campaignId", campaignID).Int("videos", added).Msg("video archive built")
	return buf.Bytes(), nil
}
