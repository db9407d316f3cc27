package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/client"
	"github.com/adforge/api/internal/model"
	"github.com/adforge/api/internal/store"
	"github.com/adforge/api/internal/websocket"
)

type campaignEnv struct {
	svc         *CampaignService
	generations *store.GenerationStore
	jobs        *store.VideoJobStore
	dir         string
}

func newCampaignEnv(t *testing.T) *campaignEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	campaigns := store.NewCampaignStore(rdb)
	generations := store.NewGenerationStore(rdb)
	jobs := store.NewVideoJobStore(rdb)

	registry := client.NewProviderRegistry(model.ProviderWaveSpeed)
	hub := websocket.NewHub(zerolog.Nop())
	go hub.Run()

	dir := t.TempDir()
	videos := NewVideoService(jobs, registry, nil, hub, dir, time.Millisecond, zerolog.Nop())
	svc := NewCampaignService(campaigns, generations, videos, zerolog.Nop())

	return &campaignEnv{svc: svc, generations: generations, jobs: jobs, dir: dir}
}

func TestCampaignService_CreateAndUpdate(t *testing.T) {
	env := newCampaignEnv(t)
	ctx := context.Background()

	campaign, err := env.svc.Create(ctx, "ws1", &model.CreateCampaignRequest{
		ProductName: "Glow Serum",
		Product: model.ProductProfile{
			Name:           "Glow Serum",
			Description:    "A vitamin C serum",
			TargetAudience: "skincare enthusiasts",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if campaign.ID == "" || campaign.WorkspaceID != "ws1" {
		t.Fatalf("unexpected campaign %+v", campaign)
	}

	updated, err := env.svc.Update(ctx, "ws1", campaign.ID, &model.UpdateCampaignRequest{
		Product: model.ProductProfile{
			Name:           "Glow Serum Pro",
			Description:    "The upgraded formula",
			TargetAudience: "skincare enthusiasts",
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ProductName != "Glow Serum Pro" {
		t.Errorf("product name must follow the profile, got %q", updated.ProductName)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Error("UpdatedAt not refreshed")
	}
}

func TestCampaignService_DeleteCascades(t *testing.T) {
	env := newCampaignEnv(t)
	ctx := context.Background()

	campaign, err := env.svc.Create(ctx, "ws1", &model.CreateCampaignRequest{
		ProductName: "Glow Serum",
		Product:     model.ProductProfile{Name: "Glow Serum", Description: "serum", TargetAudience: "all"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	env.generations.Insert(ctx, &model.Generation{
		ID: "g1", CampaignID: campaign.ID, Stage: model.StageAngles,
		Output: json.RawMessage(`[]`), CreatedAt: time.Now(),
	})

	path := filepath.Join(env.dir, "video.mp4")
	os.WriteFile(path, []byte("bytes"), 0o644)
	env.jobs.Create(ctx, &model.VideoJob{
		ID: "j1", WorkspaceID: "ws1", CampaignID: campaign.ID, SceneNumber: 1,
		Provider: model.ProviderWaveSpeed, Status: model.JobStatusCompleted,
		Result:    &model.VideoJobResult{LocalPath: path, FileName: "video.mp4"},
		CreatedAt: time.Now(),
	})

	if err := env.svc.Delete(ctx, "ws1", campaign.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := env.svc.Get(ctx, "ws1", campaign.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("campaign should be gone")
	}
	if gens, _ := env.generations.ListByCampaign(ctx, campaign.ID, ""); len(gens) != 0 {
		t.Errorf("generations should be gone, found %d", len(gens))
	}
	if _, err := env.jobs.Get(ctx, "j1"); !errors.Is(err, store.ErrNotFound) {
		t.Error("video job should be gone")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("video file should be gone")
	}
}

func TestCampaignService_DeleteOtherWorkspace(t *testing.T) {
	env := newCampaignEnv(t)
	ctx := context.Background()

	campaign, _ := env.svc.Create(ctx, "ws1", &model.CreateCampaignRequest{
		ProductName: "Glow Serum",
		Product:     model.ProductProfile{Name: "Glow Serum", Description: "serum", TargetAudience: "all"},
	})

	if err := env.svc.Delete(ctx, "ws2", campaign.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := env.svc.Get(ctx, "ws1", campaign.ID); err != nil {
		t.Error("campaign must survive a cross-workspace delete attempt")
	}
}
