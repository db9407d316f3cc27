package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/model"
	"github.com/adforge/api/internal/store"
)

// CampaignService handles campaign CRUD and ownership cascades.
type CampaignService struct {
	campaigns   *store.CampaignStore
	generations *store.GenerationStore
	videos      *VideoService
	logger      zerolog.Logger
}

func NewCampaignService(campaigns *store.CampaignStore, generations *store.GenerationStore, videos *VideoService, logger zerolog.Logger) *CampaignService {
	return &CampaignService{
		campaigns:   campaigns,
		generations: generations,
		videos:      videos,
		logger:      logger.With().Str("component", "campaigns").Logger(),
	}
}

// Create inserts a new campaign for the workspace
func (s *CampaignService) Create(ctx context.Context, workspaceID string, req *model.CreateCampaignRequest) (*model.Campaign, error) {
	now := time.Now()
	campaign := &model.Campaign{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		ProductName: req.ProductName,
		Product:     req.Product,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	s.logger.Info().Str("campaignId", campaign.ID).Str("product", campaign.ProductName).Msg("campaign created")
	return campaign, nil
}

// Get fetches a campaign scoped to the workspace
func (s *CampaignService) Get(ctx context.Context, workspaceID, id string) (*model.Campaign, error) {
	return s.campaigns.Get(ctx, workspaceID, id)
}

// List returns the workspace's campaigns, newest first
func (s *CampaignService) List(ctx context.Context, workspaceID string) ([]*model.Campaign, error) {
	return s.campaigns.List(ctx, workspaceID)
}

// Update replaces a campaign's product profile
func (s *CampaignService) Update(ctx context.Context, workspaceID, id string, req *model.UpdateCampaignRequest) (*model.Campaign, error) {
	campaign, err := s.campaigns.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	campaign.Product = req.Product
	campaign.ProductName = req.Product.Name
	campaign.UpdatedAt = time.Now()

	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Delete removes a campaign and cascades to its generations, video jobs,
// and downloaded video files.
func (s *CampaignService) Delete(ctx context.Context, workspaceID, id string) error {
	if _, err := s.campaigns.Get(ctx, workspaceID, id); err != nil {
		return err
	}

	jobs, err := s.videos.ListByCampaign(ctx, id)
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if err := s.videos.DeleteJob(ctx, workspaceID, job.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}

	if err := s.generations.DeleteByCampaign(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("campaignId", id).Int("jobs", len(jobs)).Msg("campaign deleted")
	return s.campaigns.Delete(ctx, workspaceID, id)
}
