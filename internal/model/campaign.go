package model

import "time"

// ProductProfile describes the product a campaign promotes. It is the main
// input to every prompt builder.
type ProductProfile struct {
	Name           string   `json:"name" validate:"required,min=1,max=200"`
	Description    string   `json:"description" validate:"required,min=1"`
	Price          string   `json:"price,omitempty"`
	TargetAudience string   `json:"target_audience,omitempty"`
	Features       []string `json:"features,omitempty"`
	ImageURLs      []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

// Campaign represents one product's ad-creative generation effort.
type Campaign struct {
	ID          string         `json:"id"`
	WorkspaceID string         `json:"workspaceId"`
	ProductName string         `json:"productName"`
	Product     ProductProfile `json:"product"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CreateCampaignRequest represents the request body for campaign creation
type CreateCampaignRequest struct {
	ProductName string         `json:"productName" validate:"required,min=1,max=200"`
	Product     ProductProfile `json:"product" validate:"required"`
}

// UpdateCampaignRequest represents the request body for campaign updates
type UpdateCampaignRequest struct {
	Product ProductProfile `json:"product" validate:"required"`
}
