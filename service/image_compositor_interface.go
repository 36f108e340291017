package service

import "github.com/boazcstrike/silayan-laundry/models"

// ImageCompositorInterface defines the contract for tally image generation
type ImageCompositorInterface interface {
	GenerateImage(counts map[string]int, catalog *models.Catalog) ([]byte, string, error)
	ValidateConfig() []string
}
