package service

import (
	"context"

	"github.com/boazcstrike/silayan-laundry/models"
)

// UploadClientInterface defines the contract for webhook image delivery
type UploadClientInterface interface {
	UploadImage(ctx context.Context, imageData []byte, filename, message string) *models.UploadResult
	ValidateConfig() []string
}
