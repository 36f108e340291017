package service

import "context"

// DriveServiceInterface defines the contract for Google Drive archiving
type DriveServiceInterface interface {
	ArchiveImage(ctx context.Context, imageData []byte, filename string) (string, error)
}
