package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	"github.com/google/uuid"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ReceiptStorage stores receipt images as files in a Google Drive folder.
// Files are made link-readable so the stored URL works without credentials.
type ReceiptStorage struct {
	service  *drive.Service
	folderID string
}

// Ensure ReceiptStorage implements the storage port
var _ portsrepo.ReceiptStorage = (*ReceiptStorage)(nil)

// NewReceiptStorage builds the Drive client from a service account
// credentials file.
func NewReceiptStorage(ctx context.Context, credentialsFile string, folderID string) (*ReceiptStorage, error) {
	service, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsFile), option.WithScopes(drive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &ReceiptStorage{service: service, folderID: folderID}, nil
}

func (s *ReceiptStorage) Store(ctx context.Context, image []byte, contentType string, ownerID string) (*domain.ReceiptRef, error) {
	name := fmt.Sprintf("receipt_%s_%d_%s", ownerID, time.Now().UTC().Unix(), uuid.NewString()[:8])
	meta := &drive.File{
		Name:    name,
		Parents: []string{s.folderID},
	}

	file, err := s.service.Files.Create(meta).
		Media(bytes.NewReader(image), googleapi.ContentType(contentType)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: drive upload failed: %s", apperrors.ErrStorageUnavailable, err.Error())
	}

	// Anyone with the link can view; the link is only ever handed to
	// authenticated users of this system.
	permission := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := s.service.Permissions.Create(file.Id, permission).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("%w: drive permission grant failed: %s", apperrors.ErrStorageUnavailable, err.Error())
	}

	return &domain.ReceiptRef{
		StorageID:   file.Id,
		URL:         file.WebViewLink,
		DisplayName: name,
	}, nil
}

// Delete removes the file. A file that is already gone counts as deleted.
func (s *ReceiptStorage) Delete(ctx context.Context, storageID string) error {
	err := s.service.Files.Delete(storageID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return nil
		}
		return fmt.Errorf("%w: drive delete failed: %s", apperrors.ErrStorageUnavailable, err.Error())
	}
	return nil
}
