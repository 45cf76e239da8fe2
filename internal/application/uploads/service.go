package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/shared"
	"github.com/returnhub/backend/internal/infrastructure/config"
)

// ObjectStorage stores uploaded image bytes and returns a public URL for
// the stored object.
type ObjectStorage interface {
	Store(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// UploadResponse is the result of a successful image upload
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Service validates and stores return image uploads. Validation happens
// here so that limits apply regardless of which storage backend is wired.
type Service struct {
	storage ObjectStorage
	cfg     config.UploadConfig
	logger  *zap.Logger
}

// NewService creates an upload service
func NewService(storage ObjectStorage, cfg config.UploadConfig, logger *zap.Logger) *Service {
	return &Service{storage: storage, cfg: cfg, logger: logger}
}

// Upload validates the file against the configured type allow-list and size
// cap, stores it under a generated key, and returns its public URL.
func (s *Service) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*UploadResponse, error) {
	contentType = normalizeContentType(contentType)
	if !s.typeAllowed(contentType) {
		return nil, shared.NewValidationError("file", fmt.Sprintf("unsupported file type %q", contentType))
	}
	if size > s.cfg.MaxBytes {
		return nil, shared.NewValidationError("file", fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxBytes))
	}

	// Read one byte past the declared size to catch clients that lie about
	// Content-Length.
	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxBytes {
		return nil, shared.NewValidationError("file", fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxBytes))
	}
	if len(data) == 0 {
		return nil, shared.NewValidationError("file", "file is empty")
	}

	key := s.objectKey(filename, contentType)
	url, err := s.storage.Store(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	s.logger.Info("image uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)))

	return &UploadResponse{URL: url, Filename: filename}, nil
}

func (s *Service) typeAllowed(contentType string) bool {
	for _, t := range s.cfg.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// objectKey builds a collision-free key. The original filename is not part
// of the key; it travels separately so no customer input reaches the path.
func (s *Service) objectKey(filename, contentType string) string {
	ext := extByType[contentType]
	if ext == "" {
		ext = strings.ToLower(path.Ext(filename))
	}
	now := time.Now().UTC()
	return fmt.Sprintf("returns/%04d/%02d/%s%s", now.Year(), now.Month(), uuid.New(), ext)
}

func normalizeContentType(contentType string) string {
	// Strip parameters such as "; charset=binary"
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
