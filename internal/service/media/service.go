package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"swasthya-admin/internal/config"
)

// Service stores node icons in object storage and hands back the public
// URL that goes into AlgorithmNode.Icon.
type Service interface {
	UploadIcon(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) UploadIcon(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if s.minioClient == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	objectPath := fmt.Sprintf("icons/%s/%s-%s", time.Now().Format("2006/01"), uuid.New().String(), fileName)

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectPath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload icon: %w", err)
	}

	return s.publicURL(objectPath), nil
}

func (s *service) publicURL(objectPath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectPath)
}
