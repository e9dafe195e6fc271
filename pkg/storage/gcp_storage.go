package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCPStorage struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
}

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	CDNDomain       string
}

func NewGCPStorage(ctx context.Context, cfg *GCSConfig) (*GCPStorage, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	return &GCPStorage{
		client:    client,
		bucket:    cfg.Bucket,
		cdnDomain: cfg.CDNDomain,
	}, nil
}

func (g *GCPStorage) Name() string {
	return "gcs"
}

func (g *GCPStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	writer := g.client.Bucket(g.bucket).Object(request.Key).NewWriter(ctx)
	writer.ContentType = request.ContentType

	if len(request.Metadata) > 0 {
		writer.Metadata = request.Metadata
	}

	if request.CacheControl != "" {
		writer.CacheControl = request.CacheControl
	}

	size, err := io.Copy(writer, request.Reader)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write to GCP storage: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	attrs := writer.Attrs()
	etag := ""
	if attrs != nil {
		etag = attrs.Etag
	}

	return &UploadResponse{
		Key:      request.Key,
		URL:      g.generateURL(request.Key),
		Size:     size,
		ETag:     etag,
		Location: fmt.Sprintf("gs://%s/%s", g.bucket, request.Key),
	}, nil
}

func (g *GCPStorage) Close() error {
	return g.client.Close()
}

func (g *GCPStorage) generateURL(key string) string {
	if g.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", g.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, key)
}
