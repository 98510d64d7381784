package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"weightlifting-schedule-scraper/internal/models"
)

// ArchiveClient handles S3 storage of scraped documents and run artifacts.
// Every scrape archives the source PDF it parsed, so a bad extraction can
// be replayed against the exact bytes that produced it.
type ArchiveClient struct {
	client     *s3.Client
	bucketName string
	region     string
}

// ArchiveConfig holds configuration for the archive client
type ArchiveConfig struct {
	BucketName string
	Region     string
	Profile    string // AWS profile to use
}

// S3FileInfo represents metadata about files in S3
type S3FileInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag"`
}

// S3UploadResult represents the result of an S3 upload operation
type S3UploadResult struct {
	Key         string    `json:"key"`
	ETag        string    `json:"etag"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ContentType string    `json:"content_type"`
	PublicURL   string    `json:"public_url"`
}

// NewArchiveClient creates a new archive client with AWS SDK v2
func NewArchiveClient() (*ArchiveClient, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	bucketName := os.Getenv("ARCHIVE_BUCKET")
	if bucketName == "" {
		bucketName = "weightlifting-schedule-archive-usw2"
	}

	return &ArchiveClient{
		client:     s3.NewFromConfig(cfg),
		bucketName: bucketName,
		region:     cfg.Region,
	}, nil
}

// NewArchiveClientWithConfig creates an archive client with custom configuration
func NewArchiveClientWithConfig(archiveConfig ArchiveConfig) (*ArchiveClient, error) {
	var cfg aws.Config
	var err error

	if archiveConfig.Profile != "" {
		cfg, err = config.LoadDefaultConfig(
			context.TODO(),
			config.WithSharedConfigProfile(archiveConfig.Profile),
		)
	} else {
		cfg, err = config.LoadDefaultConfig(context.TODO())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if archiveConfig.Region != "" {
		cfg.Region = archiveConfig.Region
	}

	return &ArchiveClient{
		client:     s3.NewFromConfig(cfg),
		bucketName: archiveConfig.BucketName,
		region:     cfg.Region,
	}, nil
}

// UploadDocument archives the raw PDF bytes fetched for one meet.
func (a *ArchiveClient) UploadDocument(ctx context.Context, pdf []byte, meetName, runID string) (*S3UploadResult, error) {
	key := fmt.Sprintf("documents/%s/%s/%s.pdf",
		time.Now().UTC().Format("2006-01-02"), runID, sanitizeKeyPart(meetName))

	return a.uploadObject(ctx, pdf, key, "application/pdf", map[string]string{
		"meet":   meetName,
		"run-id": runID,
	})
}

// UploadRecords archives the extracted schedule records for one meet as JSON.
func (a *ArchiveClient) UploadRecords(ctx context.Context, records []models.ScheduleRecord, meetName, runID string) (*S3UploadResult, error) {
	jsonData, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule records to JSON: %w", err)
	}

	key := fmt.Sprintf("records/%s/%s/%s.json",
		time.Now().UTC().Format("2006-01-02"), runID, sanitizeKeyPart(meetName))

	return a.uploadObject(ctx, jsonData, key, "application/json", map[string]string{
		"meet":   meetName,
		"run-id": runID,
	})
}

// UploadRunSnapshot archives the full run summary, one JSON per run.
func (a *ArchiveClient) UploadRunSnapshot(ctx context.Context, run *models.ScrapeRun) (*S3UploadResult, error) {
	jsonData, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scrape run to JSON: %w", err)
	}

	key := fmt.Sprintf("runs/%s/%s.json", run.StartedAt.UTC().Format("2006-01-02"), run.ID)
	return a.uploadObject(ctx, jsonData, key, "application/json", map[string]string{
		"run-id": run.ID,
	})
}

// DownloadRunSnapshot fetches an archived run summary by key.
func (a *ArchiveClient) DownloadRunSnapshot(ctx context.Context, key string) (*models.ScrapeRun, error) {
	data, err := a.downloadObject(ctx, key)
	if err != nil {
		return nil, err
	}

	var run models.ScrapeRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scrape run JSON: %w", err)
	}
	return &run, nil
}

// uploadObject is a helper method to upload data to S3
func (a *ArchiveClient) uploadObject(ctx context.Context, data []byte, key, contentType string, metadata map[string]string) (*S3UploadResult, error) {
	// Ensure key doesn't start with /
	key = strings.TrimPrefix(key, "/")

	if metadata == nil {
		metadata = map[string]string{}
	}
	metadata["uploaded-by"] = "weightlifting-schedule-scraper"
	metadata["upload-time"] = time.Now().UTC().Format(time.RFC3339)

	result, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &S3UploadResult{
		Key:         key,
		ETag:        strings.Trim(aws.ToString(result.ETag), `"`),
		Size:        int64(len(data)),
		UploadedAt:  time.Now(),
		ContentType: contentType,
		PublicURL:   a.GetPublicURL(key),
	}, nil
}

// downloadObject is a helper method to download data from S3
func (a *ArchiveClient) downloadObject(ctx context.Context, key string) ([]byte, error) {
	key = strings.TrimPrefix(key, "/")

	result, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	return data, nil
}

// ListFiles lists files in the archive bucket with optional prefix filter
func (a *ArchiveClient) ListFiles(ctx context.Context, prefix string) ([]S3FileInfo, error) {
	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucketName),
	}
	if prefix != "" {
		listInput.Prefix = aws.String(prefix)
	}

	result, err := a.client.ListObjectsV2(ctx, listInput)
	if err != nil {
		return nil, fmt.Errorf("failed to list S3 objects: %w", err)
	}

	files := make([]S3FileInfo, 0, len(result.Contents))
	for _, obj := range result.Contents {
		files = append(files, S3FileInfo{
			Key:          aws.ToString(obj.Key),
			Size:         obj.Size,
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         strings.Trim(aws.ToString(obj.ETag), `"`),
		})
	}

	return files, nil
}

// CheckConnectivity verifies the bucket is reachable with a minimal list.
func (a *ArchiveClient) CheckConnectivity(ctx context.Context) error {
	_, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(a.bucketName),
		MaxKeys: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to list bucket %s: %w", a.bucketName, err)
	}
	return nil
}

// GetPublicURL generates the public URL for an archived object
func (a *ArchiveClient) GetPublicURL(key string) string {
	key = strings.TrimPrefix(key, "/")
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucketName, a.region, key)
}

// BucketName returns the configured bucket name
func (a *ArchiveClient) BucketName() string {
	return a.bucketName
}

// sanitizeKeyPart makes a meet name safe for use inside an S3 key.
func sanitizeKeyPart(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.ReplaceAll(name, " ", "-")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
