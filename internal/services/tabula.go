package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"weightlifting-schedule-scraper/internal/models"
)

// TableSource produces page grids from raw PDF bytes. The pipeline only
// sees this interface; production uses the tabula sidecar and replay runs
// feed archived grids from disk.
type TableSource interface {
	ExtractTables(ctx context.Context, pdf []byte) ([]models.Page, error)
}

// TabulaClient calls the tabula extraction sidecar over HTTP.
type TabulaClient struct {
	httpClient *http.Client
	serviceURL string
}

// gridEnvelope is the wire format shared by the sidecar response and
// archived grid files.
type gridEnvelope struct {
	Pages []models.Page `json:"pages"`
}

// NewTabulaClient creates a new tabula client
func NewTabulaClient(serviceURL string) *TabulaClient {
	return &TabulaClient{
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // multi-page lattice scans are slow
		},
		serviceURL: serviceURL,
	}
}

// ExtractTables posts the PDF to the sidecar and decodes the page grids.
// Cells the extractor reports as null come back as empty strings.
func (t *TabulaClient) ExtractTables(ctx context.Context, pdf []byte) ([]models.Page, error) {
	if t.serviceURL == "" {
		return nil, fmt.Errorf("tabula service URL not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.serviceURL, bytes.NewReader(pdf))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tabula request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tabula returned status %d: %s", resp.StatusCode, string(body))
	}

	var envelope gridEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode tabula response: %w", err)
	}

	return envelope.Pages, nil
}

// GridFileSource reads page grids from an archived JSON file instead of
// calling the sidecar. Used for replays and offline runs.
type GridFileSource struct {
	Path string
}

// ExtractTables ignores the PDF bytes and loads the configured grid file.
func (g GridFileSource) ExtractTables(ctx context.Context, pdf []byte) ([]models.Page, error) {
	return LoadGridFile(g.Path)
}

// LoadGridFile reads a grid envelope JSON from disk.
func LoadGridFile(path string) ([]models.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid file %s: %w", path, err)
	}

	var envelope gridEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse grid file %s: %w", path, err)
	}

	return envelope.Pages, nil
}
