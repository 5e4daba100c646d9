// Package interactions fetches interaction records from the configured
// data source.
package interactions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/j-veylop/interaction-sector-viewer/internal/config"
	"github.com/j-veylop/interaction-sector-viewer/internal/logger"
	"github.com/j-veylop/interaction-sector-viewer/internal/models"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 32 << 20

// Source produces the raw record list.
type Source interface {
	Fetch(ctx context.Context) ([]models.InteractionRecord, error)
	String() string
}

// NewSource picks an HTTP or file source for the configured location.
func NewSource(location string, timeout time.Duration) Source {
	if config.IsRemoteSource(location) {
		return NewHTTPSource(location, timeout)
	}
	return NewFileSource(config.SourcePath(location))
}

// HTTPSource reads records with a single GET request.
type HTTPSource struct {
	httpClient *http.Client
	url        string
	maxBody    int64
}

// NewHTTPSource creates an HTTP source with the given request timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    maxBodySize,
	}
}

func (s *HTTPSource) String() string {
	return s.url
}

// Fetch performs the GET and decodes the body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]models.InteractionRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, networkError(s.url, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, networkError(s.url, fmt.Errorf("request failed: %w", err))
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := readLimited(resp.Body, s.maxBody)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, networkError(s.url, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200)))
	}
	if err != nil {
		return nil, networkError(s.url, fmt.Errorf("failed to read response: %w", err))
	}

	return decodeRecords(s.url, body)
}

// FileSource reads records from a local JSON file.
type FileSource struct {
	path    string
	maxBody int64
}

// NewFileSource creates a file source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, maxBody: maxBodySize}
}

func (s *FileSource) String() string {
	return s.path
}

// Path returns the file being read.
func (s *FileSource) Path() string {
	return s.path
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]models.InteractionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, networkError(s.path, err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, networkError(s.path, fmt.Errorf("failed to read file: %w", err))
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("failed to close source file", "error", err)
		}
	}()

	body, err := readLimited(f, s.maxBody)
	if err != nil {
		return nil, networkError(s.path, fmt.Errorf("failed to read file: %w", err))
	}
	return decodeRecords(s.path, body)
}

// readLimited reads all of r unless it holds more than limit bytes, in which
// case it returns the first limit bytes and an ErrTooLarge error.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return body, err
	}
	if int64(len(body)) > limit {
		return body[:limit], fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, limit)
	}
	return body, nil
}

// decodeRecords parses a JSON array of records. A JSON null or an empty
// array is reported as ErrEmptyData.
func decodeRecords(source string, body []byte) ([]models.InteractionRecord, error) {
	var records []models.InteractionRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, networkError(source, fmt.Errorf("failed to parse response: %w", err))
	}
	if len(records) == 0 {
		return nil, emptyDataError(source)
	}
	return records, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
