package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dumptrac/internal/models"

	"github.com/google/uuid"
)

const (
	LocalBaseURL    = "http://127.0.0.1:8000/api"
	DeployedBaseURL = "https://dumptrac.vercel.app/api"
)

// BaseURLForHost picks the backend for the hostname a page was served from.
func BaseURLForHost(host string) string {
	if strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1") {
		return LocalBaseURL
	}
	return DeployedBaseURL
}

// Client talks to the bins/reports REST backend. It never retries and sets no
// timeout of its own; callers bound requests through the context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// EnsureBin creates the bin for location or returns the existing one.
func (c *Client) EnsureBin(ctx context.Context, location string, lat, lng float64) (models.Bin, error) {
	var bin models.Bin
	body := models.CreateBinRequest{Location: location, Latitude: &lat, Longitude: &lng}
	if err := c.do(ctx, http.MethodPost, "/bins", body, &bin); err != nil {
		return models.Bin{}, err
	}
	return bin, nil
}

func (c *Client) CreateReport(ctx context.Context, binID int64, status string) (models.Report, error) {
	var report models.Report
	body := models.CreateReportRequest{BinID: binID, Status: status}
	if err := c.do(ctx, http.MethodPost, "/reports", body, &report); err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (c *Client) ListReports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := c.do(ctx, http.MethodGet, "/reports", nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) ListBins(ctx context.Context) ([]models.Bin, error) {
	var bins []models.Bin
	if err := c.do(ctx, http.MethodGet, "/bins", nil, &bins); err != nil {
		return nil, err
	}
	return bins, nil
}

func (c *Client) ClearReport(ctx context.Context, id int64) (models.Report, error) {
	var report models.Report
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/reports/%d/clear", id), nil, &report); err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
