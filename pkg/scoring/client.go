// Package scoring is the HTTP client for the external lead-scoring API. All
// computation (scoring, ranking, report and message generation) happens
// there; this client only shuttles JSON and normalizes failures into
// apierror.UpstreamError for the classifier.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"propscore-webapp-be/internal/dto"
	"propscore-webapp-be/internal/pkg/logger"
	"propscore-webapp-be/pkg/apierror"
	"propscore-webapp-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const suggestionCacheTTL = 10 * time.Minute

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     logger.ILogger
	debug      bool
}

func NewClient(baseURL string, debug bool, log logger.ILogger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:  cache.New(suggestionCacheTTL, 30*time.Minute),
		logger: log,
		debug:  debug,
	}
}

// SearchAddress returns autocomplete suggestions for a free-text address.
// Results are cached briefly; typing the same prefix twice is common.
func (c *Client) SearchAddress(ctx context.Context, token, query string) ([]store.Suggestion, error) {
	cacheKey := "suggest:" + query
	if x, found := c.cache.Get(cacheKey); found {
		return x.([]store.Suggestion), nil
	}

	params := url.Values{}
	params.Add("q", query)

	body, err := c.get(ctx, token, "/v1/address/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var result struct {
		Suggestions []store.Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}

	c.cache.Set(cacheKey, result.Suggestions, cache.DefaultExpiration)
	return result.Suggestions, nil
}

func (c *Client) PropertyDetail(ctx context.Context, token, propertyID string) (map[string]interface{}, error) {
	body, err := c.get(ctx, token, "/v1/properties/"+url.PathEscape(propertyID))
	if err != nil {
		return nil, err
	}

	var result struct {
		Property map[string]interface{} `json:"property"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode property: %w", err)
	}
	return result.Property, nil
}

func (c *Client) PredictScore(ctx context.Context, token, propertyID string) (map[string]interface{}, error) {
	body, err := c.postJSON(ctx, token, "/v1/score", map[string]string{"property_id": propertyID})
	if err != nil {
		return nil, err
	}

	var result struct {
		Score map[string]interface{} `json:"score"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode score: %w", err)
	}
	return result.Score, nil
}

func (c *Client) GenerateReport(ctx context.Context, token string, req dto.ReportRequest) (string, error) {
	body, err := c.postJSON(ctx, token, "/v1/reports", req)
	if err != nil {
		return "", err
	}

	var result struct {
		ReportURL string `json:"report_url"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode report: %w", err)
	}
	return result.ReportURL, nil
}

func (c *Client) GenerateMessages(ctx context.Context, token string, req dto.OutreachRequest) ([]string, error) {
	body, err := c.postJSON(ctx, token, "/v1/outreach", req)
	if err != nil {
		return nil, err
	}

	var result struct {
		Messages []string `json:"messages"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return result.Messages, nil
}

// UploadLeads streams a lead list as multipart form data and returns the
// ranked result. The caller owns the context; uploads get a long deadline
// because ranking a large list takes minutes.
func (c *Client) UploadLeads(ctx context.Context, token, filename string, file io.Reader) (*dto.LeadsUploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart form: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/leads/upload", token, &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var result dto.LeadsUploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, token, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, token, nil, "")
}

func (c *Client) postJSON(ctx context.Context, token, path string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, token, bytes.NewReader(raw), "application/json")
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.debug {
		c.logger.Debug("ScoringClient", "Request", map[string]interface{}{
			"method": method,
			"path":   path,
		})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.debug {
			c.logger.Debug("ScoringClient", "Transport error", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if c.debug {
		c.logger.Debug("ScoringClient", "Response", map[string]interface{}{
			"path":   path,
			"status": resp.StatusCode,
			"bytes":  len(raw),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apierror.UpstreamError{StatusCode: resp.StatusCode, Body: raw}
	}

	// Success payloads may still carry an error field; check it before use.
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return nil, fmt.Errorf("scoring api error: %s", envelope.Error)
	}

	return raw, nil
}
