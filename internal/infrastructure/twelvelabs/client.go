package twelvelabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/vidshop/backend/internal/domain"
)

// Client handles communication with the video-understanding API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new video API client. The HTTP client carries no
// transport timeout of its own; callers bound each operation with a context
// deadline, since analysis can legitimately take tens of seconds while
// metadata reads should not.
func NewClient(apiKey, baseURL string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 5)

	return &Client{
		httpClient:  &http.Client{},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables request/response logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// generateResponse is the upstream reply to an analysis request.
type generateResponse struct {
	ID   string `json:"id,omitempty"`
	Data string `json:"data"`
}

// Analyze runs the product-detection prompt against a video and returns the
// raw response text. No retries: a failed analysis surfaces immediately and
// the caller decides how to degrade.
func (c *Client) Analyze(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", domain.ErrInvalidRequest
	}

	body, err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/generate", map[string]interface{}{
		"prompt":   analysisPrompt,
		"video_id": videoID,
		"stream":   false,
	})
	if err != nil {
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode analysis response: %w", err)
	}
	if resp.Data == "" {
		return "", fmt.Errorf("%w: empty data field in analysis response", domain.ErrUpstreamFailure)
	}

	if c.debug {
		log.Printf("[TWELVELABS] Analyze %s returned %d bytes", videoID, len(resp.Data))
	}
	return resp.Data, nil
}

// Search runs a text query against an index.
func (c *Client) Search(ctx context.Context, indexID, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	if indexID == "" {
		return nil, domain.ErrMissingIndexID
	}
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	payload := map[string]interface{}{
		"query_text": query,
		"index_id":   indexID,
	}
	if len(opts.SearchOptions) > 0 {
		payload["search_options"] = opts.SearchOptions
	}
	if opts.GroupBy != "" {
		payload["group_by"] = opts.GroupBy
	}
	if opts.PageLimit > 0 {
		payload["page_limit"] = opts.PageLimit
	}
	if opts.Threshold != "" {
		payload["threshold"] = opts.Threshold
	}
	if opts.VideoID != "" {
		payload["video_id"] = opts.VideoID
	}
	if len(opts.TimeRange) == 2 {
		payload["time_range"] = opts.TimeRange
	}

	body, err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/search", payload)
	if err != nil {
		return nil, err
	}

	var resp domain.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &resp, nil
}

// ListVideos returns up to limit videos from an index, newest first.
func (c *Client) ListVideos(ctx context.Context, indexID string, limit int) (*domain.VideoList, error) {
	if indexID == "" {
		return nil, domain.ErrMissingIndexID
	}
	if limit <= 0 {
		limit = 50
	}

	params := url.Values{}
	params.Add("page_limit", strconv.Itoa(limit))
	reqURL := fmt.Sprintf("%s/indexes/%s/videos?%s", c.baseURL, indexID, params.Encode())

	body, err := c.doJSON(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var list domain.VideoList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode video list: %w", err)
	}

	if c.debug {
		log.Printf("[TWELVELABS] ListVideos returned %d videos for index %s", len(list.Data), indexID)
	}
	return &list, nil
}

// GetVideo returns the full record for a single video, including any user
// metadata previously saved against it.
func (c *Client) GetVideo(ctx context.Context, indexID, videoID string) (*domain.VideoDetail, error) {
	if indexID == "" {
		return nil, domain.ErrMissingIndexID
	}
	if videoID == "" {
		return nil, domain.ErrInvalidRequest
	}

	reqURL := fmt.Sprintf("%s/indexes/%s/videos/%s", c.baseURL, indexID, videoID)
	body, err := c.doJSON(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var detail domain.VideoDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode video detail: %w", err)
	}
	return &detail, nil
}

// UpdateMetadata persists analysis results against a video record. Products
// are stored as a JSON string under user_metadata, the way the upstream API
// expects flat key-value fields.
func (c *Client) UpdateMetadata(ctx context.Context, indexID, videoID string, md domain.AnalysisMetadata) error {
	if indexID == "" {
		return domain.ErrMissingIndexID
	}
	if videoID == "" {
		return domain.ErrInvalidRequest
	}

	products, err := json.Marshal(md.Products)
	if err != nil {
		return fmt.Errorf("failed to serialize products: %w", err)
	}

	userMetadata := map[string]interface{}{
		"products": string(products),
	}
	if md.AnalyzedAt != "" {
		userMetadata["analyzed_at"] = md.AnalyzedAt
	}
	if md.Reanalyzed {
		userMetadata["reanalyzed"] = true
	}

	reqURL := fmt.Sprintf("%s/indexes/%s/videos/%s", c.baseURL, indexID, videoID)
	_, err = c.doJSON(ctx, http.MethodPut, reqURL, map[string]interface{}{
		"user_metadata": userMetadata,
	})
	return err
}

// doJSON executes one API request and returns the response body. Non-2xx
// statuses are surfaced with the upstream status and body; 404 maps to
// ErrVideoNotFound.
func (c *Client) doJSON(ctx context.Context, method, reqURL string, payload interface{}) ([]byte, error) {
	if c.apiKey == "" || c.baseURL == "" {
		return nil, domain.ErrMissingCredentials
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	if c.debug {
		log.Printf("[TWELVELABS] %s %s", method, reqURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrVideoNotFound
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body))
	}

	return body, nil
}
