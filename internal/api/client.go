package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody limits how much of an error response body is carried in errors.
const maxErrorBody = 200

// Client provides HTTP client functionality for the voice commerce backend.
// All three endpoints are consumed single-attempt: the caller decides what a
// failure means, the client never retries.
type Client struct {
	config     Config
	httpClient *http.Client
}

// Config contains backend client configuration
type Config struct {
	BaseURL string // e.g. "http://localhost:8080/api"
	Timeout time.Duration
}

// TranscriptionResponse represents the response from the transcription endpoint
type TranscriptionResponse struct {
	Text string `json:"text"`
}

// Product represents one product item from the search endpoint.
// Every field is optional in the backend response.
type Product struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
	URL   string `json:"url"`
}

// SearchResult represents the response from the product search endpoint
type SearchResult struct {
	Items   []Product `json:"items"`
	Count   int       `json:"count"`
	Keyword string    `json:"keyword,omitempty"`
}

// NewClient creates a new backend HTTP client
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// Transcribe uploads an audio container to the transcription endpoint and
// returns the recognized text. The payload is sent as a multipart file field
// named "file" with filename "audio.wav".
func (c *Client) Transcribe(ctx context.Context, wavData []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fileWriter, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := fileWriter.Write(wavData); err != nil {
		return "", fmt.Errorf("failed to write audio data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	endpoint := c.config.BaseURL + "/stt"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")

	respBody, err := c.doJSON(httpReq)
	if err != nil {
		return "", err
	}

	var transcription TranscriptionResponse
	if err := json.Unmarshal(respBody, &transcription); err != nil {
		return "", fmt.Errorf("JSON parse error @ %s: %w | %s", endpoint, err, truncate(respBody))
	}

	return transcription.Text, nil
}

// SynthesizeReply submits the transcript to the reply endpoint and returns
// the synthesized audio bytes and their content type.
func (c *Client) SynthesizeReply(ctx context.Context, text string) ([]byte, string, error) {
	form := url.Values{"text": {text}}

	endpoint := c.config.BaseURL + "/reply"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("HTTP %d @ %s | %s", resp.StatusCode, endpoint, truncate(respBody))
	}

	return respBody, resp.Header.Get("Content-Type"), nil
}

// SearchProducts queries the product search endpoint with the transcript text
// and a fixed result limit.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) (*SearchResult, error) {
	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(limit)},
	}

	endpoint := c.config.BaseURL + "/tokopedia/search?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	respBody, err := c.doJSON(httpReq)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("JSON parse error @ %s: %w | %s", endpoint, err, truncate(respBody))
	}

	return &result, nil
}

// doJSON performs the request and returns the body after enforcing a 2xx
// status and a JSON content type.
func (c *Client) doJSON(httpReq *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	endpoint := httpReq.URL.String()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d @ %s | %s", resp.StatusCode, endpoint, truncate(respBody))
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "application/json") {
		return nil, fmt.Errorf("non-JSON response @ %s | %s", endpoint, truncate(respBody))
	}

	return respBody, nil
}

// truncate returns the body as a string capped at maxErrorBody bytes.
func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
