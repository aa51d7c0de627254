// internal/infra/scoringapi/client.go
package scoringapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"guardian_notifier/internal/domain/scoring"
)

const (
	calculatePath = "/api/scoring/calculate"
	historyPath   = "/api/scoring/get-last-history"
	maxErrorBody  = 512
)

// Client talks to the scoring service over HTTP. It serves both as the scoring.Client
// and as a scoring.HistoryRepository.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ scoring.Client            = (*Client)(nil)
	_ scoring.HistoryRepository = (*Client)(nil)
)

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type historyRequest struct {
	StudentID string       `json:"studentId"`
	Type      scoring.Type `json:"type"`
	Lesson    string       `json:"lesson"`
}

type historyResponse struct {
	Found   bool `json:"found"`
	History *struct {
		Data map[string]interface{} `json:"data"`
	} `json:"history"`
}

// SubmitScoringRequest posts the request to the calculate endpoint.
func (c *Client) SubmitScoringRequest(ctx context.Context, req scoring.Request) error {
	if err := c.post(ctx, calculatePath, req, nil); err != nil {
		return fmt.Errorf("submitting %s scoring request: %w", req.Type, err)
	}
	return nil
}

// GetLastHistory returns scoring.ErrHistoryNotFound when the service reports found=false.
func (c *Client) GetLastHistory(ctx context.Context, studentID string, t scoring.Type, lesson string) (*scoring.HistoryEntry, error) {
	var resp historyResponse
	if err := c.post(ctx, historyPath, historyRequest{StudentID: studentID, Type: t, Lesson: lesson}, &resp); err != nil {
		return nil, fmt.Errorf("getting last %s history: %w", t, err)
	}
	if !resp.Found || resp.History == nil {
		return nil, scoring.ErrHistoryNotFound
	}
	return &scoring.HistoryEntry{
		StudentID: studentID,
		Type:      t,
		Lesson:    lesson,
		Data:      resp.History.Data,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
