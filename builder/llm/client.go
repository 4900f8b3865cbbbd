package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// TokenizeClient posts tokenize requests to a model server.
type TokenizeClient interface {
	Tokenize(ctx context.Context, url string, data any) ([]byte, error)
}

type Client struct {
	client *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Tokenize(ctx context.Context, url string, data any) ([]byte, error) {
	slog.Debug("tokenize with llm", slog.String("url", url))
	rc, err := c.doRequest(ctx, http.MethodPost, url, data)
	if err != nil {
		return nil, fmt.Errorf("do tokenize request, error: %w", err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read tokenize response, error: %w", err)
	}
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, method, url string, data any) (io.ReadCloser, error) {
	var buf io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected http status code:%d", resp.StatusCode)
	}

	return resp.Body, nil
}
