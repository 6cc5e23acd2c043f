package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/luckfunc/goldbot/internal/config"
)

// GoldClient fetches the gold-price feed. One request per call, no retries,
// no state carried between invocations.
type GoldClient struct {
	URL    string
	Client *http.Client
}

func NewGoldClient(cfg *config.Config) *GoldClient {
	return &GoldClient{
		URL: cfg.APIURL,
		// Timeout covers connect and read combined.
		Client: &http.Client{Timeout: cfg.FetchTimeout},
	}
}

// Fetch performs the single GET and returns the raw JSON body. The body is
// read and logged before any decoding, so a broken payload can still be
// diagnosed from the log. Cancelling ctx abandons the in-flight request.
func (c *GoldClient) Fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, &FeedError{Kind: KindUnknown, Detail: "构造请求失败", Err: err}
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		slog.Error("gold feed request failed", "url", c.URL, "err", err)
		return nil, &FeedError{Kind: KindNetwork, Detail: "请求黄金数据源失败", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("gold feed body read failed", "err", err)
		return nil, &FeedError{Kind: KindNetwork, Detail: "读取响应失败", Err: err}
	}
	slog.Debug("gold feed raw response", "body", truncate(string(body), 200))

	if resp.StatusCode != http.StatusOK {
		slog.Error("gold feed returned non-200", "status", resp.StatusCode)
		return nil, &FeedError{Kind: KindHTTPStatus, Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	if !json.Valid(body) {
		slog.Error("gold feed body is not valid JSON", "body", truncate(string(body), 200))
		return nil, &FeedError{Kind: KindDecode, Detail: "响应不是合法 JSON"}
	}
	return json.RawMessage(body), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
