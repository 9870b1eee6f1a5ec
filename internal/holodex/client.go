// Package holodex はHolodexカタログAPIのクライアントを提供する。
// チャンネルごとの配信一覧をページ単位で取得する。
package holodex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hitoshi/holoharvest/internal/model"
)

// Client はHolodex APIのクライアント。
// 認証はX-APIKEYヘッダで行う。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, logger *slog.Logger, baseURL, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// ListVideosPage は指定チャンネルの配信一覧を1ページ分取得する。
// ページングの終端判定（limit未満のページで終了）は呼び出し元が行う。
func (c *Client) ListVideosPage(ctx context.Context, channelID string, offset, limit int) ([]model.VideoSummary, error) {
	reqURL, err := url.Parse(fmt.Sprintf("%s/channels/%s/videos", c.baseURL, channelID))
	if err != nil {
		return nil, fmt.Errorf("エンドポイントURLのパースに失敗しました: %w", err)
	}

	q := reqURL.Query()
	q.Set("type", "stream")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", "holoharvest/1.0")
	req.Header.Set("X-APIKEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Holodex APIの呼び出しに失敗しました",
			slog.String("channel_id", channelID),
			slog.Int("offset", offset),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("Holodex APIの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Holodex APIがエラーステータスを返しました",
			slog.String("channel_id", channelID),
			slog.Int("http_status", resp.StatusCode),
		)
		return nil, fmt.Errorf("Holodex APIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var videos []model.VideoSummary
	if err := json.Unmarshal(body, &videos); err != nil {
		return nil, fmt.Errorf("Holodex APIのレスポンスのパースに失敗しました: %w", err)
	}

	return videos, nil
}
