package stats

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/hitoshi/holoharvest/internal/model"
)

// Client は動画ごとの統計ページの取得と解析を行う。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, logger *slog.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
	}
}

// FetchVideoStats は動画IDの統計ページを取得して解析する。
// ページが存在しない（404）場合は統計が未公開とみなし、
// 全フィールド値なしのVideoStatsを返す。
// それ以外のHTTPエラーは収集全体を中断すべき失敗として返す。
func (c *Client) FetchVideoStats(ctx context.Context, videoID string) (*model.VideoStats, error) {
	reqURL := fmt.Sprintf("%s/youtube/video/%s.html", c.baseURL, videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", "holoharvest/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("統計ページの取得に失敗しました (%s): %w", videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Info("統計ページが未公開です",
			slog.String("video_id", videoID),
		)
		return &model.VideoStats{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("統計ページの取得がステータス %d を返しました (%s)", resp.StatusCode, videoID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	parsed, err := Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("統計ページの解析に失敗しました (%s): %w", videoID, err)
	}

	return parsed, nil
}
