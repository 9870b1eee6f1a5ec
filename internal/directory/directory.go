// Package directory はhololyzer.netのサイドバーからチャンネル一覧を解決する。
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hitoshi/holoharvest/internal/locale"
	"github.com/hitoshi/holoharvest/internal/model"
)

// Directory はトップページのサイドメニューを解析してチャンネル一覧を返す。
// ロケールテーブルは起動時に構築されたものを参照として受け取り、変更しない。
type Directory struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	en         *locale.Strings
	ja         *locale.Strings
}

// New はDirectoryの新しいインスタンスを生成する。
func New(httpClient *http.Client, logger *slog.Logger, baseURL string, en, ja *locale.Strings) *Directory {
	return &Directory{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
		en:         en,
		ja:         ja,
	}
}

// ListChannels はトップページを取得し、サイドメニューのチャンネル項目を
// 英語・日本語の名前とカテゴリに解決して返す。
// ロケールテーブルに無いキーはsummary要素のテキストで代替する。
func (d *Directory) ListChannels(ctx context.Context) ([]model.Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", "holoharvest/1.0")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("トップページの取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("トップページの取得がステータス %d を返しました", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("トップページのHTML解析に失敗しました: %w", err)
	}

	var channels []model.Channel

	doc.Find(`[data-i18n="label.sidemenu.list"]`).Each(func(_ int, label *goquery.Selection) {
		href, ok := label.Parent().Attr("href")
		if !ok {
			return
		}
		id := strings.TrimSuffix(lastPathSegment(href), ".html")

		// チャンネル名は最も近いdetails祖先、カテゴリはさらに外側のdetails祖先が持つ
		channelDetails := label.ParentsFiltered("details").First()
		categoryDetails := channelDetails.ParentsFiltered("details").First()

		nameKey := i18nKey(channelDetails, "label.name.")
		nameFallback := strings.TrimSpace(channelDetails.Find("summary").First().Text())

		categoryKey := i18nKey(categoryDetails, "label.category.")
		categoryFallback := strings.TrimSpace(categoryDetails.Find("summary").First().Text())

		channels = append(channels, model.Channel{
			ID:         id,
			EnName:     d.en.Name(nameKey, nameFallback),
			JaName:     d.ja.Name(nameKey, nameFallback),
			EnCategory: d.en.Category(categoryKey, categoryFallback),
			JaCategory: d.ja.Category(categoryKey, categoryFallback),
		})
	})

	d.logger.Info("チャンネル一覧を解決しました",
		slog.Int("channel_count", len(channels)),
	)

	return channels, nil
}

// i18nKey はdetails配下のdata-i18n属性からprefix以降のキー名を取り出す。
func i18nKey(details *goquery.Selection, prefix string) string {
	attr, ok := details.Find(`[data-i18n^="` + prefix + `"]`).First().Attr("data-i18n")
	if !ok {
		return ""
	}
	if idx := strings.LastIndex(attr, "."); idx >= 0 {
		return attr[idx+1:]
	}
	return attr
}

func lastPathSegment(href string) string {
	if idx := strings.LastIndex(href, "/"); idx >= 0 {
		return href[idx+1:]
	}
	return href
}
