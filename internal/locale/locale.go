// Package locale はhololyzer.netのロケール文字列テーブルを提供する。
// テーブルは起動時に1回取得し、以後読み取り専用として共有する。
package locale

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Strings は1ロケール分のラベル文字列テーブルを表す。
// サイドバーのdata-i18nキーからチャンネル名・カテゴリ名を引くために使う。
type Strings struct {
	Label struct {
		Name     map[string]string `json:"name"`
		Category map[string]string `json:"category"`
	} `json:"label"`
}

// Name はチャンネル名キーに対応する表示名を返す。
// キーが未登録の場合はfallbackを返す。
func (s *Strings) Name(key, fallback string) string {
	if v, ok := s.Label.Name[key]; ok {
		return v
	}
	return fallback
}

// Category はカテゴリキーに対応する表示名を返す。
// キーが未登録の場合はfallbackを返す。
func (s *Strings) Category(key, fallback string) string {
	if v, ok := s.Label.Category[key]; ok {
		return v
	}
	return fallback
}

// Fetch は指定ロケールの文字列テーブルをhololyzer.netから取得する。
// localeは"en"または"ja"を想定している。
func Fetch(ctx context.Context, client *http.Client, baseURL, locale string) (*Strings, error) {
	reqURL := fmt.Sprintf("%s/youtube/locales/string_%s.json", baseURL, locale)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ロケール文字列の取得に失敗しました (%s): %w", locale, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ロケール文字列の取得がステータス %d を返しました (%s)", resp.StatusCode, locale)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var strs Strings
	if err := json.Unmarshal(body, &strs); err != nil {
		return nil, fmt.Errorf("ロケール文字列のパースに失敗しました (%s): %w", locale, err)
	}

	return &strs, nil
}

const userAgent = "holoharvest/1.0"
