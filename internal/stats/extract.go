// Package stats はhololyzer.netの統計ページを取得し、型付きの統計値へ解析する。
// ページは機械可読なデータではなく緩く構造化された描画結果であるため、
// 各フィールドは厳密な列解析ではなくパターン探索で防御的に抽出する。
package stats

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// jst は統計ページの日時表記が使うタイムゾーン。
var jst = time.FixedZone("JST", 9*60*60)

// timeLayout は統計ページの日時表記形式。これ以外の形式は受け付けない。
const timeLayout = "2006/01/02 15:04:05"

var (
	digitsRe  = regexp.MustCompile(`[0-9]+`)
	decimalRe = regexp.MustCompile(`[0-9.]+`)
)

// ExtractDate は日時テキストを解析する。"(JST)"注記を除去し、残りが空なら
// 値なしとしてnilを返す。空でないのに形式が合わない場合は上流のフォーマット
// 変更を疑うべき状況であり、黙って値なしに落とさずエラーを返す。
func ExtractDate(raw string) (*time.Time, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "(JST)", ""))
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(timeLayout, s, jst)
	if err != nil {
		return nil, fmt.Errorf("日時テキストの解析に失敗しました %q: %w", raw, err)
	}
	return &t, nil
}

// ExtractString はテキストをそのまま返す。空文字列は値なしとして扱う。
func ExtractString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// ExtractInt はカンマ区切りを除去した後、最初に現れる数字の並びを整数として返す。
// 数字が見つからない場合は値なし。
func ExtractInt(raw string) *int {
	m := digitsRe.FindString(strings.ReplaceAll(raw, ",", ""))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// ExtractPercent は最初に現れる数字・小数点の並びを100で割った比率として返す。
// ページ上の表記がパーセント値のため、0〜1の小数に変換する。
func ExtractPercent(raw string) *float64 {
	f := extractDecimal(raw)
	if f == nil {
		return nil
	}
	v := *f / 100
	return &v
}

// ExtractFloat は最初に現れる数字・小数点の並びをそのまま実数として返す。
func ExtractFloat(raw string) *float64 {
	return extractDecimal(raw)
}

func extractDecimal(raw string) *float64 {
	m := decimalRe.FindString(strings.ReplaceAll(raw, ",", ""))
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &f
}
