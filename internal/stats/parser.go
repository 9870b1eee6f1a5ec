package stats

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hitoshi/holoharvest/internal/model"
)

// noDataMarker は「データなし」を示すマーカー文字。
// この文字を含む値は、フィールドの型にかかわらず値なしとして扱う。
const noDataMarker = "-"

// fieldSeparator はラベルと値を区切る全角コロン。
const fieldSeparator = "："

// giftRangeRe はメンシギフト行の「n→m」形式から2つの数値を取り出す。
var giftRangeRe = regexp.MustCompile(`([0-9]+)[^0-9]+([0-9]+)`)

// Parse は統計ページのHTMLを解析してVideoStatsを構築する。
// データテーブルが見つからない場合はページ構造の非互換とみなしエラーを返す。
// HTTPが成功している限りページは空ではない前提のため、欠損データ扱いにはしない。
func Parse(body string) (*model.VideoStats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("統計ページのHTML解析に失敗しました: %w", err)
	}

	table := doc.Find("table[height]").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("統計テーブルが見つかりません（ページ構造が変更された可能性があります）")
	}

	return parseTableText(table.Text())
}

// parseTableText はテーブルのテキスト表現をラベル行へ分解し、
// 認識済みラベルごとに値を抽出する。
// 行の走査は早期終了せず、同じラベルが複数行に現れた場合は
// 後に現れた行の値で上書きされる。
func parseTableText(text string) (*model.VideoStats, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Trim(text, "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, fieldSeparator) {
			continue
		}
		line = strings.TrimSpace(strings.ReplaceAll(line, "　", ""))
		lines = append(lines, line)
	}

	stats := &model.VideoStats{}

	for _, line := range lines {
		if strings.HasPrefix(line, "公開日時") {
			v, err := dateField(line)
			if err != nil {
				return nil, err
			}
			stats.PublicTime = v
		}
		if strings.HasPrefix(line, "開始日時") {
			v, err := dateField(line)
			if err != nil {
				return nil, err
			}
			stats.StartTime = v
		}
		if strings.HasPrefix(line, "終了日時") {
			v, err := dateField(line)
			if err != nil {
				return nil, err
			}
			stats.EndTime = v
		}

		if strings.HasPrefix(line, "動画時間") {
			stats.TotalTime = stringField(line)
		}

		if strings.HasPrefix(line, "総チャット数") {
			stats.ChatNumTotal = intField(line)
		}
		if strings.HasPrefix(line, "チャット数（日本語）") {
			stats.ChatNumJa = intField(line)
		}
		if strings.HasPrefix(line, "チャット数（スタンプ）") {
			stats.ChatNumEmoji = intField(line)
		}
		if strings.HasPrefix(line, "チャット数（英語）") {
			stats.ChatNumEn = intField(line)
		}

		if strings.HasPrefix(line, "ユニークユーザー数") {
			stats.UniqUserNum = intField(line)
		}
		if strings.HasPrefix(line, "ユニークメンバー数") {
			stats.UniqMemberNum = intField(line)
		}

		if strings.HasPrefix(line, "総スパチャ金額") {
			stats.TotalSuperChatAmountYen = intField(line)
		}

		if strings.HasPrefix(line, "英語コメ率") {
			stats.EnglishChatRatio = percentField(line)
		}
		if strings.HasPrefix(line, "メンバーコメ率") {
			stats.MemberChatRatio = percentField(line)
		}

		if strings.HasPrefix(line, "平均毎秒コメ数") {
			stats.ChatPerSecond = floatField(line)
		}

		if strings.HasPrefix(line, "最大同接") {
			stats.MaxCCV = intField(line)
		}

		if strings.HasPrefix(line, "メンシ入り") {
			stats.MemberNum = intField(line)
		}

		// メンシギフト行は「n→m」の2値をマーカー規則とは別のパターンで抽出する
		if strings.HasPrefix(line, "メンシギフト") && !strings.Contains(line, noDataMarker) {
			if m := giftRangeRe.FindStringSubmatch(line); m != nil {
				from, _ := strconv.Atoi(m[1])
				to, _ := strconv.Atoi(m[2])
				stats.MemberGiftNumFrom = &from
				stats.MemberGiftNumTo = &to
			}
		}

		if strings.HasPrefix(line, "マイルストーン") {
			stats.MilestoneNum = intField(line)
		}
	}

	return stats, nil
}

// fieldValue はラベル行から区切り文字以降の値部分を取り出す。
// データなしマーカーを含む行、区切り文字のない行はvalue無しを返す。
func fieldValue(line string) (string, bool) {
	_, after, ok := strings.Cut(line, fieldSeparator)
	if !ok {
		return "", false
	}
	if strings.Contains(after, noDataMarker) {
		return "", false
	}
	return after, true
}

func dateField(line string) (*time.Time, error) {
	raw, ok := fieldValue(line)
	if !ok {
		return nil, nil
	}
	return ExtractDate(raw)
}

func stringField(line string) *string {
	raw, ok := fieldValue(line)
	if !ok {
		return nil
	}
	return ExtractString(raw)
}

func intField(line string) *int {
	raw, ok := fieldValue(line)
	if !ok {
		return nil
	}
	return ExtractInt(raw)
}

func percentField(line string) *float64 {
	raw, ok := fieldValue(line)
	if !ok {
		return nil
	}
	return ExtractPercent(raw)
}

func floatField(line string) *float64 {
	raw, ok := fieldValue(line)
	if !ok {
		return nil
	}
	return ExtractFloat(raw)
}
