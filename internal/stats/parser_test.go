package stats

import (
	"strings"
	"testing"
	"time"
)

// statsPageHTML は統計ページの構造を模したフィクスチャ。
// 実ページ同様、テーブル内のテキストは改行と全角スペースを含む。
var statsPageHTML = `<html>
<head><title>video stats</title></head>
<body>
<div id="header">hololyzer</div>
<table height="640"><tr><td>
動画の統計情報

公開日時：2023/04/01 18:00:00(JST)
開始日時：2023/04/01 20:00:00(JST)
終了日時：2023/04/02 01:16:02(JST)
動画時間：5:16:02
総チャット数：12,345
チャット数（日本語）：8,000
チャット数（スタンプ）：3,000
チャット数（英語）：1,345
ユニークユーザー数：2,500
ユニークメンバー数：800
総スパチャ金額：123,456円
英語コメ率　：12.5
メンバーコメ率　：40
平均毎秒コメ数：0.65
最大同接：15,000
メンシ入り：25
メンシギフト：3→10
マイルストーン：2
</td></tr></table>
</body>
</html>`

// TestParse_FullPage は全フィールドが揃ったページから17フィールドすべてが抽出されることをテストする。
func TestParse_FullPage(t *testing.T) {
	stats, err := Parse(statsPageHTML)
	if err != nil {
		t.Fatalf("解析は成功するべき: %v", err)
	}

	jst := time.FixedZone("JST", 9*60*60)

	if stats.PublicTime == nil || !stats.PublicTime.Equal(time.Date(2023, 4, 1, 18, 0, 0, 0, jst)) {
		t.Errorf("public_time: got %v", stats.PublicTime)
	}
	if stats.StartTime == nil || !stats.StartTime.Equal(time.Date(2023, 4, 1, 20, 0, 0, 0, jst)) {
		t.Errorf("start_time: got %v", stats.StartTime)
	}
	if stats.EndTime == nil || !stats.EndTime.Equal(time.Date(2023, 4, 2, 1, 16, 2, 0, jst)) {
		t.Errorf("end_time: got %v", stats.EndTime)
	}
	if stats.TotalTime == nil || *stats.TotalTime != "5:16:02" {
		t.Errorf("total_time: got %v", stats.TotalTime)
	}
	if stats.ChatNumTotal == nil || *stats.ChatNumTotal != 12345 {
		t.Errorf("chat_num_total: got %v", stats.ChatNumTotal)
	}
	if stats.ChatNumJa == nil || *stats.ChatNumJa != 8000 {
		t.Errorf("chat_num_ja: got %v", stats.ChatNumJa)
	}
	if stats.ChatNumEmoji == nil || *stats.ChatNumEmoji != 3000 {
		t.Errorf("chat_num_emoji: got %v", stats.ChatNumEmoji)
	}
	if stats.ChatNumEn == nil || *stats.ChatNumEn != 1345 {
		t.Errorf("chat_num_en: got %v", stats.ChatNumEn)
	}
	if stats.UniqUserNum == nil || *stats.UniqUserNum != 2500 {
		t.Errorf("uniq_user_num: got %v", stats.UniqUserNum)
	}
	if stats.UniqMemberNum == nil || *stats.UniqMemberNum != 800 {
		t.Errorf("uniq_member_num: got %v", stats.UniqMemberNum)
	}
	if stats.TotalSuperChatAmountYen == nil || *stats.TotalSuperChatAmountYen != 123456 {
		t.Errorf("total_super_chat_amount_yen: got %v", stats.TotalSuperChatAmountYen)
	}
	if stats.EnglishChatRatio == nil || *stats.EnglishChatRatio != 0.125 {
		t.Errorf("english_chat_ratio: got %v", stats.EnglishChatRatio)
	}
	if stats.MemberChatRatio == nil || *stats.MemberChatRatio != 0.4 {
		t.Errorf("member_chat_ratio: got %v", stats.MemberChatRatio)
	}
	if stats.ChatPerSecond == nil || *stats.ChatPerSecond != 0.65 {
		t.Errorf("chat_per_second: got %v", stats.ChatPerSecond)
	}
	if stats.MaxCCV == nil || *stats.MaxCCV != 15000 {
		t.Errorf("max_ccv: got %v", stats.MaxCCV)
	}
	if stats.MemberNum == nil || *stats.MemberNum != 25 {
		t.Errorf("member_num: got %v", stats.MemberNum)
	}
	if stats.MemberGiftNumFrom == nil || *stats.MemberGiftNumFrom != 3 {
		t.Errorf("member_gift_num_from: got %v", stats.MemberGiftNumFrom)
	}
	if stats.MemberGiftNumTo == nil || *stats.MemberGiftNumTo != 10 {
		t.Errorf("member_gift_num_to: got %v", stats.MemberGiftNumTo)
	}
	if stats.MilestoneNum == nil || *stats.MilestoneNum != 2 {
		t.Errorf("milestone_num: got %v", stats.MilestoneNum)
	}
}

// TestParse_NoTable はデータテーブルのないページがエラーになることをテストする。
// 404以外で取得できたページにテーブルが無いのはページ構造の非互換であり、
// 欠損データとしては扱わない。
func TestParse_NoTable(t *testing.T) {
	_, err := Parse(`<html><body><p>メンテナンス中です</p></body></html>`)
	if err == nil {
		t.Error("テーブルのないページはエラーになるべき")
	}
}

// TestParse_MalformedDate はテーブル内の不正な日時表記が解析全体を失敗させることをテストする。
func TestParse_MalformedDate(t *testing.T) {
	page := `<html><body><table height="640"><tr><td>
開始日時：April 1(JST)
</td></tr></table></body></html>`
	_, err := Parse(page)
	if err == nil {
		t.Error("不正な日時表記はエラーになるべき")
	}
}

// TestParseTableText_ZeroDistinctFromAbsent は値0とデータなしマーカーが区別されることをテストする。
func TestParseTableText_ZeroDistinctFromAbsent(t *testing.T) {
	zero, err := parseTableText("総チャット数：0")
	if err != nil {
		t.Fatalf("解析は成功するべき: %v", err)
	}
	if zero.ChatNumTotal == nil || *zero.ChatNumTotal != 0 {
		t.Errorf("0は値として抽出されるべき: got %v", zero.ChatNumTotal)
	}

	absent, err := parseTableText("総チャット数：-")
	if err != nil {
		t.Fatalf("解析は成功するべき: %v", err)
	}
	if absent.ChatNumTotal != nil {
		t.Errorf("データなしマーカーは値なしになるべき: got %d", *absent.ChatNumTotal)
	}
}

// TestParseTableText_GiftPairAbsent はメンシギフト行のデータなしマーカーが値なしになることをテストする。
func TestParseTableText_GiftPairAbsent(t *testing.T) {
	stats, err := parseTableText("メンシギフト：-")
	if err != nil {
		t.Fatalf("解析は成功するべき: %v", err)
	}
	if stats.MemberGiftNumFrom != nil || stats.MemberGiftNumTo != nil {
		t.Error("データなしマーカーのギフト行は値なしになるべき")
	}
}

// TestParseTableText_DuplicateLabelLastWins は同じラベルが複数行に現れた場合に
// 後の行の値で上書きされることをテストする。
func TestParseTableText_DuplicateLabelLastWins(t *testing.T) {
	stats, err := parseTableText("最大同接：100\n最大同接：200")
	if err != nil {
		t.Fatalf("解析は成功するべき: %v", err)
	}
	if stats.MaxCCV == nil || *stats.MaxCCV != 200 {
		t.Errorf("後の行の値が採用されるべき: got %v", stats.MaxCCV)
	}
}

// TestParseTableText_IgnoresLinesWithoutSeparator は区切り文字のない行が無視されることをテストする。
func TestParseTableText_IgnoresLinesWithoutSeparator(t *testing.T) {
	stats, err := parseTableText("動画の統計情報\n見出しテキスト\nメンシ入り：25")
	if err != nil {
		t.Fatalf("解析は成功するべき: %v", err)
	}
	if stats.MemberNum == nil || *stats.MemberNum != 25 {
		t.Errorf("区切り文字のある行だけが解析されるべき: got %v", stats.MemberNum)
	}
}

// TestParseTableText_FullWidthSpaceStripped はラベル前後の全角スペースが除去されることをテストする。
func TestParseTableText_FullWidthSpaceStripped(t *testing.T) {
	stats, err := parseTableText("　英語コメ率　：12.5　")
	if err != nil {
		t.Fatalf("解析は成功するべき: %v", err)
	}
	if stats.EnglishChatRatio == nil || *stats.EnglishChatRatio != 0.125 {
		t.Errorf("全角スペースを除去して解析されるべき: got %v", stats.EnglishChatRatio)
	}
}

// TestParseTableText_CRLF はCRLF改行のテーブルテキストが正しく行分割されることをテストする。
func TestParseTableText_CRLF(t *testing.T) {
	stats, err := parseTableText(strings.Join([]string{"メンシ入り：25", "マイルストーン：2"}, "\r\n"))
	if err != nil {
		t.Fatalf("解析は成功するべき: %v", err)
	}
	if stats.MemberNum == nil || *stats.MemberNum != 25 {
		t.Errorf("member_num: got %v", stats.MemberNum)
	}
	if stats.MilestoneNum == nil || *stats.MilestoneNum != 2 {
		t.Errorf("milestone_num: got %v", stats.MilestoneNum)
	}
}
