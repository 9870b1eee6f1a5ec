// Package record はデータセット1行への組み立てとスキーマ定義を提供する。
//
// スキーマは列名と値の取り出し方を対で持つ単一の順序付きリストであり、
// ヘッダー行の生成と行のレンダリングの両方がこの定義だけを参照する。
// 列順をここ以外で管理しないことで、ヘッダーと行の不整合を防ぐ。
package record

import (
	"strconv"
	"time"

	"github.com/hitoshi/holoharvest/internal/model"
)

// Column はデータセットの1列を表す。
type Column struct {
	Name  string
	Value func(r *model.Record) string
}

// Columns はデータセットのスキーマ。この順でヘッダーと各行を書き出す。
var Columns = []Column{
	{"video_id", func(r *model.Record) string { return r.Video.ID }},
	{"video_title", func(r *model.Record) string { return r.Video.Title }},
	{"holodex_type", func(r *model.Record) string { return r.Video.Type }},
	{"holodex_topic_id", func(r *model.Record) string { return r.Video.TopicID }},
	{"holodex_published_at", func(r *model.Record) string { return catalogTime(r.Video.PublishedAt) }},
	{"holodex_available_at", func(r *model.Record) string { return catalogTime(r.Video.AvailableAt) }},

	{"public_time", func(r *model.Record) string { return timeVal(r.Stats.PublicTime) }},
	{"start_time", func(r *model.Record) string { return timeVal(r.Stats.StartTime) }},
	{"end_time", func(r *model.Record) string { return timeVal(r.Stats.EndTime) }},
	{"total_time", func(r *model.Record) string { return strVal(r.Stats.TotalTime) }},
	{"chat_num_total", func(r *model.Record) string { return intVal(r.Stats.ChatNumTotal) }},
	{"chat_num_ja", func(r *model.Record) string { return intVal(r.Stats.ChatNumJa) }},
	{"chat_num_emoji", func(r *model.Record) string { return intVal(r.Stats.ChatNumEmoji) }},
	{"chat_num_en", func(r *model.Record) string { return intVal(r.Stats.ChatNumEn) }},
	{"uniq_user_num", func(r *model.Record) string { return intVal(r.Stats.UniqUserNum) }},
	{"uniq_member_num", func(r *model.Record) string { return intVal(r.Stats.UniqMemberNum) }},
	{"total_super_chat_amount_yen", func(r *model.Record) string { return intVal(r.Stats.TotalSuperChatAmountYen) }},
	{"english_chat_ratio", func(r *model.Record) string { return floatVal(r.Stats.EnglishChatRatio) }},
	{"member_chat_ratio", func(r *model.Record) string { return floatVal(r.Stats.MemberChatRatio) }},
	{"chat_per_second", func(r *model.Record) string { return floatVal(r.Stats.ChatPerSecond) }},
	{"max_ccv", func(r *model.Record) string { return intVal(r.Stats.MaxCCV) }},
	{"member_num", func(r *model.Record) string { return intVal(r.Stats.MemberNum) }},
	{"member_gift_num_from", func(r *model.Record) string { return intVal(r.Stats.MemberGiftNumFrom) }},
	{"member_gift_num_to", func(r *model.Record) string { return intVal(r.Stats.MemberGiftNumTo) }},
	{"milestone_num", func(r *model.Record) string { return intVal(r.Stats.MilestoneNum) }},

	{"channel_id", func(r *model.Record) string { return r.Channel.ID }},
	{"channel_en_name", func(r *model.Record) string { return r.Channel.EnName }},
	{"channel_ja_name", func(r *model.Record) string { return r.Channel.JaName }},
	{"channel_en_category", func(r *model.Record) string { return r.Channel.EnCategory }},
	{"channel_ja_category", func(r *model.Record) string { return r.Channel.JaCategory }},
}

// Header はスキーマ列順のヘッダー行を返す。
func Header() []string {
	header := make([]string, len(Columns))
	for i, col := range Columns {
		header[i] = col.Name
	}
	return header
}

// Assemble はカタログ情報・統計値・チャンネル情報を1レコードに結合する。
// 3つの入力の名前空間はスキーマ設計上重複しないため、単純な結合で足りる。
func Assemble(video model.VideoSummary, stats *model.VideoStats, channel model.Channel) *model.Record {
	rec := &model.Record{
		Video:   video,
		Channel: channel,
	}
	if stats != nil {
		rec.Stats = *stats
	}
	return rec
}

// Row はレコードをスキーマ列順の文字列スライスへ変換する。
// 値なしは空文字列、日時はオフセット付きのソート可能なISO-8601表記となる。
func Row(r *model.Record) []string {
	row := make([]string, len(Columns))
	for i, col := range Columns {
		row[i] = col.Value(r)
	}
	return row
}

func timeVal(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// catalogTime はカタログ由来の日時を整形する。未設定（ゼロ値）は空欄とする。
func catalogTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intVal(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatVal(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
