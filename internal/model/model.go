// Package model はドメインモデルを定義する。
package model

import "time"

// Channel は収集対象のチャンネルを表す。
// hololyzer.netのサイドバーから解決され、以後イミュータブルに扱う。
type Channel struct {
	ID         string
	EnName     string
	JaName     string
	EnCategory string
	JaCategory string
}

// VideoSummary はHolodexカタログAPIが返す動画の基本情報を表す。
type VideoSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	TopicID     string    `json:"topic_id"`
	PublishedAt time.Time `json:"published_at"`
	AvailableAt time.Time `json:"available_at"`
}

// VideoStats は統計ページ1枚から抽出した統計値を表す。
// 各フィールドはページ上に存在しない場合nilとなる。
// nil（値なし）とゼロ値は区別される。
type VideoStats struct {
	PublicTime *time.Time
	StartTime  *time.Time
	EndTime    *time.Time

	TotalTime *string

	ChatNumTotal *int
	ChatNumJa    *int
	ChatNumEmoji *int
	ChatNumEn    *int

	UniqUserNum   *int
	UniqMemberNum *int

	TotalSuperChatAmountYen *int

	EnglishChatRatio *float64
	MemberChatRatio  *float64

	ChatPerSecond *float64

	MaxCCV *int

	MemberNum *int

	MemberGiftNumFrom *int
	MemberGiftNumTo   *int

	MilestoneNum *int
}

// Record はカタログ情報・統計値・チャンネル情報を結合した
// データセットの1行を表す。識別子は動画IDであり、
// データセット全体で一意となる。
type Record struct {
	Video   VideoSummary
	Stats   VideoStats
	Channel Channel
}
