// Package harvest は収集処理全体のオーケストレーションを提供する。
// チャンネルを1つずつ、チャンネル内の動画を1つずつ逐次処理する。
package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/hitoshi/holoharvest/internal/model"
	"github.com/hitoshi/holoharvest/internal/record"
)

// ChannelDirectory はチャンネル一覧の取得インターフェース。
type ChannelDirectory interface {
	ListChannels(ctx context.Context) ([]model.Channel, error)
}

// VideoCatalog はチャンネルごとの動画一覧をページ単位で取得するインターフェース。
type VideoCatalog interface {
	ListVideosPage(ctx context.Context, channelID string, offset, limit int) ([]model.VideoSummary, error)
}

// StatsSource は動画ごとの統計値を取得するインターフェース。
// 統計が未公開の動画では全フィールド値なしのVideoStatsを返す。
type StatsSource interface {
	FetchVideoStats(ctx context.Context, videoID string) (*model.VideoStats, error)
}

// DatasetWriter はデータセットへの行追記インターフェース。
type DatasetWriter interface {
	Write(row []string) error
}

// Summary は1回の収集実行の集計結果を表す。
type Summary struct {
	Channels int
	Videos   int
	Skipped  int
	Written  int
}

// Harvester は全チャンネル・全動画の収集を逐次実行する。
//
// 既存IDのスナップショットは実行開始前に1回だけ取得されたものを保持し、
// 実行中に再計算しない。同一実行内で書き込んだIDは別の集合で追跡するため、
// 書いたばかりの動画を再取得することもない。
type Harvester struct {
	directory ChannelDirectory
	catalog   VideoCatalog
	stats     StatsSource
	writer    DatasetWriter
	existing  map[string]struct{}
	limiter   *rate.Limiter
	pageSize  int
	logger    *slog.Logger
	runID     string
}

// New はHarvesterの新しいインスタンスを生成する。
// existingには実行開始前に取得した記録済みID集合を渡す。
// pageSizeが0以下の場合はデフォルト値50を使用する。
// limiterがnilの場合はレート制限なしで実行する。
func New(
	directory ChannelDirectory,
	catalog VideoCatalog,
	stats StatsSource,
	writer DatasetWriter,
	existing map[string]struct{},
	pageSize int,
	limiter *rate.Limiter,
	logger *slog.Logger,
) *Harvester {
	if pageSize <= 0 {
		pageSize = 50
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	if existing == nil {
		existing = make(map[string]struct{})
	}
	return &Harvester{
		directory: directory,
		catalog:   catalog,
		stats:     stats,
		writer:    writer,
		existing:  existing,
		limiter:   limiter,
		pageSize:  pageSize,
		logger:    logger,
		runID:     uuid.NewString(),
	}
}

// Run は全チャンネルの収集を1回実行する。
// 記録済みIDに含まれる動画はスキップし、新規動画のみ統計ページを取得して
// データセットへ追記する。統計ページの404以外の失敗は実行全体を中断する。
func (h *Harvester) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	channels, err := h.directory.ListChannels(ctx)
	if err != nil {
		return nil, fmt.Errorf("チャンネル一覧の取得に失敗しました: %w", err)
	}

	sum := &Summary{}
	written := make(map[string]struct{})

	for _, channel := range channels {
		videos, err := h.listAllVideos(ctx, channel.ID)
		if err != nil {
			return nil, fmt.Errorf("チャンネル %s の動画一覧の取得に失敗しました: %w", channel.ID, err)
		}

		for i, video := range videos {
			sum.Videos++

			if _, ok := h.existing[video.ID]; ok {
				sum.Skipped++
				h.logProgress(channel, video.ID, i, len(videos), "skipped")
				continue
			}
			if _, ok := written[video.ID]; ok {
				sum.Skipped++
				h.logProgress(channel, video.ID, i, len(videos), "skipped")
				continue
			}

			if err := h.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("レート制限の待機が中断されました: %w", err)
			}

			stats, err := h.stats.FetchVideoStats(ctx, video.ID)
			if err != nil {
				return nil, fmt.Errorf("動画 %s の統計取得に失敗しました: %w", video.ID, err)
			}

			rec := record.Assemble(video, stats, channel)
			if err := h.writer.Write(record.Row(rec)); err != nil {
				return nil, fmt.Errorf("動画 %s の書き込みに失敗しました: %w", video.ID, err)
			}

			written[video.ID] = struct{}{}
			sum.Written++
			h.logProgress(channel, video.ID, i, len(videos), "written")
		}

		sum.Channels++
	}

	h.logger.Info("収集が完了しました",
		slog.String("run_id", h.runID),
		slog.Int("channels", sum.Channels),
		slog.Int("videos", sum.Videos),
		slog.Int("skipped", sum.Skipped),
		slog.Int("written", sum.Written),
		slog.Duration("elapsed", time.Since(start)),
	)

	return sum, nil
}

// listAllVideos はカタログをページングして全動画を集める。
// limit未満の件数が返ったページが最終ページとなる。
// 空ページや総件数では終端を判定しない。
func (h *Harvester) listAllVideos(ctx context.Context, channelID string) ([]model.VideoSummary, error) {
	var all []model.VideoSummary
	for {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("レート制限の待機が中断されました: %w", err)
		}

		page, err := h.catalog.ListVideosPage(ctx, channelID, len(all), h.pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		if len(page) < h.pageSize {
			break
		}
	}
	return all, nil
}

func (h *Harvester) logProgress(channel model.Channel, videoID string, index, total int, decision string) {
	h.logger.Info("動画を処理しました",
		slog.String("run_id", h.runID),
		slog.String("channel_id", channel.ID),
		slog.String("channel_name", channel.EnName),
		slog.String("video_id", videoID),
		slog.Int("index", index+1),
		slog.Int("total", total),
		slog.String("decision", decision),
	)
}
