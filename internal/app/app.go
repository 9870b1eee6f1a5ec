// Package app はアプリケーションの初期化と実行モード分岐を提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/hitoshi/holoharvest/internal/config"
	"github.com/hitoshi/holoharvest/internal/dataset"
	"github.com/hitoshi/holoharvest/internal/directory"
	"github.com/hitoshi/holoharvest/internal/harvest"
	"github.com/hitoshi/holoharvest/internal/holodex"
	"github.com/hitoshi/holoharvest/internal/locale"
	"github.com/hitoshi/holoharvest/internal/logger"
	"github.com/hitoshi/holoharvest/internal/record"
	"github.com/hitoshi/holoharvest/internal/stats"
)

// Init はアプリケーションの初期化を行う。
// ログをセットアップした後、環境変数からConfigを読み込む。
// 必須環境変数の不足はネットワークアクセスより前のこの段階で検出される。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで実行する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("dataset_path", cfg.DatasetPath),
	)

	// SIGINT/SIGTERMで進行中のフェッチを中断する。
	// 書き込みは行単位でフラッシュ済みのため、中断しても既存行は失われない。
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case CommandChannels:
		return runChannels(ctx, cfg)
	case CommandHarvest:
		return runHarvest(ctx, cfg)
	default:
		return runHarvest(ctx, cfg)
	}
}

// buildDirectory はロケールテーブルを取得し、チャンネルディレクトリを構築する。
// ロケールテーブルは起動時に1回だけ取得し、以後読み取り専用で共有する。
func buildDirectory(ctx context.Context, cfg *config.Config, httpClient *http.Client) (*directory.Directory, error) {
	en, err := locale.Fetch(ctx, httpClient, cfg.HololyzerBaseURL, "en")
	if err != nil {
		return nil, fmt.Errorf("英語ロケールの取得に失敗しました: %w", err)
	}
	ja, err := locale.Fetch(ctx, httpClient, cfg.HololyzerBaseURL, "ja")
	if err != nil {
		return nil, fmt.Errorf("日本語ロケールの取得に失敗しました: %w", err)
	}

	return directory.New(httpClient, slog.Default(), cfg.HololyzerBaseURL, en, ja), nil
}

// runHarvest は収集モードで実行する。
// 依存関係をワイヤリングし、全チャンネルの収集を1回実行して終了する。
func runHarvest(ctx context.Context, cfg *config.Config) error {
	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	// 1. チャンネルディレクトリ（ロケールテーブル込み）
	dir, err := buildDirectory(ctx, cfg, httpClient)
	if err != nil {
		return err
	}

	// 2. 外部コラボレータ
	catalog := holodex.NewClient(httpClient, slog.Default(), cfg.HolodexAPIURL, cfg.HolodexAPIKey)
	statsClient := stats.NewClient(httpClient, slog.Default(), cfg.HololyzerBaseURL)

	// 3. 記録済みIDのスナップショットを書き込み開始前に1回だけ取得する
	existing := dataset.LoadExistingIDs(cfg.DatasetPath)
	slog.Info("既存データセットを読み込みました",
		slog.String("path", cfg.DatasetPath),
		slog.Int("existing_ids", len(existing)),
	)

	// 4. データセットのオープン（新規ならヘッダー書き込み）
	store, err := dataset.Open(cfg.DatasetPath, record.Header())
	if err != nil {
		return fmt.Errorf("データセットのオープンに失敗しました: %w", err)
	}
	defer store.Close()

	// 5. 収集の実行
	limiter := rate.NewLimiter(rate.Limit(cfg.FetchRate), 1)
	harvester := harvest.New(dir, catalog, statsClient, store, existing, cfg.CatalogPageSize, limiter, slog.Default())

	if _, err := harvester.Run(ctx); err != nil {
		return fmt.Errorf("収集に失敗しました: %w", err)
	}

	return nil
}

// runChannels はチャンネル一覧表示モードで実行する。
// 収集は行わず、解決したチャンネルをタブ区切りで標準出力へ表示する。
func runChannels(ctx context.Context, cfg *config.Config) error {
	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	dir, err := buildDirectory(ctx, cfg, httpClient)
	if err != nil {
		return err
	}

	channels, err := dir.ListChannels(ctx)
	if err != nil {
		return fmt.Errorf("チャンネル一覧の取得に失敗しました: %w", err)
	}

	for _, ch := range channels {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\t%s\t%s\n",
			ch.ID, ch.EnName, ch.JaName, ch.EnCategory, ch.JaCategory)
	}

	return nil
}
