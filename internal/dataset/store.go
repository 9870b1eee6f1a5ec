// Package dataset は追記専用CSVデータセットの読み書きを提供する。
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// LoadExistingIDs は既存データセットから記録済みの識別子集合を読み込む。
// ファイルが存在しない場合、または読み取りに失敗した場合は空集合を返す。
// データセットは追記専用なので、最悪でも「全件再取得」に退行するだけで
// 既存データの破壊には至らない。
func LoadExistingIDs(path string) map[string]struct{} {
	ids := make(map[string]struct{})

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("既存データセットを開けないため全件を収集対象とします",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
		return ids
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		slog.Warn("既存データセットの読み取りに失敗したため全件を収集対象とします",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return make(map[string]struct{})
	}

	for i, row := range rows {
		if i == 0 {
			// ヘッダー行
			continue
		}
		if len(row) > 0 && row[0] != "" {
			ids[row[0]] = struct{}{}
		}
	}

	return ids
}

// Store はデータセットファイルへの単一ライター。
// 行の追記のみを行い、既存行の書き換えや内部での重複排除は行わない。
// 重複排除はLoadExistingIDsのスナップショットを使って呼び出し元が担う。
type Store struct {
	f *os.File
	w *csv.Writer
}

// Open はデータセットファイルを追記モードで開く。
// ファイルが存在しない場合は親ディレクトリを作成し、
// ヘッダー行を書き込んでから返す。既存ファイルのヘッダーは書き直さない。
func Open(path string, header []string) (*Store, error) {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if !exists {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("データセットファイルのオープンに失敗しました: %w", err)
	}

	s := &Store{f: f, w: csv.NewWriter(f)}

	if !exists {
		if err := s.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("ヘッダー行の書き込みに失敗しました: %w", err)
		}
	}

	return s, nil
}

// Write は1行をスキーマ列順で追記し、即座にフラッシュする。
// 行単位でフラッシュすることで、途中で実行が中断しても
// 書き込み済みの行はデータセットに残る。
func (s *Store) Write(row []string) error {
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("行の書き込みに失敗しました: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("行のフラッシュに失敗しました: %w", err)
	}
	return nil
}

// Close は書き込みをフラッシュしてファイルを閉じる。
func (s *Store) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
