package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestInit_MissingAPIKey は必須環境変数の不足がInitで検出されることをテストする。
func TestInit_MissingAPIKey(t *testing.T) {
	t.Setenv("HOLODEX_API_KEY", "")

	var buf bytes.Buffer
	if _, err := Init(&buf); err == nil {
		t.Error("HOLODEX_API_KEY未設定はエラーになるべき")
	}
}

// TestInit_LoadsConfig は初期化で設定が読み込まれ、JSONログが有効になることをテストする。
func TestInit_LoadsConfig(t *testing.T) {
	t.Setenv("HOLODEX_API_KEY", "test-key")
	t.Setenv("DATASET_PATH", "/tmp/out.csv")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err != nil {
		t.Fatalf("初期化は成功するべき: %v", err)
	}
	if cfg.DatasetPath != "/tmp/out.csv" {
		t.Errorf("DatasetPath: got %q", cfg.DatasetPath)
	}
}

// TestRun_MissingAPIKey はRunが初期化失敗を伝播することをテストする。
func TestRun_MissingAPIKey(t *testing.T) {
	t.Setenv("HOLODEX_API_KEY", "")

	var buf bytes.Buffer
	err := Run(&buf, nil)
	if err == nil {
		t.Fatal("初期化失敗はエラーになるべき")
	}
	if !strings.Contains(err.Error(), "HOLODEX_API_KEY") {
		t.Errorf("不足している変数名がエラーに含まれるべき: %v", err)
	}
}

// TestRun_LogsAreJSON はRunのログ出力がJSON構造化形式であることをテストする。
func TestRun_LogsAreJSON(t *testing.T) {
	t.Setenv("HOLODEX_API_KEY", "test-key")
	// 存在しないホストを指定して起動直後に失敗させる
	t.Setenv("HOLOLYZER_BASE_URL", "http://127.0.0.1:0")
	t.Setenv("FETCH_TIMEOUT", "100ms")

	var buf bytes.Buffer
	_ = Run(&buf, []string{"channels"})

	line, _, _ := strings.Cut(buf.String(), "\n")
	if line == "" {
		t.Fatal("起動ログが出力されるべき")
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("ログはJSON形式であるべき: %v (%q)", err, line)
	}
	if entry["msg"] != "starting application" {
		t.Errorf("起動メッセージが記録されるべき: got %v", entry["msg"])
	}
}
