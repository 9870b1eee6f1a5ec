// holoharvest はhololyzer.netの統計ページとHolodex APIから
// 配信ごとの分析データを収集し、フラットな追記専用CSVデータセットとして
// 蓄積するコマンドラインツール。
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/holoharvest/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
