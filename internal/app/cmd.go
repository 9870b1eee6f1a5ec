package app

// Command はアプリケーションの実行モードを表す。
type Command string

const (
	// CommandHarvest は全チャンネルの収集を1回実行することを示す。
	CommandHarvest Command = "harvest"
	// CommandChannels は解決したチャンネル一覧の表示のみを行うことを示す。
	// 収集対象の確認用。
	CommandChannels Command = "channels"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandHarvestを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandHarvest
	}

	switch args[0] {
	case "harvest":
		return CommandHarvest
	case "channels":
		return CommandChannels
	default:
		return CommandHarvest
	}
}
