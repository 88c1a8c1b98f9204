package fixtures

import (
	"github.com/kashguard/go-txverify/internal/util/command"
	"github.com/spf13/cobra"
)

const (
	pathFlag     string = "path"
	textfileFlag string = "metrics-textfile"
)

// New 创建 fixtures 命令组
func New() *cobra.Command {
	return command.NewSubcommandGroup("fixtures",
		newVerify(),
		newList(),
	)
}
