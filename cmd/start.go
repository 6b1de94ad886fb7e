package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/texthtml/pgql/ioc"
	"github.com/texthtml/pgql/utl"
	"go.uber.org/fx"
)

const configFlag = "config"

var startCmd = &cobra.Command{
	Use:     "start",
	Aliases: []string{"run", "s", "r"},
	Short:   "Start Service.",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := fx.New(
			ioc.Get(),
			ioc.Supply(configFile(cmd)),
		)
		// 构造失败（配置、连接或内省）时以非零状态退出
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}

// configFile 未指定时使用 cfg/config.yml，文件不存在则只用默认值和环境变量
func configFile(cmd *cobra.Command) string {
	file, _ := cmd.Flags().GetString(configFlag)
	if file != "" {
		return file
	}
	file = filepath.Join(utl.Root(), "cfg", "config.yml")
	if _, err := os.Stat(file); err != nil {
		return ""
	}
	return file
}
