package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/texthtml/pgql/std"
)

var rootCmd = &cobra.Command{
	Use:   "pgql",
	Short: "Read-only GraphQL API generated from a PostgreSQL catalog.",
	// 不带子命令时直接启动服务
	RunE: func(cmd *cobra.Command, args []string) error {
		return startCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information.",
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pgql %s (%s)\n", std.Version, std.GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP(configFlag, "c", "", "start app with config file")
	rootCmd.AddCommand(startCmd, versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
