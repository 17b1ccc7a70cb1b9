package main

import (
	"os"

	"github.com/grovetools/draft/cli"
	"github.com/grovetools/draft/cmd"
	"github.com/grovetools/draft/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"draft",
		"Dirty-state tracking for working copies across editors",
	)

	info := version.GetInfo()
	rootCmd.Version = info.Version
	cli.SetVersionTemplate(rootCmd, cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	})

	rootCmd.SilenceErrors = true
	rootCmd.AddCommand(cmd.NewDaemonCmd())
	rootCmd.AddCommand(cmd.NewStatusCmd())
	rootCmd.AddCommand(cmd.NewReportCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewLogsCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		handler := cli.NewErrorHandler(false)
		_ = handler.Handle(err)
		os.Exit(1)
	}
}
