package main

import (
	"os"

	"github.com/grovetools/draft/cmd"
)

func main() {
	rootCmd := cmd.NewDaemonCmd()
	rootCmd.Use = "draftd"

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
