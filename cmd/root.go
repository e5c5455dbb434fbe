package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "netenforce",
	Short:        "netenforce keeps a wireless interface's IP addressing in line with a per-network policy",
	SilenceUsage: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
