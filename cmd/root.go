package cmd

import (
	"fmt"
	"os"

	"roster-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedFile is a storage dump imported into the local store before a command runs.
var seedFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "roster-manager",
	Short: "Competition roster service",
	Long: `Roster Manager reconciles the participant data of competition events.
It merges team, player, staff and application buckets into one deduplicated,
role-ordered participant dataset and serves it over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&seedFile, "seed", "", "Import a storage dump (JSON object of key to value) into the local store first")
}
