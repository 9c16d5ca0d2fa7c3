package cli

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch videos then detect trends",
	RunE:  runAction,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runAction(cmd *cobra.Command, args []string) error {
	if err := fetchAction(cmd, args); err != nil {
		return err
	}
	return detectAction(cmd, args)
}
