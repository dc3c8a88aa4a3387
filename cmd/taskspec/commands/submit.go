package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/taskspec/internal/app"
)

func (c *CLI) newSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <manifest>",
		Short: "Build the tasks of a manifest, record them and publish them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("out")
			return c.app.Submit(cmd.Context(), args[0], app.SubmitOptions{OutDir: outDir})
		},
	}
	cmd.Flags().StringP("out", "o", "", "Write each raw spec to <dir>/<task>.task")
	return cmd
}
