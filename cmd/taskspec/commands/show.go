package commands

import "github.com/spf13/cobra"

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <instance-id>",
		Short: "Print a stored task instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Show(cmd.Context(), args[0])
		},
	}
}
