package commands

import "github.com/spf13/cobra"

func (c *CLI) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <instance-id>",
		Short: "Apply a scheduling state and node change to a stored instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _ := cmd.Flags().GetString("state")
			node, _ := cmd.Flags().GetString("node")
			return c.app.Update(cmd.Context(), args[0], state, node)
		},
	}
	cmd.Flags().StringP("state", "s", "", "New state, e.g. RUNNING or WAITING|SCHEDULED")
	cmd.Flags().StringP("node", "n", "", "Hex id of the assigned node; empty clears it")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}
