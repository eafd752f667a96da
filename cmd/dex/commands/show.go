package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full detail of one entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			detail, err := c.catalog.GetDetail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.render(detail)
		},
	}
}
