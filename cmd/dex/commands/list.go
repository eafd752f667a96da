package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/briangreenhill/pokedex/internal/catalog"
)

func (c *CLI) newListCmd() *cobra.Command {
	var (
		offset int
		limit  int
		query  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of entities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.catalog.GetList(cmd.Context(), offset, limit)
			if err != nil {
				return err
			}
			if q := strings.ToLower(query); q != "" {
				filtered := list[:0:0]
				for _, e := range list {
					if strings.Contains(strings.ToLower(e.Name), q) {
						filtered = append(filtered, e)
					}
				}
				list = filtered
			}
			if list == nil {
				list = []catalog.EntitySummary{}
			}
			return c.render(list)
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "Index of the first entity")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of entities to fetch")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show names containing this text")
	return cmd
}
