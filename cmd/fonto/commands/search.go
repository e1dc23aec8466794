package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// SearchCmd represents the search command
var SearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank entities whose labels match a query",
	Long: `Search entity labels and return ranked matches: exact matches first,
then case-insensitive matches, then token matches, then substrings.

Examples:
  fonto search currency
  fonto search "interest rate" --limit 20
  fonto search bond --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	SearchCmd.Flags().IntP("limit", "l", 0, "Maximum number of results (default from config)")
	SearchCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	eng, cfg, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit == 0 {
		limit = cfg.Search.DefaultLimit
	}

	hits, err := eng.Search(cmd.Context(), args[0], limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		data, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(hits) == 0 {
		pterm.Warning.Printf("No labels match %q\n", args[0])
		return nil
	}

	pterm.Println()
	rows := pterm.TableData{{"Label", "Match", "IRI"}}
	for _, hit := range hits {
		rows = append(rows, []string{hit.Label, hit.Rank, hit.IRI})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
