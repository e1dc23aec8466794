package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fonto-dev/fonto/engine"
)

// TreeCmd represents the tree command
var TreeCmd = &cobra.Command{
	Use:   "tree <term>",
	Short: "Walk the class hierarchy up or down from a term",
	Long: `Resolve a term and walk the subclass hierarchy breadth-first, showing
each related entity with its distance from the starting point.

Examples:
  fonto tree SovereignState                    # Ancestors, 3 levels
  fonto tree LegalPerson --down --depth 5      # Descendants
  fonto tree Currency --json`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	TreeCmd.Flags().Bool("down", false, "Walk toward subclasses instead of superclasses")
	TreeCmd.Flags().IntP("depth", "d", 3, "Number of hierarchy levels to traverse")
	TreeCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

func runTree(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	direction := engine.Ancestors
	if down, _ := cmd.Flags().GetBool("down"); down {
		direction = engine.Descendants
	}
	depth, _ := cmd.Flags().GetInt("depth")

	nodes, err := eng.Hierarchy(cmd.Context(), args[0], direction, depth)
	if err != nil {
		return err
	}
	if nodes == nil {
		pterm.Warning.Printf("No entity matches %q\n", args[0])
		return nil
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		data, err := json.MarshalIndent(nodes, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(nodes) == 0 {
		pterm.Info.Printf("%q has no %s within %d levels\n", args[0], direction, depth)
		return nil
	}

	pterm.Println()
	for _, node := range nodes {
		indent := strings.Repeat("  ", node.Level)
		pterm.Printf("%s%s  %s\n", indent, node.Label, pterm.Gray(node.IRI))
	}
	return nil
}
