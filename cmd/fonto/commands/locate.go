package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// LocateCmd represents the locate command
var LocateCmd = &cobra.Command{
	Use:   "locate <term>",
	Short: "Show where in the ontology an entity is defined",
	Long: `Resolve a term and report the ontology module it is defined in,
derived from rdfs:isDefinedBy when declared, or from the entity IRI
structure otherwise.

Examples:
  fonto locate SovereignState
  fonto locate Currency --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLocate,
}

func init() {
	LocateCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

func runLocate(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	res, err := eng.Locate(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if res == nil {
		pterm.Warning.Printf("No entity matches %q\n", args[0])
		return nil
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	pterm.Println()
	printField("IRI", res.IRI)
	if res.HasLocality {
		printField("Defined in", res.Locality)
	} else {
		pterm.Info.Println("No module information is recorded for this entity")
	}
	return nil
}
