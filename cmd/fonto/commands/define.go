package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// DefineCmd represents the define command
var DefineCmd = &cobra.Command{
	Use:   "define <term>",
	Short: "Resolve a term and show its labels, definitions, and parents",
	Long: `Resolve a term to one ontology entity and display everything known
about it: labels, definitions, direct parent classes, and where in the
ontology it is defined.

The term may be a full IRI, a prefixed IRI (fibo:...), an IRI local name
(SovereignState), or a human label ("sovereign state").

Examples:
  fonto define SovereignState
  fonto define "sovereign state"
  fonto define fibo:FND/Accounting/CurrencyAmount/Currency --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDefine,
}

func init() {
	DefineCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

func runDefine(cmd *cobra.Command, args []string) error {
	eng, _, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	res, err := eng.Define(cmd.Context(), args[0])
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
	pterm.DefaultSection.Println(res.IRI)
	printField("Labels", strings.Join(res.Labels, "; "))
	for _, def := range res.Definitions {
		printField("Definition", def)
	}
	if len(res.Parents) > 0 {
		printField("Parents", strings.Join(res.Parents, "; "))
	}
	if res.HasLocality {
		printField("Defined in", res.Locality)
	}
	if res.Candidates > 1 {
		pterm.Println()
		pterm.Info.Printf("%d entities matched; showing the best. Try 'fonto search' to see the rest.\n", res.Candidates)
	}
	return nil
}

func printField(name, value string) {
	if value == "" {
		return
	}
	pterm.Printf("  %-12s %s\n", name+":", value)
}
