package cmd

import (
	"encoding/json"
	"os"

	"catering/rules"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect or reset the persisted business rules",
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the rules currently in effect as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a.store.Current())
	},
}

var rulesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the persisted rules with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		return a.store.Save(cmd.Context(), rules.DefaultRuleConfig())
	},
}

func init() {
	rulesCmd.AddCommand(rulesShowCmd, rulesResetCmd)
}
