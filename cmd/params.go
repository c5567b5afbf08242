package cmd

import (
	"fmt"

	"collections/internal/settings"
	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Show or change the global parameters",
	Long: `Global parameters select the DSO method and date basis, the fiscal year
start, the target and weight of each scored KPI and the bonus policy.
Weights must sum to 100.`,
}

var paramsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current parameters as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		params, err := a.settings.Parameters(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), params)
	},
}

var paramsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change one or more parameters",
	Long: `Change parameters by JSON path. Nested keys are joined with dots. Values
are read as JSON when they parse, otherwise as text.`,
	Example: `  collections params set dsoMethod=countback dateBasis=dueDate
  collections params set dso.target=40 dso.weight=25 add.weight=10
  collections params set bonusPolicy=tiered 'bonusRules=[{"name":"Gold","minScore":90,"percentage":10}]'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		params, err := a.settings.Update(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), params)
	},
}

var paramsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.settings.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Parameters reset to defaults.")
		return nil
	},
}

var paramsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := settings.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	paramsCmd.AddCommand(paramsShowCmd, paramsSetCmd, paramsResetCmd, paramsSchemaCmd)
}
