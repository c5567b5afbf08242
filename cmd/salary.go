package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Manage collector salaries used for bonuses",
}

var salarySetCmd = &cobra.Command{
	Use:     "set NAME AMOUNT",
	Short:   "Set one collector's salary",
	Example: `  collections salary set "Sara Ali" 12000`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid salary %q: %w", args[1], err)
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.settings.SetSalary(cmd.Context(), args[0], amount); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Salary for %s set to %.2f\n", args[0], amount)
		return nil
	},
}

var salaryDefaultCmd = &cobra.Command{
	Use:   "default AMOUNT",
	Short: "Set the salary used for collectors without their own",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid salary %q: %w", args[0], err)
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.settings.SetDefaultSalary(cmd.Context(), amount); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default salary set to %.2f\n", amount)
		return nil
	},
}

var salaryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List configured salaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		table, err := a.settings.Salaries(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-30s %12.2f\n", "(default)", table.Default)
		names := make([]string, 0, len(table.Collectors))
		for name := range table.Collectors {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%-30s %12.2f\n", name, table.Collectors[name])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(salaryCmd)
	salaryCmd.AddCommand(salarySetCmd, salaryDefaultCmd, salaryShowCmd)
}
