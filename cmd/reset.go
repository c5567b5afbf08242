package cmd

import (
	"fmt"

	"collections/internal/logger"
	"collections/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the imported dataset",
	Long:  `Discard the imported dataset. Parameters and salaries are kept; use "params reset" for those.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.Delete(cmd.Context(), store.KeyDataset); err != nil {
			return fmt.Errorf("failed to clear dataset: %w", err)
		}
		l := logger.WithComponent("reset")
		l.Info().Msg("Dataset cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "Dataset cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
