package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/attribution-api/internal/domain"
)

var (
	flagBefore string
	flagAfter  string
)

var compareCmd = &cobra.Command{
	Use:     "compare",
	Short:   "Compara dois períodos",
	Example: "  attribution compare --before 2024-05-01:2024-05-07 --after 2024-05-08:2024-05-14",
	RunE:    runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&flagBefore, "before", "", "Período anterior (YYYY-MM-DD ou YYYY-MM-DD:YYYY-MM-DD)")
	compareCmd.Flags().StringVar(&flagAfter, "after", "", "Período posterior (YYYY-MM-DD ou YYYY-MM-DD:YYYY-MM-DD)")
	_ = compareCmd.MarkFlagRequired("before")
	_ = compareCmd.MarkFlagRequired("after")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	before, err := domain.ParsePeriod(flagBefore)
	if err != nil {
		return fmt.Errorf("--before: %w", err)
	}
	after, err := domain.ParsePeriod(flagAfter)
	if err != nil {
		return fmt.Errorf("--after: %w", err)
	}

	service, closer, err := loadAttributor(cmd.Context())
	if err != nil {
		return err
	}
	defer closer()

	report, err := service.Compare(cmd.Context(), before, after)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(report)
	}

	fmt.Print(renderReport(report))
	return nil
}
