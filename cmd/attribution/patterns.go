package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/pkg/utils"
)

var (
	flagDate     string
	flagPatterns string
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Executa os padrões de comparação (dia, semana, duas semanas)",
	Long: "Compara as janelas de cada padrão ancoradas na data informada.\n" +
		"Sem --date a âncora é a data mais recente disponível.",
	Example: "  attribution patterns --date 2024-05-14 --patterns day,week",
	RunE:    runPatterns,
}

func init() {
	patternsCmd.Flags().StringVar(&flagDate, "date", "", "Data âncora (YYYY-MM-DD)")
	patternsCmd.Flags().StringVar(&flagPatterns, "patterns", "day,week,two_week", "Padrões separados por vírgula")

	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	anchor, err := utils.ParseDate(flagDate)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}
	patterns, err := domain.ParsePatterns(flagPatterns)
	if err != nil {
		return fmt.Errorf("--patterns: %w", err)
	}

	service, closer, err := loadAttributor(cmd.Context())
	if err != nil {
		return err
	}
	defer closer()

	result, err := service.ComparePatterns(cmd.Context(), anchor, patterns)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(result)
	}

	fmt.Print(renderPatternReports(result))
	return nil
}
