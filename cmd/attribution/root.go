package main

import (
	"context"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/vfg2006/attribution-api/infrastructure/database/postgres"
	"github.com/vfg2006/attribution-api/infrastructure/repository"
	"github.com/vfg2006/attribution-api/internal/config"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing"
	"github.com/vfg2006/attribution-api/pkg/log"
	"github.com/vfg2006/attribution-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	flagInput       string
	flagJSON        bool
	flagSkipInvalid bool
	flagLogLevel    string
)

var rootCmd = &cobra.Command{
	Use:           "attribution",
	Short:         "Comparação de mídia entre períodos",
	Long:          "Compara conversões e CPA entre dois períodos e estima a contribuição de cada canal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		log.Setup(flagLogLevel)
	},
}

// Execute é o ponto de entrada chamado pelo main
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "Arquivo JSON com registros brutos; sem ele os registros são lidos do Postgres")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Saída em JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSkipInvalid, "skip-invalid", false, "Ignora linhas inválidas do arquivo de entrada")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Nível de log")
}

// loadAttributor monta o serviço sobre o arquivo informado ou sobre o Postgres.
// A função retornada libera os recursos abertos.
func loadAttributor(ctx context.Context) (attributing.Attributor, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	if flagInput != "" {
		records, err := readRecordsFile(flagInput, flagSkipInvalid)
		if err != nil {
			return nil, nil, err
		}
		return attributing.NewService(cfg, repository.NewMemoryAdRecordRepository(records)), func() {}, nil
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	closer := func() {
		if err := conn.Close(); err != nil {
			log.L.WithError(err).Warn("Erro ao fechar conexão com o Postgres")
		}
	}

	return attributing.NewService(cfg, repository.NewAdRecordRepository(conn)), closer, nil
}

// readRecordsFile lê um array JSON de registros brutos e os normaliza
func readRecordsFile(path string, skipInvalid bool) ([]domain.AdRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", path, err)
	}

	var raw []domain.RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("erro ao decodificar %s: %w", path, err)
	}

	records, err := attributing.NormalizeRecords(raw)
	if err != nil {
		if !skipInvalid {
			return nil, err
		}
		log.L.WithError(err).Warnf("%d linhas ignoradas", len(raw)-len(records))
	}

	return records, nil
}

func printJSON(v any) error {
	out, err := utils.PrettyJson(v)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
