package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/internal/config"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeSkipped = "skipped"

	defaultRunTimeout = 5 * time.Minute
)

var (
	comparisonRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attribution",
		Subsystem: "daily_comparison",
		Name:      "runs_total",
		Help:      "Execuções da comparação diária por resultado.",
	}, []string{"outcome"})

	comparisonSkippedPatterns = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "attribution",
		Subsystem: "daily_comparison",
		Name:      "skipped_patterns",
		Help:      "Padrões sem dados na última execução.",
	})

	comparisonLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "attribution",
		Subsystem: "daily_comparison",
		Name:      "last_success_timestamp_seconds",
		Help:      "Momento da última execução bem-sucedida.",
	})
)

// DailyComparisonConfig representa a configuração do agendador da comparação diária
type DailyComparisonConfig struct {
	CronSchedule string
	Patterns     []domain.Pattern
	SyncEnabled  bool
	RunTimeout   time.Duration
}

// DailyComparisonService executa periodicamente os padrões de comparação
// ancorados na data mais recente e mantém o último resultado em memória
type DailyComparisonService struct {
	scheduler           *gocron.Scheduler
	config              DailyComparisonConfig
	attributor          attributing.Attributor
	ctx                 context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastError           string
	lastReports         *domain.PatternReports
}

// NewDailyComparisonService cria uma nova instância do serviço de comparação diária
func NewDailyComparisonService(attributor attributing.Attributor, appConfig *config.Config) (*DailyComparisonService, error) {
	patterns, err := domain.ParsePatterns(strings.Join(appConfig.DailyComparison.Patterns, ","))
	if err != nil {
		return nil, fmt.Errorf("configuração DAILY_COMPARISON_PATTERNS inválida: %w", err)
	}

	comparisonConfig := DailyComparisonConfig{
		CronSchedule: appConfig.DailyComparison.CronSchedule,
		Patterns:     patterns,
		SyncEnabled:  appConfig.DailyComparison.Enabled,
		RunTimeout:   defaultRunTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": comparisonConfig.CronSchedule,
		"patterns":      patterns,
		"sync_enabled":  comparisonConfig.SyncEnabled,
	}).Info("Configuração do agendador de comparação diária carregada")

	return &DailyComparisonService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     comparisonConfig,
		attributor: attributor,
		ctx:        context.Background(),
	}, nil
}

// Start inicia o agendador
func (s *DailyComparisonService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Comparação diária desabilitada por configuração")
		return nil
	}

	s.syncMutex.Lock()
	s.ctx = ctx
	s.syncMutex.Unlock()

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de comparação diária")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runComparison()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar comparação diária: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de comparação diária")
		s.scheduler.Stop()
	}()

	return nil
}

// runComparison executa os padrões configurados; execuções sobrepostas são ignoradas
func (s *DailyComparisonService) runComparison() {
	ctx, ok := s.claimRun()
	if !ok {
		logrus.Info("Comparação diária já em andamento, ignorando")
		comparisonRunsTotal.WithLabelValues(outcomeSkipped).Inc()
		return
	}

	s.executeComparison(ctx)
}

// claimRun marca a execução como iniciada e devolve o contexto base.
// Retorna false quando já existe uma execução em andamento.
func (s *DailyComparisonService) claimRun() (context.Context, bool) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return nil, false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return s.ctx, true
}

// executeComparison roda uma execução já reservada por claimRun
func (s *DailyComparisonService) executeComparison(baseCtx context.Context) {
	startTime := time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.WithField("patterns", s.config.Patterns).Info("Iniciando comparação diária")

	ctx, cancel := context.WithTimeout(baseCtx, s.config.RunTimeout)
	defer cancel()

	result, err := s.attributor.ComparePatterns(ctx, time.Time{}, s.config.Patterns)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if err != nil {
		s.lastError = err.Error()
		comparisonRunsTotal.WithLabelValues(outcomeFailure).Inc()
		logrus.WithError(err).Error("Erro ao executar comparação diária")
		return
	}

	s.lastError = ""
	s.lastReports = result
	s.lastSyncCompletedAt = time.Now()
	comparisonRunsTotal.WithLabelValues(outcomeSuccess).Inc()
	comparisonSkippedPatterns.Set(float64(len(result.Skipped)))
	comparisonLastSuccess.Set(float64(s.lastSyncCompletedAt.Unix()))

	logrus.WithFields(logrus.Fields{
		"anchor":   result.Anchor.Format(time.DateOnly),
		"reports":  len(result.Reports),
		"skipped":  len(result.Skipped),
		"duration": time.Since(startTime).String(),
	}).Info("Comparação diária concluída")
}

// TriggerManualSync dispara uma execução fora do agendamento.
// Retorna false quando já existe uma execução em andamento.
func (s *DailyComparisonService) TriggerManualSync() bool {
	ctx, ok := s.claimRun()
	if !ok {
		logrus.Info("Comparação diária já em andamento, ignorando solicitação manual")
		comparisonRunsTotal.WithLabelValues(outcomeSkipped).Inc()
		return false
	}

	logrus.Info("Iniciando comparação diária manual")
	go s.executeComparison(ctx)
	return true
}

// LastReports retorna o resultado da última execução bem-sucedida
func (s *DailyComparisonService) LastReports() *domain.PatternReports {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return s.lastReports
}

// GetStatus retorna o status atual do agendador
func (s *DailyComparisonService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"patterns":               s.config.Patterns,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
	}
}
