// Package scheduler ejecuta tareas periódicas (auditoría de stock negativo).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

// Auditor es la tarea que corre en cada disparo. inventory.StockAudit la implementa.
type Auditor interface {
	Run(ctx context.Context) ([]*entity.InventoryRecord, error)
}

// Scheduler envuelve un cron con la auditoría de stock.
type Scheduler struct {
	cron    *cron.Cron
	auditor Auditor
	spec    string
	timeout time.Duration
	log     zerolog.Logger
}

// New construye el scheduler. spec vacío deja el scheduler sin tareas.
func New(spec string, auditor Auditor, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		auditor: auditor,
		spec:    spec,
		timeout: 2 * time.Minute,
		log:     log,
	}
}

// Start registra la auditoría y arranca el cron. Expresión inválida -> error.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.log.Info().Msg("auditoría de stock deshabilitada")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.runAudit); err != nil {
		return fmt.Errorf("scheduler: expresión cron %q: %w", s.spec, err)
	}
	s.log.Info().Str("cron", s.spec).Msg("iniciando scheduler")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler detenido con tarea en curso")
	}
}

func (s *Scheduler) runAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	records, err := s.auditor.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("auditoría de stock falló")
		return
	}
	s.log.Debug().Int("negative_records", len(records)).Dur("took", time.Since(start)).Msg("auditoría ejecutada")
}
