package janitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/listing-portal/internal/worker"
)

// SessionEvictor - реестр форм, умеющий закрывать простаивающие
type SessionEvictor interface {
	EvictIdle(ctx context.Context) int
}

// SessionJanitor периодически закрывает брошенные формы
type SessionJanitor struct {
	*worker.BaseWorker
	sessions SessionEvictor
	interval time.Duration
}

func NewSessionJanitor(sessions SessionEvictor, interval time.Duration, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		BaseWorker: worker.NewBaseWorker("form-session-janitor", "", logger),
		sessions:   sessions,
		interval:   interval,
	}
}

func (j *SessionJanitor) Start(ctx context.Context) error {
	j.Logger().Info("Starting form session janitor", zap.Duration("interval", j.interval))

	for j.Sleep(ctx, j.interval) {
		if n := j.sessions.EvictIdle(ctx); n > 0 {
			j.Logger().Info("Idle form sessions evicted", zap.Int("count", n))
		}
	}

	j.Logger().Info("Worker stopped")
	return nil
}
