package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/store"
)

// codeCleanupWorker periodically purges expired one-time codes (2FA,
// email-change, password-reset) from the users table. Verification paths
// already treat expired codes as absent; the worker just keeps stale secrets
// from lingering at rest.
type codeCleanupWorker struct {
	userRepository store.UserRepository
	interval       time.Duration
	logger         *logger.Logger
}

func newCodeCleanupWorker(userRepository store.UserRepository, interval time.Duration, logger *logger.Logger) *codeCleanupWorker {
	return &codeCleanupWorker{
		userRepository: userRepository,
		interval:       interval,
		logger:         logger,
	}
}

// Run starts the cleanup loop in its own goroutine and returns immediately.
func (w *codeCleanupWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info().Dur("interval", w.interval).Msg("code cleanup worker started")

		for range ticker.C {
			w.cleanup()
		}
	}()
}

func (w *codeCleanupWorker) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	affected, err := w.userRepository.ClearExpiredCodes(ctx, time.Now())
	if err != nil {
		w.logger.Err(err).Msg("expired code cleanup failed")
		return
	}

	if affected > 0 {
		w.logger.Info().Int64("accounts", affected).Msg("expired one-time codes cleared")
	}
}
