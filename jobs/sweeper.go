// Package jobs hosts the periodic maintenance loops. Both sweeps are
// idempotent and bounded, so overlapping or retried runs are harmless.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tarweej.app/configs"
	"tarweej.app/configs/configslog"
	"tarweej.app/services"
)

// Sweeper periodically expires unanswered invitations and persists proof
// auto-approvals.
type Sweeper struct {
	invitations services.IInvitationService
	interval    time.Duration
}

func NewSweeper() *Sweeper {
	cfg := configs.GetConfig()
	return &Sweeper{
		invitations: services.NewInvitationService(),
		interval:    cfg.SweepInterval,
	}
}

// Start runs the sweep loop until the context is cancelled. One sweep runs
// immediately so a restart never extends the effective deadlines.
func (s *Sweeper) Start(ctx context.Context) {
	configslog.SLog.Infof("sweeper started: interval=%s", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			configslog.SLog.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	expired, err := s.invitations.ExpirePendingInvitations(ctx)
	if err != nil {
		configslog.Log.Error("expiration sweep failed", zap.Error(err))
	}

	approved, err := s.invitations.AutoApproveSubmittedProofs(ctx)
	if err != nil {
		configslog.Log.Error("auto-approval sweep failed", zap.Error(err))
	}

	if expired > 0 || approved > 0 {
		configslog.SLog.Infof("sweep done: expired=%d auto_approved=%d", expired, approved)
	}
}
