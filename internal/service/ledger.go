package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/fundhive/fundhive/internal/metrics"
	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

// LedgerService records contributions against projects.
type LedgerService struct {
	store   store.Store
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(st store.Store, recorder metrics.Recorder, logger *slog.Logger) *LedgerService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &LedgerService{
		store:   st,
		metrics: recorder,
		logger:  defaultLogger(logger),
		now:     utcNow,
	}
}

var errAmountTooLarge = invalid("amount exceeds the largest total a project or backer can hold")

// ledgerError maps store errors from the ledger writes to domain errors.
func ledgerError(err, missing error) error {
	if errors.Is(err, store.ErrOutOfRange) {
		return errAmountTooLarge
	}
	return notFound(err, missing)
}

// BackInput defines input for backing a project.
type BackInput struct {
	ProjectID string
	BackerID  string
	Amount    int64
}

// Back records a contribution. The backer row, the raised increment, the
// backer's project reference and their lifetime total are written in one
// transaction; if any step fails none of them persist.
func (s *LedgerService) Back(ctx context.Context, input BackInput) (*model.Project, error) {
	if input.Amount <= 0 {
		s.metrics.IncBacking(metrics.BackingRejected)
		return nil, invalid("amount must be a positive whole number")
	}
	if input.BackerID == "" {
		s.metrics.IncBacking(metrics.BackingRejected)
		return nil, ErrUnauthorized
	}

	backer := model.Backer{
		UserID: input.BackerID,
		Amount: input.Amount,
		Date:   s.now(),
	}

	err := s.store.InTx(ctx, func(tx store.Store) error {
		project, err := tx.LockProject(ctx, input.ProjectID)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		user, err := tx.GetUser(ctx, input.BackerID)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}
		if input.Amount > math.MaxInt64-project.Raised || input.Amount > math.MaxInt64-user.TotalContributed {
			return errAmountTooLarge
		}

		if err := tx.AppendBacker(ctx, input.ProjectID, backer); err != nil {
			return ledgerError(err, ErrProjectNotFound)
		}

		if err := tx.AddBackedProject(ctx, input.BackerID, input.ProjectID); err != nil {
			return notFound(err, ErrUserNotFound)
		}

		if err := tx.AddContribution(ctx, input.BackerID, input.Amount); err != nil {
			return ledgerError(err, ErrUserNotFound)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrValidation) {
			s.metrics.IncBacking(metrics.BackingRejected)
			return nil, err
		}
		s.metrics.IncBacking(metrics.BackingFailed)
		return nil, fmt.Errorf("failed to back project: %w", err)
	}

	s.metrics.IncBacking(metrics.BackingSuccess)
	s.metrics.ObserveBackingAmount(input.Amount)

	s.logger.Info("project_backed",
		"project_id", input.ProjectID,
		"user_id", input.BackerID,
		"amount", input.Amount,
	)

	project, err := s.store.GetProject(ctx, input.ProjectID)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}

	return project, nil
}
