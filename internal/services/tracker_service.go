package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bilancio/internal/amqp"
	"bilancio/internal/core"
)

// TrackerService orchestrates transaction, target and budget writes across
// SQLite and AMQP
type TrackerService struct {
	store     Store
	publisher EventPublisher
	now       func() time.Time
}

func NewTrackerService(store Store, publisher EventPublisher) *TrackerService {
	return &TrackerService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateTransaction saves a transaction locally and publishes a change event.
// An investment linked to a target also bumps that target's saved amount.
func (s *TrackerService) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	if tx.TargetID != 0 {
		// Fail fast before the write when the linked target is missing.
		if _, err := s.store.GetTarget(ctx, tx.TargetID); err != nil {
			return core.Transaction{}, fmt.Errorf("resolve linked target %d: %w", tx.TargetID, err)
		}
	}

	created, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if created.TargetID != 0 {
		if _, err := s.store.AddToTarget(ctx, created.TargetID, created.Amount); err != nil {
			slog.ErrorContext(ctx, "Failed to apply investment to target",
				"transaction_id", created.ID,
				"target_id", created.TargetID,
				"error", err)
			// Don't fail the request - the transaction itself is saved
		}
	}

	s.publish(ctx, amqp.KindTransactionCreated, created.ID)

	return created, nil
}

func (s *TrackerService) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *TrackerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// ListTransactionsByMonth returns the transactions of a single calendar month.
func (s *TrackerService) ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	return s.store.ListTransactionsByMonth(ctx, year, month)
}

func (s *TrackerService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publish(ctx, amqp.KindTransactionDeleted, id)
	return nil
}

// CreateTarget saves a savings target. A missing creation date defaults to
// today.
func (s *TrackerService) CreateTarget(ctx context.Context, t core.Target) (core.Target, error) {
	if t.CreatedAt.IsEmpty() {
		now := s.now().UTC()
		t.CreatedAt = core.NewDate(now.Year(), int(now.Month()), now.Day())
	}

	if err := t.Validate(); err != nil {
		return core.Target{}, fmt.Errorf("validate target: %w", err)
	}

	created, err := s.store.CreateTarget(ctx, t)
	if err != nil {
		return core.Target{}, fmt.Errorf("save target: %w", err)
	}

	s.publish(ctx, amqp.KindTargetCreated, created.ID)

	return created, nil
}

func (s *TrackerService) GetTarget(ctx context.Context, id int64) (core.Target, error) {
	return s.store.GetTarget(ctx, id)
}

func (s *TrackerService) ListTargets(ctx context.Context) ([]core.Target, error) {
	return s.store.ListTargets(ctx)
}

// ContributeToTarget adds the given amount to a target's saved total
func (s *TrackerService) ContributeToTarget(ctx context.Context, id int64, amount core.Money) (core.Target, error) {
	if amount.Cents <= 0 {
		return core.Target{}, core.ErrInvalidAmount
	}

	updated, err := s.store.AddToTarget(ctx, id, amount)
	if err != nil {
		return core.Target{}, fmt.Errorf("contribute to target: %w", err)
	}

	s.publish(ctx, amqp.KindTargetContributed, id)

	return updated, nil
}

func (s *TrackerService) DeleteTarget(ctx context.Context, id int64) error {
	if err := s.store.DeleteTarget(ctx, id); err != nil {
		return fmt.Errorf("delete target: %w", err)
	}

	s.publish(ctx, amqp.KindTargetDeleted, id)
	return nil
}

// CreateBudget saves a category budget for a month, replacing an existing
// budget for the same category and period.
func (s *TrackerService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("validate budget: %w", err)
	}

	created, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}

	s.publish(ctx, amqp.KindBudgetCreated, created.ID)

	return created, nil
}

func (s *TrackerService) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx)
}

func (s *TrackerService) ListBudgetsByMonth(ctx context.Context, month, year int) ([]core.Budget, error) {
	return s.store.ListBudgetsByMonth(ctx, month, year)
}

func (s *TrackerService) DeleteBudget(ctx context.Context, id int64) error {
	if err := s.store.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}

	s.publish(ctx, amqp.KindBudgetDeleted, id)
	return nil
}

// ListCategories returns the provisioned category names.
func (s *TrackerService) ListCategories(ctx context.Context) ([]string, error) {
	return s.store.ListCategories(ctx)
}

// publish sends a change event without failing the caller. Writes are
// durable locally; the worker catches up on its periodic export either way.
func (s *TrackerService) publish(ctx context.Context, kind string, id int64) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Event publisher not available, skipping change event",
			"kind", kind, "id", id)
		return
	}

	if err := s.publisher.PublishChangeEvent(ctx, kind, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"kind", kind, "id", id, "error", err)
	}
}

// Close closes both storage and AMQP connections
func (s *TrackerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close tracker service: %v", errs)
	}

	return nil
}
