package database

import (
	"context"
)

func (s *service) Transaction(ctx context.Context, fn func(tx DB) error) error {
	return s.transaction(ctx, func(tx *service) error {
		return fn(tx)
	})
}

// transaction runs fn with a service scoped to a transaction. Nested calls reuse the open transaction so that
// composite store operations can be called from inside a caller's transaction.
func (s *service) transaction(ctx context.Context, fn func(tx *service) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	scoped := *s
	scoped.tx = tx
	scoped.runner = tx

	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("panic in transaction; rolling back", "panic", p)
			if err2 := tx.Rollback(); err2 != nil {
				s.logger.Error("error rolling back transaction after panic", "error", err2)
			}
			panic(p)
		} else if err != nil {
			s.logger.Debug("error in transaction; rolling back", "error", err)
			if err2 := tx.Rollback(); err2 != nil {
				s.logger.Error("error rolling back transaction after error", "error", err2)
			}
		} else {
			err = tx.Commit()
		}
	}()

	// Record error so defer can detect it
	err = fn(&scoped)

	return err
}
