// Package service hosts roulette table sessions and serializes access
// to them. Each table owns an isolated session (ledger, rig, history);
// a per-table advisory lock is held for the duration of every mutating
// operation so bet placement and settlement never interleave.
package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"roulette-engine/internal/pkg/lock"
	"roulette-engine/internal/roulette"
)

// Table-related errors.
var (
	ErrTableExists   = errors.New("table already open")
	ErrTableNotFound = errors.New("table not found")
)

// TableService manages the open tables.
type TableService struct {
	cfg   roulette.SessionConfig
	log   zerolog.Logger
	locks *lock.TableLock

	mu     sync.RWMutex
	tables map[string]*roulette.Session
}

// NewTableService creates a TableService; cfg applies to every table
// it opens.
func NewTableService(cfg roulette.SessionConfig, logger zerolog.Logger) *TableService {
	return &TableService{
		cfg:    cfg,
		log:    logger,
		locks:  lock.NewTableLock(),
		tables: make(map[string]*roulette.Session),
	}
}

// OpenTable creates a fresh session under the given table ID.
func (s *TableService) OpenTable(tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tables[tableID]; exists {
		return ErrTableExists
	}
	s.tables[tableID] = roulette.NewSession(&s.cfg)

	s.log.Info().Str("table", tableID).Int64("balance", s.cfg.StartingBalance).Msg("table opened")
	return nil
}

// CloseTable removes a table and reports whether it existed.
func (s *TableService) CloseTable(tableID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tables[tableID]; !exists {
		return false
	}
	delete(s.tables, tableID)
	s.log.Info().Str("table", tableID).Msg("table closed")
	return true
}

// Tables returns the IDs of all open tables.
func (s *TableService) Tables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.tables))
	for id := range s.tables {
		ids = append(ids, id)
	}
	return ids
}

func (s *TableService) session(tableID string) (*roulette.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.tables[tableID]
	if !exists {
		return nil, ErrTableNotFound
	}
	return session, nil
}

// PlaceBet places a wager at the table.
func (s *TableService) PlaceBet(tableID string, bt roulette.BetType, amount int64) (roulette.Bet, error) {
	session, err := s.session(tableID)
	if err != nil {
		return roulette.Bet{}, err
	}

	var bet roulette.Bet
	var balance int64
	err = s.locks.WithLock(tableID, func() error {
		var placeErr error
		bet, placeErr = session.PlaceBet(bt, amount)
		balance = session.Balance()
		return placeErr
	})
	if err != nil {
		return roulette.Bet{}, err
	}

	s.log.Info().
		Str("table", tableID).
		Str("bet", bt.String()).
		Int64("amount", amount).
		Int64("balance", balance).
		Msg("bet placed")
	return bet, nil
}

// UndoLastBet cancels the most recent pending bet at the table.
func (s *TableService) UndoLastBet(tableID string) (bool, error) {
	session, err := s.session(tableID)
	if err != nil {
		return false, err
	}

	var undone bool
	_ = s.locks.WithLock(tableID, func() error {
		undone = session.UndoLastBet()
		return nil
	})

	if undone {
		s.log.Info().Str("table", tableID).Msg("last bet undone")
	}
	return undone, nil
}

// UndoBet cancels a specific pending bet at the table.
func (s *TableService) UndoBet(tableID string, betID uuid.UUID) (bool, error) {
	session, err := s.session(tableID)
	if err != nil {
		return false, err
	}

	var undone bool
	_ = s.locks.WithLock(tableID, func() error {
		undone = session.UndoBet(betID)
		return nil
	})
	return undone, nil
}

// ClearPendingBets refunds every pending bet at the table and returns
// the total refunded.
func (s *TableService) ClearPendingBets(tableID string) (int64, error) {
	session, err := s.session(tableID)
	if err != nil {
		return 0, err
	}

	var refunded int64
	_ = s.locks.WithLock(tableID, func() error {
		refunded = session.ClearPendingBets()
		return nil
	})

	s.log.Info().Str("table", tableID).Int64("refunded", refunded).Msg("table cleared")
	return refunded, nil
}

// SetRig arms the table's forced-outcome override.
func (s *TableService) SetRig(tableID string, number *roulette.Pocket, color *roulette.Color) error {
	session, err := s.session(tableID)
	if err != nil {
		return err
	}

	err = s.locks.WithLock(tableID, func() error {
		return session.SetRig(number, color)
	})
	if err != nil {
		return err
	}

	event := s.log.Info().Str("table", tableID)
	if number != nil {
		event = event.Str("pocket", number.String())
	}
	if color != nil {
		event = event.Str("color", string(*color))
	}
	event.Msg("rig armed")
	return nil
}

// ClearRig disarms the table's rig.
func (s *TableService) ClearRig(tableID string) error {
	session, err := s.session(tableID)
	if err != nil {
		return err
	}

	_ = s.locks.WithLock(tableID, func() error {
		session.ClearRig()
		return nil
	})
	s.log.Info().Str("table", tableID).Msg("rig cleared")
	return nil
}

// IsRigActive reports whether the table's rig is armed.
func (s *TableService) IsRigActive(tableID string) (bool, error) {
	session, err := s.session(tableID)
	if err != nil {
		return false, err
	}

	var active bool
	_ = s.locks.WithLock(tableID, func() error {
		active = session.IsRigActive()
		return nil
	})
	return active, nil
}

// Spin produces the table's next outcome. Settlement is a separate
// call so the caller controls when results are applied relative to
// whatever it is displaying.
func (s *TableService) Spin(tableID string) (roulette.Outcome, error) {
	session, err := s.session(tableID)
	if err != nil {
		return roulette.Outcome{}, err
	}

	var outcome roulette.Outcome
	_ = s.locks.WithLock(tableID, func() error {
		outcome = session.Spin()
		return nil
	})

	s.log.Info().
		Str("table", tableID).
		Str("pocket", outcome.Pocket.String()).
		Str("color", string(outcome.Color)).
		Msg("wheel spun")
	return outcome, nil
}

// SettleAll resolves the table's pending bets against the outcome.
func (s *TableService) SettleAll(tableID string, outcome roulette.Outcome) (roulette.SettlementSummary, error) {
	session, err := s.session(tableID)
	if err != nil {
		return roulette.SettlementSummary{}, err
	}

	var summary roulette.SettlementSummary
	var balance int64
	err = s.locks.WithLock(tableID, func() error {
		var settleErr error
		summary, settleErr = session.SettleAll(outcome)
		balance = session.Balance()
		return settleErr
	})
	if err != nil {
		return roulette.SettlementSummary{}, err
	}

	s.log.Info().
		Str("table", tableID).
		Str("pocket", outcome.Pocket.String()).
		Int64("won", summary.WonTotal).
		Int64("lost", summary.LostTotal).
		Int("bets", len(summary.Results)).
		Int64("balance", balance).
		Msg("round settled")
	return summary, nil
}

// AddFunds credits the table's account.
func (s *TableService) AddFunds(tableID string, amount int64) error {
	session, err := s.session(tableID)
	if err != nil {
		return err
	}
	return s.locks.WithLock(tableID, func() error {
		return session.AddFunds(amount)
	})
}

// WithdrawFunds debits the table's account.
func (s *TableService) WithdrawFunds(tableID string, amount int64) error {
	session, err := s.session(tableID)
	if err != nil {
		return err
	}
	return s.locks.WithLock(tableID, func() error {
		return session.WithdrawFunds(amount)
	})
}

// Balance returns the table's current balance. Reads hold the table
// lock too: the session is unsynchronized, so an unlocked read racing
// a mutation would be a data race, not just a stale value.
func (s *TableService) Balance(tableID string) (int64, error) {
	session, err := s.session(tableID)
	if err != nil {
		return 0, err
	}

	var balance int64
	_ = s.locks.WithLock(tableID, func() error {
		balance = session.Balance()
		return nil
	})
	return balance, nil
}

// Stats returns the table's account snapshot.
func (s *TableService) Stats(tableID string) (roulette.Account, error) {
	session, err := s.session(tableID)
	if err != nil {
		return roulette.Account{}, err
	}

	var stats roulette.Account
	_ = s.locks.WithLock(tableID, func() error {
		stats = session.Stats()
		return nil
	})
	return stats, nil
}

// PendingBets returns the table's pending bets in placement order.
func (s *TableService) PendingBets(tableID string) ([]roulette.Bet, error) {
	session, err := s.session(tableID)
	if err != nil {
		return nil, err
	}

	var pending []roulette.Bet
	_ = s.locks.WithLock(tableID, func() error {
		pending = session.PendingBets()
		return nil
	})
	return pending, nil
}

// History returns the table's retained outcomes, oldest to newest.
func (s *TableService) History(tableID string) ([]roulette.Outcome, error) {
	session, err := s.session(tableID)
	if err != nil {
		return nil, err
	}

	var history []roulette.Outcome
	_ = s.locks.WithLock(tableID, func() error {
		history = session.History()
		return nil
	})
	return history, nil
}
