package roulette

import (
	"github.com/google/uuid"
)

const (
	// DefaultStartingBalance matches the balance a fresh player starts
	// with.
	DefaultStartingBalance int64 = 1000

	// DefaultHistoryLimit bounds the retained outcome history.
	DefaultHistoryLimit = 50
)

// SessionConfig holds configuration for one table session.
type SessionConfig struct {
	StartingBalance int64
	HistoryLimit    int
}

// Session owns the mutable state of one roulette table: the ledger,
// the rig, and the recent outcome history. There is no ambient global;
// every caller works through a session handle. A session expects a
// single control thread — callers that share one across goroutines
// hold an advisory lock around each operation.
//
// Spinning and settling are two distinct phases: Spin returns the
// outcome immediately and imposes no timing, and the caller invokes
// SettleAll once it is ready to apply (and display) the result. That
// keeps the displayed result and the settled result the same outcome
// by construction.
type Session struct {
	ledger       *Ledger
	wheel        *Wheel
	rig          RigController
	history      []Outcome
	historyLimit int
}

// NewSession creates a session with the given configuration.
func NewSession(cfg *SessionConfig) *Session {
	balance := DefaultStartingBalance
	limit := DefaultHistoryLimit

	if cfg != nil {
		if cfg.StartingBalance > 0 {
			balance = cfg.StartingBalance
		}
		if cfg.HistoryLimit > 0 {
			limit = cfg.HistoryLimit
		}
	}

	return &Session{
		ledger:       NewLedger(balance),
		wheel:        NewWheel(),
		historyLimit: limit,
	}
}

// PlaceBet validates and records a wager against the current balance.
func (s *Session) PlaceBet(bt BetType, amount int64) (Bet, error) {
	return s.ledger.PlaceBet(bt, amount)
}

// UndoBet cancels a specific pending bet and refunds its stake.
func (s *Session) UndoBet(id uuid.UUID) bool {
	return s.ledger.UndoBet(id)
}

// UndoLastBet cancels the most recently placed pending bet.
func (s *Session) UndoLastBet() bool {
	return s.ledger.UndoLastBet()
}

// ClearPendingBets refunds and cancels every pending bet, returning
// the total refunded.
func (s *Session) ClearPendingBets() int64 {
	return s.ledger.ClearPendingBets()
}

// SetRig arms the forced-outcome override for the next spin.
func (s *Session) SetRig(number *Pocket, color *Color) error {
	return s.rig.Set(number, color)
}

// ClearRig disarms the rig without spinning.
func (s *Session) ClearRig() {
	s.rig.Clear()
}

// IsRigActive reports whether a rig is armed.
func (s *Session) IsRigActive() bool {
	return s.rig.IsActive()
}

// Spin produces the next outcome and appends it to the history. An
// armed rig is consumed by the spin: the outcome is fixed here, so the
// rig is cleared here, never earlier. Settlement is the caller's next,
// separate step.
func (s *Session) Spin() Outcome {
	outcome := s.wheel.Spin(s.rig.State())
	s.rig.Clear()

	s.history = append(s.history, outcome)
	if len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
	return outcome
}

// SettleAll resolves every pending bet against the outcome and applies
// the results to the ledger.
func (s *Session) SettleAll(outcome Outcome) (SettlementSummary, error) {
	return SettleAll(outcome, s.ledger)
}

// AddFunds credits the account balance.
func (s *Session) AddFunds(amount int64) error {
	return s.ledger.AddFunds(amount)
}

// WithdrawFunds debits the account balance.
func (s *Session) WithdrawFunds(amount int64) error {
	return s.ledger.WithdrawFunds(amount)
}

// Balance returns the current balance.
func (s *Session) Balance() int64 {
	return s.ledger.Balance()
}

// Stats returns the account snapshot (balance plus lifetime wagered,
// won, and lost totals).
func (s *Session) Stats() Account {
	return s.ledger.Stats()
}

// PendingBets returns the pending bets in placement order.
func (s *Session) PendingBets() []Bet {
	return s.ledger.PendingBets()
}

// Bets returns every bet ever placed at this table.
func (s *Session) Bets() []Bet {
	return s.ledger.Bets()
}

// History returns the retained outcomes oldest to newest; callers
// wanting most-recent-first reverse it.
func (s *Session) History() []Outcome {
	out := make([]Outcome, len(s.history))
	copy(out, s.history)
	return out
}
