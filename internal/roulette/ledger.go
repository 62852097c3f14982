package roulette

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BetOutcome is the lifecycle state of a placed bet.
type BetOutcome string

const (
	BetPending   BetOutcome = "pending"
	BetWon       BetOutcome = "won"
	BetLost      BetOutcome = "lost"
	BetCancelled BetOutcome = "cancelled"
)

// Bet is one placed wager. Amount and Type are immutable after
// placement; Outcome and Payout change exactly once, at settlement or
// cancellation.
type Bet struct {
	ID        uuid.UUID
	Type      BetType
	Amount    int64
	Outcome   BetOutcome
	Payout    int64
	CreatedAt time.Time
}

// Account holds the running balance and lifetime wager statistics.
// All fields stay non-negative; operations that would drive the
// balance below zero are rejected instead.
type Account struct {
	Balance      int64
	TotalWagered int64
	TotalWon     int64
	TotalLost    int64
}

// Ledger tracks one account's balance and the full bet collection, in
// placement order. It is the source of truth: every affordability and
// lifecycle rule is enforced here regardless of what the caller
// already checked. Not safe for concurrent use; callers serialize
// access per table.
type Ledger struct {
	account Account
	bets    []*Bet
}

// NewLedger creates a ledger with the given starting balance.
func NewLedger(startingBalance int64) *Ledger {
	if startingBalance < 0 {
		startingBalance = 0
	}
	return &Ledger{account: Account{Balance: startingBalance}}
}

// PlaceBet debits the stake, records the wager, and appends a new
// pending bet. The returned value is a snapshot; the ledger keeps the
// authoritative record.
func (l *Ledger) PlaceBet(bt BetType, amount int64) (Bet, error) {
	if amount <= 0 {
		return Bet{}, fmt.Errorf("%w: bet of %d", ErrInvalidAmount, amount)
	}
	if amount > l.account.Balance {
		return Bet{}, fmt.Errorf("%w: bet of %d exceeds balance %d", ErrInsufficientFunds, amount, l.account.Balance)
	}

	bet := &Bet{
		ID:        uuid.New(),
		Type:      bt,
		Amount:    amount,
		Outcome:   BetPending,
		CreatedAt: time.Now(),
	}
	l.account.Balance -= amount
	l.account.TotalWagered += amount
	l.bets = append(l.bets, bet)
	return *bet, nil
}

// UndoBet cancels a pending bet: the stake goes back to the balance
// and the wagered total, and the bet is marked cancelled. Reports
// whether an eligible bet was found.
func (l *Ledger) UndoBet(id uuid.UUID) bool {
	for _, bet := range l.bets {
		if bet.ID == id && bet.Outcome == BetPending {
			l.refund(bet)
			return true
		}
	}
	return false
}

// UndoLastBet cancels the most recently placed pending bet.
func (l *Ledger) UndoLastBet() bool {
	for i := len(l.bets) - 1; i >= 0; i-- {
		if l.bets[i].Outcome == BetPending {
			l.refund(l.bets[i])
			return true
		}
	}
	return false
}

// ClearPendingBets cancels every pending bet and returns the total
// refunded. Used for a "clear table" action before spinning.
func (l *Ledger) ClearPendingBets() int64 {
	var refunded int64
	for _, bet := range l.bets {
		if bet.Outcome == BetPending {
			refunded += bet.Amount
			l.refund(bet)
		}
	}
	return refunded
}

func (l *Ledger) refund(bet *Bet) {
	l.account.Balance += bet.Amount
	l.account.TotalWagered -= bet.Amount
	bet.Outcome = BetCancelled
}

// Settle transitions exactly one pending bet to Won or Lost. A win
// credits the payout; a loss forfeits the stake (payout forced to 0).
func (l *Ledger) Settle(id uuid.UUID, outcome BetOutcome, payout int64) error {
	if outcome != BetWon && outcome != BetLost {
		return fmt.Errorf("settle: outcome must be won or lost, got %q", outcome)
	}

	var target *Bet
	for _, bet := range l.bets {
		if bet.ID == id {
			target = bet
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: %s", ErrBetNotFound, id)
	}
	if target.Outcome != BetPending {
		return fmt.Errorf("%w: %s is %s", ErrBetAlreadySettled, id, target.Outcome)
	}

	if outcome == BetWon {
		target.Outcome = BetWon
		target.Payout = payout
		l.account.Balance += payout
		l.account.TotalWon += payout
	} else {
		target.Outcome = BetLost
		target.Payout = 0
		l.account.TotalLost += target.Amount
	}
	return nil
}

// AddFunds credits the balance directly.
func (l *Ledger) AddFunds(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit of %d", ErrInvalidAmount, amount)
	}
	l.account.Balance += amount
	return nil
}

// WithdrawFunds debits the balance directly. A withdrawal beyond the
// balance is rejected rather than silently ignored.
func (l *Ledger) WithdrawFunds(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdrawal of %d", ErrInvalidAmount, amount)
	}
	if amount > l.account.Balance {
		return fmt.Errorf("%w: withdrawal of %d exceeds balance %d", ErrInsufficientFunds, amount, l.account.Balance)
	}
	l.account.Balance -= amount
	return nil
}

// Balance returns the current balance.
func (l *Ledger) Balance() int64 {
	return l.account.Balance
}

// Stats returns a snapshot of the account.
func (l *Ledger) Stats() Account {
	return l.account
}

// PendingBets returns snapshots of all pending bets in placement
// order.
func (l *Ledger) PendingBets() []Bet {
	var pending []Bet
	for _, bet := range l.bets {
		if bet.Outcome == BetPending {
			pending = append(pending, *bet)
		}
	}
	return pending
}

// PendingTotal returns the sum of all pending bet stakes.
func (l *Ledger) PendingTotal() int64 {
	var total int64
	for _, bet := range l.bets {
		if bet.Outcome == BetPending {
			total += bet.Amount
		}
	}
	return total
}

// Bets returns snapshots of every bet ever placed, in placement order.
func (l *Ledger) Bets() []Bet {
	out := make([]Bet, len(l.bets))
	for i, bet := range l.bets {
		out[i] = *bet
	}
	return out
}
