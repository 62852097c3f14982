package roulette

import (
	"fmt"

	"github.com/google/uuid"
)

// BetResult is the resolution of one bet against a spin outcome.
type BetResult struct {
	BetID  uuid.UUID
	Type   BetType
	Amount int64
	Won    bool
	Payout int64
}

// SettlementSummary aggregates one spin's settlement: the total
// returned across winning bets, the total staked on losing bets, and
// the per-bet breakdown. These two totals are what a presentation
// layer shows as the round's result.
type SettlementSummary struct {
	Outcome   Outcome
	WonTotal  int64
	LostTotal int64
	Results   []BetResult
}

// Resolve computes a single bet's resolution against a landed pocket:
// whether it won and the total payout (stake included) if it did.
// Pure function over already-validated data.
func Resolve(bt BetType, amount int64, landed Pocket) (bool, int64) {
	if !WinsFor(bt, landed) {
		return false, 0
	}
	return true, amount * PayoutMultiplier(bt)
}

// SettleAll resolves every pending bet in the ledger against the
// outcome and applies each result. Bets are independent of each other,
// so iteration order never changes the totals. A settlement error here
// means a caller bug (re-settling an already-resolved round), not a
// recoverable condition.
func SettleAll(outcome Outcome, ledger *Ledger) (SettlementSummary, error) {
	summary := SettlementSummary{Outcome: outcome}

	for _, bet := range ledger.PendingBets() {
		won, payout := Resolve(bet.Type, bet.Amount, outcome.Pocket)

		result := BetLost
		if won {
			result = BetWon
			summary.WonTotal += payout
		} else {
			summary.LostTotal += bet.Amount
		}

		if err := ledger.Settle(bet.ID, result, payout); err != nil {
			return SettlementSummary{}, fmt.Errorf("settle bet %s: %w", bet.ID, err)
		}

		summary.Results = append(summary.Results, BetResult{
			BetID:  bet.ID,
			Type:   bet.Type,
			Amount: bet.Amount,
			Won:    won,
			Payout: payout,
		})
	}

	return summary, nil
}
