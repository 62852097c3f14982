// Package main is the entry point for the roulette table console. It
// plays the role of the presentation layer: it parses user actions,
// calls into the engine through the table service, and decides when a
// spin's outcome is settled and displayed.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"roulette-engine/internal/config"
	"roulette-engine/internal/roulette"
	"roulette-engine/internal/service"
)

const tableID = "main"

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	tables := service.NewTableService(roulette.SessionConfig{
		StartingBalance: cfg.Table.StartingBalance,
		HistoryLimit:    cfg.Table.HistoryLimit,
	}, log.Logger)

	if err := tables.OpenTable(tableID); err != nil {
		log.Fatal().Err(err).Msg("Failed to open table")
	}

	fmt.Println("Roulette table ready. Type 'help' for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()
		case "balance":
			balance, _ := tables.Balance(tableID)
			fmt.Printf("balance: %d\n", balance)
		case "stats":
			stats, _ := tables.Stats(tableID)
			fmt.Printf("balance: %d  wagered: %d  won: %d  lost: %d\n",
				stats.Balance, stats.TotalWagered, stats.TotalWon, stats.TotalLost)
		case "bet":
			runBet(tables, fields[1:])
		case "bets":
			printPendingBets(tables)
		case "undo":
			undone, _ := tables.UndoLastBet(tableID)
			if !undone {
				fmt.Println("no pending bet to undo")
			}
		case "clear":
			refunded, _ := tables.ClearPendingBets(tableID)
			fmt.Printf("refunded %d\n", refunded)
		case "rig":
			runRig(tables, fields[1:])
		case "spin":
			runSpin(tables)
		case "history":
			printHistory(tables)
		case "deposit":
			runFunds(tables, fields[1:], tables.AddFunds)
		case "withdraw":
			runFunds(tables, fields[1:], tables.WithdrawFunds)
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q (try 'help')\n", fields[0])
		}
	}
}

func printHelp() {
	fmt.Print(`commands:
  balance                      show current balance
  stats                        show balance and lifetime totals
  bet <type> <amount>          place a bet, e.g.:
                                 bet 17 10        straight-up on 17
                                 bet 00 5         straight-up on 00
                                 bet red 50       red / black / even / odd / low / high
                                 bet dozen2 25    dozen1 / dozen2 / dozen3
                                 bet col1 25      col1 / col2 / col3
                                 bet five 10      the 0-00-1-2-3 basket
                                 bet split 4,5 20
                                 bet street 1,2,3 15
                                 bet corner 1,2,4,5 10
                                 bet line 1,2,3,4,5,6 10
  bets                         list pending bets
  undo                         cancel the last pending bet
  clear                        cancel all pending bets
  rig <pocket> [color]         force the next spin (e.g. rig 17, rig red)
  rig off                      disarm the rig
  spin                         spin the wheel and settle pending bets
  history                      recent outcomes, newest first
  deposit <amount>             add funds
  withdraw <amount>            withdraw funds
  quit                         leave the table
`)
}

func runBet(tables *service.TableService, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: bet <type> <amount>")
		return
	}

	amountArg := args[len(args)-1]
	var amount int64
	if _, err := fmt.Sscanf(amountArg, "%d", &amount); err != nil {
		fmt.Printf("bad amount %q\n", amountArg)
		return
	}

	bt, err := parseBetType(args[:len(args)-1])
	if err != nil {
		fmt.Println(err)
		return
	}

	bet, err := tables.PlaceBet(tableID, bt, amount)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("placed %s for %d (pays %dx)\n", bet.Type, bet.Amount, roulette.PayoutMultiplier(bet.Type))
}

// parseBetType maps console bet words onto catalog constructors. The
// string forms live here; the engine only ever sees BetType values.
func parseBetType(args []string) (roulette.BetType, error) {
	switch args[0] {
	case "red":
		return roulette.Red(), nil
	case "black":
		return roulette.Black(), nil
	case "even":
		return roulette.Even(), nil
	case "odd":
		return roulette.Odd(), nil
	case "low":
		return roulette.Low(), nil
	case "high":
		return roulette.High(), nil
	case "five":
		return roulette.FiveNumber(), nil
	case "dozen1", "dozen2", "dozen3":
		return roulette.Dozen(int(args[0][5] - '0'))
	case "col1", "col2", "col3":
		return roulette.Column(int(args[0][3] - '0'))
	case "split", "street", "corner", "line":
		if len(args) < 2 {
			return roulette.BetType{}, fmt.Errorf("usage: bet %s <n,n,...> <amount>", args[0])
		}
		pockets, err := parsePockets(args[1])
		if err != nil {
			return roulette.BetType{}, err
		}
		switch args[0] {
		case "split":
			return roulette.Split(pockets...)
		case "street":
			return roulette.Street(pockets...)
		case "corner":
			return roulette.Corner(pockets...)
		default:
			return roulette.Line(pockets...)
		}
	default:
		pocket, err := roulette.ParsePocket(args[0])
		if err != nil {
			return roulette.BetType{}, fmt.Errorf("unknown bet type %q", args[0])
		}
		return roulette.Straight(pocket)
	}
}

func parsePockets(arg string) ([]roulette.Pocket, error) {
	parts := strings.Split(arg, ",")
	pockets := make([]roulette.Pocket, 0, len(parts))
	for _, part := range parts {
		pocket, err := roulette.ParsePocket(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad pocket %q", part)
		}
		pockets = append(pockets, pocket)
	}
	return pockets, nil
}

func runRig(tables *service.TableService, args []string) {
	if len(args) == 0 {
		active, _ := tables.IsRigActive(tableID)
		fmt.Printf("rig active: %v\n", active)
		return
	}

	if args[0] == "off" {
		_ = tables.ClearRig(tableID)
		fmt.Println("rig disarmed")
		return
	}

	var number *roulette.Pocket
	var color *roulette.Color
	for _, arg := range args {
		switch arg {
		case "red", "black", "green":
			c := roulette.Color(arg)
			color = &c
		default:
			pocket, err := roulette.ParsePocket(arg)
			if err != nil {
				fmt.Printf("bad rig target %q\n", arg)
				return
			}
			number = &pocket
		}
	}

	if err := tables.SetRig(tableID, number, color); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("rig armed for next spin")
}

// runSpin drives one full round: the spin fixes the outcome, and only
// then are the pending bets settled and the result displayed, so what
// the player sees is always what was paid.
func runSpin(tables *service.TableService) {
	pending, _ := tables.PendingBets(tableID)
	if len(pending) == 0 {
		fmt.Println("no bets on the table")
		return
	}

	outcome, err := tables.Spin(tableID)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("the ball lands on %s (%s)\n", outcome.Pocket, outcome.Color)

	summary, err := tables.SettleAll(tableID, outcome)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, result := range summary.Results {
		if result.Won {
			fmt.Printf("  %-24s won  %d\n", result.Type, result.Payout)
		} else {
			fmt.Printf("  %-24s lost %d\n", result.Type, result.Amount)
		}
	}
	balance, _ := tables.Balance(tableID)
	fmt.Printf("returned %d, lost %d, balance %d\n", summary.WonTotal, summary.LostTotal, balance)
}

func printPendingBets(tables *service.TableService) {
	pending, _ := tables.PendingBets(tableID)
	if len(pending) == 0 {
		fmt.Println("no pending bets")
		return
	}
	for _, bet := range pending {
		fmt.Printf("  %-24s %d\n", bet.Type, bet.Amount)
	}
}

func printHistory(tables *service.TableService) {
	history, _ := tables.History(tableID)
	if len(history) == 0 {
		fmt.Println("no spins yet")
		return
	}
	// Most recent first for display.
	for i := len(history) - 1; i >= 0; i-- {
		fmt.Printf("  %s (%s)\n", history[i].Pocket, history[i].Color)
	}
}

func runFunds(tables *service.TableService, args []string, op func(string, int64) error) {
	if len(args) != 1 {
		fmt.Println("usage: deposit|withdraw <amount>")
		return
	}
	var amount int64
	if _, err := fmt.Sscanf(args[0], "%d", &amount); err != nil {
		fmt.Printf("bad amount %q\n", args[0])
		return
	}
	if err := op(tableID, amount); err != nil {
		fmt.Println(err)
		return
	}
	balance, _ := tables.Balance(tableID)
	fmt.Printf("balance: %d\n", balance)
}
