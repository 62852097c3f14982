// Property-based tests for serialized table access: concurrent
// balance-affecting operations on one table must behave as if executed
// sequentially.
package lock

import (
	"sync"
	"testing"

	"pgregory.net/rapid"
)

// tableOperation represents one balance-affecting table operation.
type tableOperation struct {
	Amount int64
}

// TestSerializedTableOperationsProperty checks that for any set of
// concurrent operations against the same table, the final balance is
// consistent with sequential execution when every operation holds the
// table lock.
func TestSerializedTableOperationsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initialBalance := rapid.Int64Range(1000, 100000).Draw(t, "initialBalance")
		numOps := rapid.IntRange(2, 20).Draw(t, "numOps")

		operations := make([]tableOperation, numOps)
		expectedFinalBalance := initialBalance
		for i := 0; i < numOps; i++ {
			amount := rapid.Int64Range(-500, 500).Draw(t, "amount")
			operations[i] = tableOperation{Amount: amount}
			expectedFinalBalance += amount
		}

		tableID := rapid.StringMatching(`table-[0-9]{1,6}`).Draw(t, "tableID")

		tl := NewTableLock()
		balance := initialBalance

		var wg sync.WaitGroup
		wg.Add(numOps)

		for _, op := range operations {
			go func(amount int64) {
				defer wg.Done()
				tl.Lock(tableID)
				defer tl.Unlock(tableID)
				// Read-modify-write under the table lock.
				balance += amount
			}(op.Amount)
		}

		wg.Wait()

		if balance != expectedFinalBalance {
			t.Fatalf("Balance mismatch with locking: expected %d, got %d (initial=%d, numOps=%d)",
				expectedFinalBalance, balance, initialBalance, numOps)
		}
	})
}

// TestIndependentTablesProperty checks that locks on distinct tables
// do not exclude each other: a held lock on one table never blocks
// TryLock on another.
func TestIndependentTablesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tl := NewTableLock()

		tableA := rapid.StringMatching(`a-[0-9]{1,4}`).Draw(t, "tableA")
		tableB := rapid.StringMatching(`b-[0-9]{1,4}`).Draw(t, "tableB")

		tl.Lock(tableA)
		defer tl.Unlock(tableA)

		if !tl.TryLock(tableB) {
			t.Fatalf("lock on %q blocked TryLock on distinct table %q", tableA, tableB)
		}
		tl.Unlock(tableB)
	})
}

// TestTryLockExcludesSameTable checks mutual exclusion on one table.
func TestTryLockExcludesSameTable(t *testing.T) {
	tl := NewTableLock()

	tl.Lock("main")
	if tl.TryLock("main") {
		t.Fatal("TryLock succeeded while table lock was held")
	}
	if !tl.IsLocked("main") {
		t.Fatal("IsLocked reported an unheld lock")
	}
	tl.Unlock("main")

	if !tl.TryLock("main") {
		t.Fatal("TryLock failed after lock was released")
	}
	tl.Unlock("main")
}
