package ports

import (
	"context"
	"testing"
	"time"

	"github.com/hashpad/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTraceStoreContract runs a suite of tests to verify that a TraceStore implementation
// adheres to the defined interface contract.
func RunTraceStoreContract(t *testing.T, store TraceStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	snap := func(step int, tape ...string) domain.Snapshot {
		return domain.Snapshot{
			State:   "q1",
			StateID: 7,
			Symbol:  tape[0],
			Tape:    tape,
			Running: true,
			Steps:   step,
		}
	}

	t.Run("Append and Load", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, runID, snap(0, "1", "0")))
		last := snap(1, "#", "1", "0")
		last.Running = false
		last.Accepted = true
		require.NoError(t, store.Append(ctx, runID, last))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded, 2)
		assert.Equal(t, snap(0, "1", "0"), loaded[0])
		assert.Equal(t, last, loaded[1], "order and every field must survive")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, runID, snap(0, "1")))

		err := store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound, "Load after Delete should return ErrTraceNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Append(ctx, id1, snap(0, "0")))
		require.NoError(t, store.Append(ctx, id2, snap(0, "1")))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
