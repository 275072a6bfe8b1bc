package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/pharmacy-engine/classify"
	"github.com/warp/pharmacy-engine/ledger"
	"github.com/warp/pharmacy-engine/ledger/store"
)

// failingStore accepts reads but rejects every write.
type failingStore struct {
	*store.Memory
	writeErr error
}

func (f *failingStore) Save(ctx context.Context, key string, value []byte) error {
	return f.writeErr
}

// corruptStore returns unparseable bytes for every key.
type corruptStore struct{}

func (corruptStore) Load(_ context.Context, _ string) ([]byte, error) {
	return []byte("{{{not json"), nil
}
func (corruptStore) Save(_ context.Context, _ string, _ []byte) error { return nil }

// =============================================================================
// ROUND-TRIP
// =============================================================================

func TestLoad_RoundTripsFullState(t *testing.T) {
	// GIVEN: A ledger mutated across all four snapshot keys
	// WHEN: A second ledger loads from the same store
	// THEN: Its state is structurally equal to the first one's
	mem := store.NewMemory()
	ctx := context.Background()

	first := ledger.New(mem)
	_, err := first.AddMedication(ctx, medInput("Dipirona 500mg", "60"))
	require.NoError(t, err)
	_, err = first.ApplyEntry(ctx, entryInput("Dipirona 500mg", "15"))
	require.NoError(t, err)
	_, err = first.ApplyExit(ctx, exitInput("Dipirona 500mg", "5"))
	require.NoError(t, err)
	s := first.Settings()
	s.StockLow = 40
	first.UpdateSettings(ctx, s)

	second := ledger.New(mem)
	second.Load(ctx)

	assert.Equal(t, first.Medications(), second.Medications())
	assert.Equal(t, first.Entries(), second.Entries())
	assert.Equal(t, first.Exits(), second.Exits())
	assert.Equal(t, first.Settings(), second.Settings())
}

// =============================================================================
// TOLERANT LOAD
// =============================================================================

func TestLoad_MissingKeysFallBackToSamples(t *testing.T) {
	l := ledger.New(store.NewMemory())
	l.Load(context.Background())

	assert.Equal(t, ledger.SampleMedications(), l.Medications())
	assert.Equal(t, ledger.SampleEntries(), l.Entries())
	assert.Equal(t, ledger.SampleExits(), l.Exits())
	assert.Equal(t, classify.DefaultSettings(), l.Settings())
}

func TestLoad_CorruptSnapshotsFallBackWithoutCrashing(t *testing.T) {
	l := ledger.New(corruptStore{})
	l.Load(context.Background())

	assert.Equal(t, ledger.SampleMedications(), l.Medications())
	assert.Equal(t, classify.DefaultSettings(), l.Settings())
}

func TestLoad_EmptyArrayFallsBackToSamples(t *testing.T) {
	// An empty collection is treated the same as a missing one: the value
	// must be a non-empty array to replace the samples.
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, ledger.KeyMedications, []byte(`[]`)))

	l := ledger.New(mem)
	l.Load(ctx)

	assert.Equal(t, ledger.SampleMedications(), l.Medications())
}

func TestLoad_KeysFailIndependently(t *testing.T) {
	// One corrupt key must not drag the healthy ones down with it.
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, ledger.KeyMedications, []byte(`broken`)))
	require.NoError(t, mem.Save(ctx, ledger.KeyEntries, []byte(`[{"id":9,"medication":"X","lot":"L","date":"2024-01-01","supplier":"S","quantity":4}]`)))

	l := ledger.New(mem)
	l.Load(ctx)

	assert.Equal(t, ledger.SampleMedications(), l.Medications(), "corrupt key falls back")
	require.Len(t, l.Entries(), 1)
	assert.Equal(t, 9, l.Entries()[0].ID, "healthy key loads")
}

// =============================================================================
// NON-FATAL WRITES
// =============================================================================

func TestWriteFailure_DoesNotRollBackMutation(t *testing.T) {
	// GIVEN: A store whose writes always fail
	// WHEN: A mutation runs
	// THEN: It succeeds, memory keeps the new state, and the failure is
	//       reported through the hook rather than swallowed
	var reported []string
	fs := &failingStore{Memory: store.NewMemory(), writeErr: errors.New("disk full")}
	l := ledger.New(fs, ledger.WithWriteFailureHandler(func(key string, err error) {
		reported = append(reported, key)
	}))
	ctx := context.Background()

	med, err := l.AddMedication(ctx, medInput("Dipirona 500mg", "60"))
	require.NoError(t, err, "persistence failure must not fail the mutation")
	assert.Equal(t, 6, med.ID)

	_, ok := l.Medication(med.ID)
	assert.True(t, ok, "in-memory state remains authoritative")
	assert.Equal(t, []string{ledger.KeyMedications}, reported)
}
