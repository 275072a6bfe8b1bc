/*
ledger.go - The inventory state container and its operation set

PURPOSE:
  One explicit container owns the medications/entries/exits collections and
  the current settings. Every mutation in the system goes through the
  methods here - validation first, then the collection change, then the
  stock adjustment, then the snapshot write. Invariants are enforced in
  exactly one place.

OPERATION CONTRACT:
  - Validation/coercion failures abort before any mutation (no partial
    writes; the in-memory model is always a previously valid state).
  - Stock adjustments happen ONLY when an entry or exit is created. Edits
    and deletes of movements never recompute stock. This asymmetry is the
    observed product behavior, kept deliberately; see the explicit tests.
  - Exits clamp stock at 0; no sequence of operations can drive a
    medication's stock negative.
  - Medication lookup for movement application is an exact name match. On
    a miss the adjustment is silently skipped; the movement record is
    still created (soft reference).

CONCURRENCY:
  Mutations are serialized by a single mutex and run to completion,
  including the snapshot write, before the next one starts. Single-writer
  by design; this engine is not meant for multi-process access.

PERSISTENCE:
  Snapshot writes are full-value and non-fatal. A failed write is logged
  and handed to the write-failure hook, never rolled back.

SEE ALSO:
  - inputs.go: Coercion at the boundary
  - snapshot.go: Store contract and load/save policy
  - queries.go: Read-only views
*/
package ledger

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/warp/pharmacy-engine/classify"
)

// Ledger is the single state container. All mutation goes through it.
type Ledger struct {
	// mu serializes mutations and their snapshot writes.
	mu          sync.RWMutex
	medications []Medication
	entries     []Entry
	exits       []Exit
	settings    classify.Settings

	snapshots      SnapshotStore
	now            func() time.Time
	onWriteFailure func(key string, err error)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source. Tests use this to pin the exit
// creation stamp.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithWriteFailureHandler overrides what happens when a snapshot write
// fails. The default logs; the handler must not assume it can abort the
// mutation - by the time it runs, memory has already changed.
func WithWriteFailureHandler(fn func(key string, err error)) Option {
	return func(l *Ledger) { l.onWriteFailure = fn }
}

// New creates a Ledger bound to a snapshot store, seeded with the built-in
// sample data. Call Load to replace the seed with stored state.
func New(store SnapshotStore, opts ...Option) *Ledger {
	l := &Ledger{
		medications: SampleMedications(),
		entries:     SampleEntries(),
		exits:       SampleExits(),
		settings:    classify.DefaultSettings(),
		snapshots:   store,
		now:         time.Now,
		onWriteFailure: func(key string, err error) {
			log.Printf("snapshot write failed for %q: %v", key, err)
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// =============================================================================
// STARTUP LOAD
// =============================================================================

// Load replaces the in-memory state with the stored snapshots. Each key is
// parsed independently; a read failure, a parse failure, or a collection
// that is not a non-empty array keeps the sample/default data for that key.
// Load never fails - a corrupt snapshot must not take down startup.
func (l *Ledger) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.medications = loadSlice(ctx, l.snapshots, KeyMedications, SampleMedications)
	l.entries = loadSlice(ctx, l.snapshots, KeyEntries, SampleEntries)
	l.exits = loadSlice(ctx, l.snapshots, KeyExits, SampleExits)

	raw, err := l.snapshots.Load(ctx, KeySettings)
	if err != nil {
		log.Printf("snapshot read failed for %q, using defaults: %v", KeySettings, err)
		return
	}
	if raw == nil {
		return
	}
	var s classify.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Printf("snapshot parse failed for %q, using defaults: %v", KeySettings, err)
		return
	}
	l.settings = s
}

func loadSlice[T any](ctx context.Context, store SnapshotStore, key string, fallback func() []T) []T {
	raw, err := store.Load(ctx, key)
	if err != nil {
		log.Printf("snapshot read failed for %q, using sample data: %v", key, err)
		return fallback()
	}
	if raw == nil {
		return fallback()
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("snapshot parse failed for %q, using sample data: %v", key, err)
		return fallback()
	}
	if len(out) == 0 {
		return fallback()
	}
	return out
}

// =============================================================================
// MEDICATION OPERATIONS
// =============================================================================

// AddMedication validates the input, assigns the next id, and appends the
// record.
func (l *Ledger) AddMedication(ctx context.Context, in MedicationInput) (Medication, error) {
	rec, err := in.coerce()
	if err != nil {
		return Medication{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec.ID = nextMedicationID(l.medications)
	l.medications = append(l.medications, rec)
	l.persist(ctx, KeyMedications)
	return rec, nil
}

// UpdateMedication replaces every field of the identified record, keeping
// its id. The supplied stock overwrites the running total directly: this is
// the manual-correction path, independent of the entry/exit history.
func (l *Ledger) UpdateMedication(ctx context.Context, id int, in MedicationInput) (Medication, error) {
	rec, err := in.coerce()
	if err != nil {
		return Medication{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.medications {
		if l.medications[i].ID == id {
			rec.ID = id
			l.medications[i] = rec
			l.persist(ctx, KeyMedications)
			return rec, nil
		}
	}
	return Medication{}, &NotFoundError{Collection: "medication", ID: id}
}

// DeleteMedication removes the record. Entries and exits referencing it by
// name are left in place (no cascade); their soft references go stale.
func (l *Ledger) DeleteMedication(ctx context.Context, id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.medications {
		if l.medications[i].ID == id {
			l.medications = append(l.medications[:i], l.medications[i+1:]...)
			l.persist(ctx, KeyMedications)
			return nil
		}
	}
	return &NotFoundError{Collection: "medication", ID: id}
}

// =============================================================================
// ENTRY OPERATIONS
// =============================================================================

// ApplyEntry creates the receipt record and, if a medication matches the
// referenced name exactly, increases its stock by the entry quantity. On a
// name miss the adjustment is skipped and the record is still created.
func (l *Ledger) ApplyEntry(ctx context.Context, in EntryInput) (Entry, error) {
	rec, err := in.coerce()
	if err != nil {
		return Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec.ID = nextEntryID(l.entries)
	l.entries = append(l.entries, rec)

	adjusted := false
	for i := range l.medications {
		if l.medications[i].Name == rec.Medication {
			l.medications[i].Stock += rec.Quantity
			adjusted = true
			break
		}
	}

	l.persist(ctx, KeyEntries)
	if adjusted {
		l.persist(ctx, KeyMedications)
	}
	return rec, nil
}

// EditEntry replaces every field of the identified entry, keeping its id.
// No medication stock is recomputed: stock moved when the entry was
// created, and editing the record does not move it again.
func (l *Ledger) EditEntry(ctx context.Context, id int, in EntryInput) (Entry, error) {
	rec, err := in.coerce()
	if err != nil {
		return Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			rec.ID = id
			l.entries[i] = rec
			l.persist(ctx, KeyEntries)
			return rec, nil
		}
	}
	return Entry{}, &NotFoundError{Collection: "entry", ID: id}
}

// DeleteEntry removes the record only. The stock increase it caused at
// creation stands.
func (l *Ledger) DeleteEntry(ctx context.Context, id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.persist(ctx, KeyEntries)
			return nil
		}
	}
	return &NotFoundError{Collection: "entry", ID: id}
}

// =============================================================================
// EXIT OPERATIONS
// =============================================================================

// ApplyExit creates the disbursement record, stamps its date with the
// current day, and decreases the referenced medication's stock by the exit
// quantity with a floor of 0. A name miss skips the adjustment.
func (l *Ledger) ApplyExit(ctx context.Context, in ExitInput) (Exit, error) {
	rec, err := in.coerce()
	if err != nil {
		return Exit{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec.ID = nextExitID(l.exits)
	rec.Date = l.now().Format(classify.DateLayout)
	l.exits = append(l.exits, rec)

	adjusted := false
	for i := range l.medications {
		if l.medications[i].Name == rec.Medication {
			stock := l.medications[i].Stock - rec.Quantity
			if stock < 0 {
				stock = 0
			}
			l.medications[i].Stock = stock
			adjusted = true
			break
		}
	}

	l.persist(ctx, KeyExits)
	if adjusted {
		l.persist(ctx, KeyMedications)
	}
	return rec, nil
}

// EditExit replaces the editable fields of the identified exit, keeping its
// id and its creation date. No stock recomputation.
func (l *Ledger) EditExit(ctx context.Context, id int, in ExitInput) (Exit, error) {
	rec, err := in.coerce()
	if err != nil {
		return Exit{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.exits {
		if l.exits[i].ID == id {
			rec.ID = id
			rec.Date = l.exits[i].Date
			l.exits[i] = rec
			l.persist(ctx, KeyExits)
			return rec, nil
		}
	}
	return Exit{}, &NotFoundError{Collection: "exit", ID: id}
}

// DeleteExit removes the record only. The stock decrease it caused at
// creation stands.
func (l *Ledger) DeleteExit(ctx context.Context, id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.exits {
		if l.exits[i].ID == id {
			l.exits = append(l.exits[:i], l.exits[i+1:]...)
			l.persist(ctx, KeyExits)
			return nil
		}
	}
	return &NotFoundError{Collection: "exit", ID: id}
}

// =============================================================================
// SETTINGS
// =============================================================================

// Settings returns the current threshold configuration.
func (l *Ledger) Settings() classify.Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settings
}

// UpdateSettings replaces the threshold configuration and persists it.
func (l *Ledger) UpdateSettings(ctx context.Context, s classify.Settings) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings = s
	l.persist(ctx, KeySettings)
}

// =============================================================================
// SNAPSHOT WRITES
// =============================================================================

// persist serializes one key's current value in full and writes it. Write
// failures are reported and otherwise ignored: memory is authoritative.
func (l *Ledger) persist(ctx context.Context, key string) {
	var value any
	switch key {
	case KeyMedications:
		value = l.medications
	case KeyEntries:
		value = l.entries
	case KeyExits:
		value = l.exits
	case KeySettings:
		value = l.settings
	}

	raw, err := json.Marshal(value)
	if err != nil {
		l.onWriteFailure(key, err)
		return
	}
	if err := l.snapshots.Save(ctx, key, raw); err != nil {
		l.onWriteFailure(key, err)
	}
}

// =============================================================================
// ID ASSIGNMENT - max(existing) + 1, independently per collection
// =============================================================================

func nextMedicationID(meds []Medication) int {
	max := 0
	for _, m := range meds {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}

func nextEntryID(entries []Entry) int {
	max := 0
	for _, e := range entries {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

func nextExitID(exits []Exit) int {
	max := 0
	for _, e := range exits {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}
