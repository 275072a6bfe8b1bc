/*
snapshot.go - Persistence contract for durable state snapshots

PURPOSE:
  Defines the interface between the state container and whatever stores it
  durably. The contract is deliberately dumb: four independently keyed JSON
  blobs, written whole after every successful mutation.

KEYS:
  medications  Medication[]
  entries      Entry[]
  exits        Exit[]
  settings     classify.Settings

LOAD POLICY:
  Each key is parsed independently at startup. A read failure, a parse
  failure, or a collection value that is not a non-empty array falls back
  to the built-in sample/default data. Startup never crashes on a corrupt
  snapshot.

SAVE POLICY:
  Full-value writes, never incremental. A write failure is logged and
  reported through the write-failure hook, but the in-memory mutation that
  triggered it is never rolled back - memory stays authoritative.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Durable key-value table
  - ledger/store/memory.go: In-memory, for tests

SEE ALSO:
  - ledger.go: Load() and the persist step of every mutation
*/
package ledger

import "context"

// Snapshot keys. Each names one independently stored JSON value.
const (
	KeyMedications = "medications"
	KeyEntries     = "entries"
	KeyExits       = "exits"
	KeySettings    = "settings"
)

// SnapshotStore is the durable key-value collaborator. A missing key loads
// as (nil, nil); read problems wrap ErrSnapshotRead and write problems wrap
// ErrSnapshotWrite.
type SnapshotStore interface {
	// Load returns the stored value for key, or nil if the key is absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save writes the full value for key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error
}
