package exchange

import (
	"context"
	"sync"
)

// SnapshotStore keeps the most recent snapshot per base currency.
type SnapshotStore interface {
	Load(ctx context.Context, base string) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Delete(ctx context.Context, base string) error
}

// MemoryStore is an in-process SnapshotStore. Saves replace the stored
// pointer, so concurrent writers resolve to whichever finished last.
type MemoryStore struct {
	snapshots sync.Map // base -> *Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context, base string) (*Snapshot, error) {
	v, ok := m.snapshots.Load(base)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return v.(*Snapshot), nil
}

func (m *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	stored := *snap
	stored.Rates = snap.Rates.Clone()
	m.snapshots.Store(snap.Base, &stored)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, base string) error {
	m.snapshots.Delete(base)
	return nil
}
