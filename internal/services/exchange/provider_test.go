package exchange

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Latest(ctx context.Context, base string) (Rates, error) {
	args := m.Called(ctx, base)
	if r := args.Get(0); r != nil {
		return r.(Rates), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, base string) (*Snapshot, error) {
	args := m.Called(ctx, base)
	if s := args.Get(0); s != nil {
		return s.(*Snapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, snap *Snapshot) error {
	return m.Called(ctx, snap).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, base string) error {
	return m.Called(ctx, base).Error(0)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(src Source, store SnapshotStore, now time.Time) *Provider {
	p := NewProvider(src, store, Config{}, quietLogger(), nil)
	p.now = func() time.Time { return now }
	return p
}

func TestProvider_Rates(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	live := Rates{"EUR": dec("1"), "USD": dec("1.1")}
	ctx := context.Background()

	tests := []struct {
		name       string
		setup      func(*MockSource, *MockStore)
		wantSource string
		wantUSD    string
	}{
		{
			name: "fresh snapshot is served from cache",
			setup: func(src *MockSource, store *MockStore) {
				store.On("Load", ctx, "EUR").Return(&Snapshot{Base: "EUR", Rates: Rates{"EUR": dec("1"), "USD": dec("1.2")}, FetchedAt: now.Add(-14 * time.Minute)}, nil)
			},
			wantSource: SourceCache,
			wantUSD:    "1.2",
		},
		{
			name: "stale snapshot is refreshed",
			setup: func(src *MockSource, store *MockStore) {
				store.On("Load", ctx, "EUR").Return(&Snapshot{Base: "EUR", Rates: Rates{"USD": dec("1.2")}, FetchedAt: now.Add(-15 * time.Minute)}, nil)
				src.On("Latest", ctx, "EUR").Return(live, nil)
				store.On("Save", ctx, mock.MatchedBy(func(s *Snapshot) bool {
					return s.Base == "EUR" && s.FetchedAt.Equal(now) && s.Rates["USD"].Equal(dec("1.1"))
				})).Return(nil)
			},
			wantSource: SourceLive,
			wantUSD:    "1.1",
		},
		{
			name: "missing snapshot is fetched",
			setup: func(src *MockSource, store *MockStore) {
				store.On("Load", ctx, "EUR").Return(nil, ErrSnapshotNotFound)
				src.On("Latest", ctx, "EUR").Return(live, nil)
				store.On("Save", ctx, mock.Anything).Return(nil)
			},
			wantSource: SourceLive,
			wantUSD:    "1.1",
		},
		{
			name: "store failures do not block a live quote",
			setup: func(src *MockSource, store *MockStore) {
				store.On("Load", ctx, "EUR").Return(nil, errors.New("connection refused"))
				src.On("Latest", ctx, "EUR").Return(live, nil)
				store.On("Save", ctx, mock.Anything).Return(errors.New("connection refused"))
			},
			wantSource: SourceLive,
			wantUSD:    "1.1",
		},
		{
			name: "fetch failure falls back",
			setup: func(src *MockSource, store *MockStore) {
				store.On("Load", ctx, "EUR").Return(nil, ErrSnapshotNotFound)
				src.On("Latest", ctx, "EUR").Return(nil, context.DeadlineExceeded)
			},
			wantSource: SourceFallback,
			wantUSD:    "1.08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockSource)
			store := new(MockStore)
			tt.setup(src, store)

			q := newTestProvider(src, store, now).Rates(ctx)

			assert.Equal(t, tt.wantSource, q.Source)
			assert.True(t, dec(tt.wantUSD).Equal(q.Rates["USD"]), "USD rate %s", q.Rates["USD"])
			src.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}

func TestProvider_InfoAndRefresh(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	src := new(MockSource)
	src.On("Latest", mock.Anything, "EUR").Return(Rates{"EUR": dec("1"), "USD": dec("1.1")}, nil).Twice()

	p := newTestProvider(src, NewMemoryStore(), now)
	ctx := context.Background()

	info := p.Info(ctx)
	assert.Equal(t, "EUR", info.Base)
	assert.Equal(t, "2026-01-15", info.Date)
	assert.False(t, info.Cached)
	assert.Equal(t, SourceLive, info.Source)

	info = p.Info(ctx)
	assert.True(t, info.Cached)

	info, err := p.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceLive, info.Source)
	assert.False(t, info.Cached)

	src.AssertExpectations(t)
}

func TestProvider_ConcurrentRefresh(t *testing.T) {
	src := new(MockSource)
	src.On("Latest", mock.Anything, "EUR").Return(Rates{"EUR": dec("1"), "USD": dec("1.1")}, nil)
	p := NewProvider(src, NewMemoryStore(), Config{}, quietLogger(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q := p.Rates(context.Background())
			assert.True(t, dec("1.1").Equal(q.Rates["USD"]))
		}()
	}
	wg.Wait()
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Load(ctx, "EUR")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	rates := Rates{"EUR": dec("1")}
	require.NoError(t, store.Save(ctx, &Snapshot{Base: "EUR", Rates: rates}))
	rates["USD"] = dec("2")

	snap, err := store.Load(ctx, "EUR")
	require.NoError(t, err)
	assert.Len(t, snap.Rates, 1)

	require.NoError(t, store.Delete(ctx, "EUR"))
	_, err = store.Load(ctx, "EUR")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
