// Package memory implements store.Store in process memory.
//
// Every transaction works on a private copy of the dataset and swaps it in on
// commit while holding the write lock, so concurrent readers see either the
// state before a transaction or the state after it, never a mix. Constraint
// behavior mirrors the Postgres schema: unique sku, specification FK without
// cascade, cascading child rows, SET NULL on category/brand delete.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/store"
	"github.com/google/uuid"
)

var _ store.Store = (*Store)(nil)

type sequenceKey struct {
	productID uuid.UUID
	userName  string
}

type dataset struct {
	products    map[uuid.UUID]catalog.Product
	specs       map[uuid.UUID]catalog.Specification
	assets      map[int64]catalog.Asset
	lastAssetID int64
	inventory   map[uuid.UUID]catalog.Inventory
	pricing     map[uuid.UUID]catalog.Pricing
	reviews     map[catalog.ReviewKey]catalog.Review
	sequences   map[sequenceKey]int
	categories  map[uuid.UUID]catalog.Category
	brands      map[uuid.UUID]catalog.Brand
}

func newDataset() *dataset {
	return &dataset{
		products:   make(map[uuid.UUID]catalog.Product),
		specs:      make(map[uuid.UUID]catalog.Specification),
		assets:     make(map[int64]catalog.Asset),
		inventory:  make(map[uuid.UUID]catalog.Inventory),
		pricing:    make(map[uuid.UUID]catalog.Pricing),
		reviews:    make(map[catalog.ReviewKey]catalog.Review),
		sequences:  make(map[sequenceKey]int),
		categories: make(map[uuid.UUID]catalog.Category),
		brands:     make(map[uuid.UUID]catalog.Brand),
	}
}

// clone copies every table. Row values are replaced wholesale on write, never
// mutated in place, so copying the maps is enough.
func (d *dataset) clone() *dataset {
	return &dataset{
		products:    maps.Clone(d.products),
		specs:       maps.Clone(d.specs),
		assets:      maps.Clone(d.assets),
		lastAssetID: d.lastAssetID,
		inventory:   maps.Clone(d.inventory),
		pricing:     maps.Clone(d.pricing),
		reviews:     maps.Clone(d.reviews),
		sequences:   maps.Clone(d.sequences),
		categories:  maps.Clone(d.categories),
		brands:      maps.Clone(d.brands),
	}
}

// Store is an in-memory store.Store.
type Store struct {
	mu   *sync.RWMutex
	data *dataset
	tx   bool
	now  func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		mu:   &sync.RWMutex{},
		data: newDataset(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// InTx runs fn against a snapshot and commits it if fn succeeds.
// Transactions are serialized. A nested InTx works like a savepoint: it runs on
// a copy of the outer snapshot and folds it back only when fn succeeds.
func (s *Store) InTx(ctx context.Context, fn func(q store.Queries) error) error {
	if s.tx {
		work := s.data.clone()
		if err := fn(&Store{data: work, tx: true, now: s.now}); err != nil {
			return err
		}
		*s.data = *work
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	txStore := &Store{data: work, tx: true, now: s.now}
	if err := fn(txStore); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = work
	return nil
}

// read runs fn under the shared lock (or directly inside a transaction).
func (s *Store) read(ctx context.Context, fn func(d *dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx {
		return fn(s.data)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// write runs fn under the exclusive lock (or directly inside a transaction).
// A failing fn may leave partial changes only inside a transaction snapshot,
// which is then discarded; outside a transaction fn must validate before
// mutating.
func (s *Store) write(ctx context.Context, fn func(d *dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx {
		return fn(s.data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// sortedValues returns the map's values ordered by less.
func sortedValues[K comparable, V any](m map[K]V, keep func(V) bool, less func(a, b V) bool) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byCreated(aAt, bAt time.Time, aID, bID uuid.UUID) bool {
	if !aAt.Equal(bAt) {
		return aAt.Before(bAt)
	}
	return aID.String() < bID.String()
}
