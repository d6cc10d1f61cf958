package listings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadObserver receives load outcomes, typically for metrics.
type LoadObserver interface {
	ListingsLoaded(loaded, skipped int)
	ListingsReloaded(result string)
}

// Snapshot is an immutable view of one successful load.
type Snapshot struct {
	Listings []Listing
	Skipped  []RecordError
	Source   string
	LoadedAt time.Time

	haystacks []string
}

// NewSnapshot indexes listings that were loaded elsewhere.
func NewSnapshot(source string, ls []Listing, loadedAt time.Time) *Snapshot {
	return newSnapshot(source, ParseResult{Listings: ls}, loadedAt)
}

func newSnapshot(source string, result ParseResult, loadedAt time.Time) *Snapshot {
	snap := &Snapshot{
		Listings:  result.Listings,
		Skipped:   result.Skipped,
		Source:    source,
		LoadedAt:  loadedAt,
		haystacks: make([]string, len(result.Listings)),
	}
	for i, l := range result.Listings {
		snap.haystacks[i] = Haystack(l)
	}
	return snap
}

// Len returns the number of loaded listings.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Listings)
}

// Search returns the listings matching f in load order.
func (s *Snapshot) Search(f Filter) []Listing {
	if s == nil {
		return []Listing{}
	}
	term := fold(strings.TrimSpace(f.Query))
	out := make([]Listing, 0, len(s.Listings))
	for i, l := range s.Listings {
		if f.matches(l, s.haystack(i), term) {
			out = append(out, l)
		}
	}
	return out
}

func (s *Snapshot) haystack(i int) string {
	if i < len(s.haystacks) {
		return s.haystacks[i]
	}
	return Haystack(s.Listings[i])
}

// Store serves the current snapshot of a listings file and reloads it on demand.
type Store struct {
	path     string
	logger   *slog.Logger
	observer LoadObserver
	now      func() time.Time

	current atomic.Pointer[Snapshot]
	group   singleflight.Group
}

// NewStore constructs a store for path. observer may be nil.
func NewStore(path string, logger *slog.Logger, observer LoadObserver) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger, observer: observer, now: time.Now}
	s.current.Store(newSnapshot(path, ParseResult{}, time.Time{}))
	return s
}

// Path returns the listings file location.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns the most recent successful load. It is never nil.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Load performs the startup read. A missing file leaves the directory empty.
func (s *Store) Load(ctx context.Context) error {
	_, err := s.Reload(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("listings file not found, serving empty directory", slog.String("path", s.path))
		return nil
	}
	return err
}

// Reload re-reads the file. Concurrent callers share one read. On failure
// the previous snapshot stays in place.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	resultChan := s.group.DoChan(s.path, func() (interface{}, error) {
		return s.read()
	})
	select {
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return s.Snapshot(), res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

func (s *Store) read() (*Snapshot, error) {
	start := s.now()
	result, err := ReadFile(s.path)
	if err != nil {
		s.observe("error", nil)
		s.logger.Error("load listings", slog.String("path", s.path), slog.Any("error", err))
		return nil, fmt.Errorf("listings: load: %w", err)
	}
	for _, skipped := range result.Skipped {
		s.logger.Warn("skipping invalid listing",
			slog.String("path", s.path),
			slog.Int("index", skipped.Index),
			slog.String("name", skipped.Name),
			slog.String("fields", strings.Join(skipped.Fields, "; ")),
		)
	}
	snap := newSnapshot(s.path, result, s.now())
	s.current.Store(snap)
	s.observe("ok", snap)
	s.logger.Info("listings loaded",
		slog.String("path", s.path),
		slog.Int("listings", snap.Len()),
		slog.Int("skipped", len(snap.Skipped)),
		slog.Duration("took", s.now().Sub(start)),
	)
	return snap, nil
}

func (s *Store) observe(result string, snap *Snapshot) {
	if s.observer == nil {
		return
	}
	s.observer.ListingsReloaded(result)
	if snap != nil {
		s.observer.ListingsLoaded(snap.Len(), len(snap.Skipped))
	}
}
