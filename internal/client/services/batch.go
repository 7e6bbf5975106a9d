package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MaxParallelDeletes bounds the batch delete fan-out.
const MaxParallelDeletes = 4

// Selection is a set of ids picked in a list view. Safe for concurrent use.
type Selection struct {
	mu  sync.Mutex
	ids map[int64]struct{}
}

func NewSelection(ids ...int64) *Selection {
	s := &Selection{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *Selection) Toggle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int64]struct{})
}

// DeleteError aggregates the failures of a batch delete.
type DeleteError struct {
	Failed map[int64]error
	Total  int
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete %d of %d items", len(e.Failed), e.Total)
}

// Unwrap exposes the individual failures to errors.Is/As.
func (e *DeleteError) Unwrap() []error {
	ids := make([]int64, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]error, len(ids))
	for i, id := range ids {
		out[i] = e.Failed[id]
	}
	return out
}

// BatchDelete runs deleteFn for every id concurrently and waits for all of
// them. Successful deletes are not undone when others fail. sel, if given, is
// cleared afterwards whatever the outcome. The returned error is a
// *DeleteError when at least one delete failed.
func BatchDelete(ctx context.Context, sel *Selection, ids []int64, deleteFn func(ctx context.Context, id int64) error) error {
	if sel != nil {
		defer sel.Clear()
	}
	if len(ids) == 0 {
		return nil
	}

	var mu sync.Mutex
	failed := make(map[int64]error)

	// errgroup.Group without a context: a failed delete must not cancel the
	// others.
	var g errgroup.Group
	g.SetLimit(MaxParallelDeletes)

	for _, id := range ids {
		g.Go(func() error {
			if err := deleteFn(ctx, id); err != nil {
				mu.Lock()
				failed[id] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) == 0 {
		return nil
	}
	return &DeleteError{Failed: failed, Total: len(ids)}
}

// IsPartialDelete reports whether err came from a batch delete.
func IsPartialDelete(err error) bool {
	var de *DeleteError
	return errors.As(err, &de)
}
