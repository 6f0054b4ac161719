package deals

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/blackwell-systems/outcome"
	"github.com/blackwell-systems/outcome/crmerr"
)

// MemoryStore keeps deals in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	deals map[string]Deal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{deals: make(map[string]Deal)}
}

func (s *MemoryStore) Insert(ctx context.Context, d Deal) (outcome.Result, error) {
	if err := ctx.Err(); err != nil {
		return outcome.Result{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(d.Name, d.ID) {
		return outcome.Failure(crmerr.DealDuplicateName), nil
	}
	s.deals[d.ID] = d
	return outcome.Success(), nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (outcome.Value[Deal], error) {
	if err := ctx.Err(); err != nil {
		return outcome.Value[Deal]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deals[id]
	if !ok {
		return outcome.Fail[Deal](crmerr.DealNotFound), nil
	}
	return outcome.Ok(d), nil
}

// List returns deals ordered by creation time, filtered by a
// case-insensitive name search.
func (s *MemoryStore) List(ctx context.Context, p outcome.PageParams) ([]Deal, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	matched := make([]Deal, 0, len(s.deals))
	search := strings.ToLower(p.Search)
	for _, d := range s.deals {
		if search == "" || strings.Contains(strings.ToLower(d.Name), search) {
			matched = append(matched, d)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b Deal) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(matched)
	start := min(p.Offset(), total)
	end := min(start+p.PageSize, total)
	return matched[start:end], total, nil
}

func (s *MemoryStore) Update(ctx context.Context, d Deal) (outcome.Result, error) {
	if err := ctx.Err(); err != nil {
		return outcome.Result{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deals[d.ID]; !ok {
		return outcome.Failure(crmerr.DealNotFound), nil
	}
	if s.nameTaken(d.Name, d.ID) {
		return outcome.Failure(crmerr.DealDuplicateName), nil
	}
	s.deals[d.ID] = d
	return outcome.Success(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) (outcome.Result, error) {
	if err := ctx.Err(); err != nil {
		return outcome.Result{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deals[id]; !ok {
		return outcome.Failure(crmerr.DealNotFound), nil
	}
	delete(s.deals, id)
	return outcome.Success(), nil
}

// nameTaken must be called with mu held.
func (s *MemoryStore) nameTaken(name, exceptID string) bool {
	for id, d := range s.deals {
		if id != exceptID && strings.EqualFold(d.Name, name) {
			return true
		}
	}
	return false
}

var _ Store = (*MemoryStore)(nil)
