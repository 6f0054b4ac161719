package deals

import (
	"context"
	"strings"
	"time"

	"github.com/blackwell-systems/outcome"
	"github.com/blackwell-systems/outcome/crmerr"
	"github.com/google/uuid"
)

// Service implements the deal use cases on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides deal ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates in and stores a new deal.
func (s *Service) Create(ctx context.Context, in CreateDeal) (outcome.Value[Deal], error) {
	if res := in.Validate(); res.IsFailure() {
		return outcome.Fail[Deal](res.Error()), nil
	}

	now := s.now()
	d := Deal{
		ID:        s.newID(),
		Name:      in.Name,
		Value:     in.Value,
		Stage:     in.Stage,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := s.store.Insert(ctx, d)
	if err != nil || res.IsFailure() {
		return failed[Deal](res), err
	}
	return outcome.Ok(d), nil
}

// Get returns the deal with id.
func (s *Service) Get(ctx context.Context, id string) (outcome.Value[Deal], error) {
	return s.store.Get(ctx, id)
}

// List returns one page of deals.
func (s *Service) List(ctx context.Context, p outcome.PageParams) (outcome.Value[outcome.Page[Deal]], error) {
	items, total, err := s.store.List(ctx, p)
	if err != nil {
		return outcome.Value[outcome.Page[Deal]]{}, err
	}
	return outcome.Ok(outcome.NewPage(items, total, p)), nil
}

// Rename changes the name of an open deal.
func (s *Service) Rename(ctx context.Context, id, name string) (outcome.Value[Deal], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return outcome.Fail[Deal](crmerr.DealNameRequired), nil
	}
	return s.modify(ctx, id, func(d Deal) outcome.Value[Deal] {
		d.Name = name
		return outcome.Ok(d)
	})
}

// MoveStage moves an open deal to stage. Closed deals keep their stage.
func (s *Service) MoveStage(ctx context.Context, id string, stage Stage) (outcome.Value[Deal], error) {
	if !stage.Valid() {
		return outcome.Fail[Deal](crmerr.DealInvalidStage), nil
	}
	return s.modify(ctx, id, func(d Deal) outcome.Value[Deal] {
		if d.Stage.Closed() && d.Stage != stage {
			return outcome.Fail[Deal](crmerr.PipelineCannotChangeStage)
		}
		d.Stage = stage
		return outcome.Ok(d)
	})
}

// Archive archives a deal. Archiving twice is a conflict.
func (s *Service) Archive(ctx context.Context, id string) (outcome.Result, error) {
	v, err := s.modify(ctx, id, func(d Deal) outcome.Value[Deal] {
		d.Archived = true
		return outcome.Ok(d)
	})
	if err != nil {
		return outcome.Result{}, err
	}
	return v.Result(), nil
}

// Delete removes a deal.
func (s *Service) Delete(ctx context.Context, id string) (outcome.Result, error) {
	return s.store.Delete(ctx, id)
}

// modify loads the deal, rejects archived ones, applies change and stores
// the result.
func (s *Service) modify(ctx context.Context, id string, change func(Deal) outcome.Value[Deal]) (outcome.Value[Deal], error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return outcome.Value[Deal]{}, err
	}

	next := outcome.Bind(current, func(d Deal) outcome.Value[Deal] {
		if d.Archived {
			return outcome.Fail[Deal](crmerr.DealAlreadyArchived)
		}
		return change(d)
	})
	if next.IsFailure() {
		return next, nil
	}

	d := next.Value()
	d.UpdatedAt = s.now()
	res, err := s.store.Update(ctx, d)
	if err != nil || res.IsFailure() {
		return failed[Deal](res), err
	}
	return outcome.Ok(d), nil
}

// failed carries the failure of res into a Value. A successful res yields
// the zero Value, which is only returned alongside a non-nil error.
func failed[T any](res outcome.Result) outcome.Value[T] {
	if res.IsFailure() {
		return outcome.Fail[T](res.Error())
	}
	return outcome.Value[T]{}
}
