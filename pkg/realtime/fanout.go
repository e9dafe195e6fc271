package realtime

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Fanout publishes to every relay and reads from the first that has a value,
// in construction order. Hosted stores go before the process-local copy so
// writes from other processes are not shadowed.
type Fanout struct {
	relays []Relay
}

func NewFanout(relays ...Relay) *Fanout {
	return &Fanout{relays: relays}
}

func (f *Fanout) Name() string {
	names := make([]string, len(f.relays))
	for i, r := range f.relays {
		names[i] = r.Name()
	}
	return strings.Join(names, "+")
}

// Publish attempts every relay and joins the failures.
func (f *Fanout) Publish(ctx context.Context, path string, value interface{}) error {
	var errs []error
	for _, r := range f.relays {
		if err := r.Publish(ctx, path, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Get(ctx context.Context, path string, dest interface{}) error {
	var errs []error
	for _, r := range f.relays {
		err := r.Get(ctx, path, dest)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return ErrNotFound
}
