package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownCard is returned when adjusting a card that is not cached.
	ErrUnknownCard = errors.New("card not in catalog")
	// ErrNegativeCount is returned when a delta would take the owned count below zero.
	ErrNegativeCount = errors.New("owned count cannot go below zero")
)

// Increment adds one owned copy of number.
func (c *Catalog) Increment(ctx context.Context, number string) error {
	return c.Adjust(ctx, number, nil)
}

// Decrement removes one owned copy of number.
func (c *Catalog) Decrement(ctx context.Context, number string) error {
	d := -1
	return c.Adjust(ctx, number, &d)
}

// Adjust changes the owned count of number by delta, nil meaning +1.
//
// The local count changes before the store is called and is restored if the
// store call fails. Adjustments to the same card run one at a time in the order
// they acquire the card; different cards proceed independently.
func (c *Catalog) Adjust(ctx context.Context, number string, delta *int) error {
	d := 1
	if delta != nil {
		d = *delta
	}

	release, err := c.locks.acquire(ctx, number)
	if err != nil {
		return fmt.Errorf("adjust %s: %w", number, err)
	}
	defer release()

	before, after, err := c.applyLocal(number, d)
	if err != nil {
		return fmt.Errorf("adjust %s: %w", number, err)
	}

	log := c.log.WithContext(ctx).WithFields(map[string]interface{}{
		"card":  number,
		"delta": d,
	})

	remote, err := c.store.AdjustCard(ctx, number, delta)
	if err != nil {
		c.restoreLocal(number, before)
		log.WithError(err).Warn("adjustment failed, local count restored")
		return fmt.Errorf("adjust %s: %w", number, err)
	}

	if remote != after {
		log.WithFields(map[string]interface{}{
			"local":  after,
			"remote": remote,
		}).Warn("store count differs from local count")
	}
	return nil
}

func (c *Catalog) applyLocal(number string, d int) (before, after int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[number]
	if !ok {
		return 0, 0, ErrUnknownCard
	}
	before = c.all[i].InCollection
	after = before + d
	if after < 0 {
		return before, before, fmt.Errorf("%w: have %d, delta %d", ErrNegativeCount, before, d)
	}
	c.all[i].InCollection = after
	return before, after, nil
}

func (c *Catalog) restoreLocal(number string, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[number]; ok {
		c.all[i].InCollection = count
	}
}

// cardLocks hands out one slot per card number. Waiters queue on the slot's
// channel and give up when their context ends.
type cardLocks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newCardLocks() *cardLocks {
	return &cardLocks{slots: map[string]chan struct{}{}}
}

func (l *cardLocks) acquire(ctx context.Context, number string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[number]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[number] = slot
	}
	l.mu.Unlock()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
