package viewmodel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustAppliesLocallyAndRemotely(t *testing.T) {
	vm, store := loadedCatalog(t)
	ctx := context.Background()

	require.NoError(t, vm.Increment(ctx, "LOB-002"))
	three := 3
	require.NoError(t, vm.Adjust(ctx, "LOB-002", &three))
	require.NoError(t, vm.Decrement(ctx, "LOB-002"))

	c, _ := vm.Card("LOB-002")
	assert.Equal(t, 3, c.InCollection)
	assert.Equal(t, 3, store.count("LOB-002"))
	assert.Equal(t, 9, vm.TotalCopies())
}

func TestAdjustSameCardIsSerialized(t *testing.T) {
	vm, store := loadedCatalog(t)
	ctx := context.Background()

	firstStarted := make(chan struct{})
	var order []int
	var orderMu sync.Mutex
	store.adjustHook = func(ctx context.Context, call int, number string) error {
		if call == 0 {
			close(firstStarted)
			time.Sleep(50 * time.Millisecond)
		}
		orderMu.Lock()
		order = append(order, call)
		orderMu.Unlock()
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = vm.Adjust(ctx, "MRD-001", nil)
	}()
	<-firstStarted
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[1] = vm.Adjust(ctx, "MRD-001", nil)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, []int{0, 1}, order)

	c, _ := vm.Card("MRD-001")
	assert.Equal(t, 2, c.InCollection)
	assert.Equal(t, 2, store.count("MRD-001"))
}

func TestAdjustDifferentCardsRunConcurrently(t *testing.T) {
	vm, store := loadedCatalog(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// each call waits for the other card's call to start
	started := map[string]chan struct{}{
		"LOB-001": make(chan struct{}),
		"LOB-002": make(chan struct{}),
	}
	other := map[string]string{"LOB-001": "LOB-002", "LOB-002": "LOB-001"}
	store.adjustHook = func(ctx context.Context, call int, number string) error {
		close(started[number])
		select {
		case <-started[other[number]]:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, number := range []string{"LOB-001", "LOB-002"} {
		wg.Add(1)
		go func(i int, number string) {
			defer wg.Done()
			errs[i] = vm.Adjust(ctx, number, nil)
		}(i, number)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 3, store.count("LOB-001"))
	assert.Equal(t, 1, store.count("LOB-002"))
}

func TestAdjustFailureRestoresCount(t *testing.T) {
	vm, store := loadedCatalog(t)
	store.adjustHook = func(ctx context.Context, call int, number string) error {
		return errStoreDown
	}

	err := vm.Increment(context.Background(), "LOB-001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStoreDown))

	c, _ := vm.Card("LOB-001")
	assert.Equal(t, 2, c.InCollection)
	assert.Equal(t, 2, store.count("LOB-001"))
}

func TestAdjustTimeoutReleasesCard(t *testing.T) {
	vm, store := loadedCatalog(t)
	store.adjustHook = func(ctx context.Context, call int, number string) error {
		if call == 0 {
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := vm.Increment(ctx, "LOB-003")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	require.NoError(t, vm.Increment(context.Background(), "LOB-003"))
	c, _ := vm.Card("LOB-003")
	assert.Equal(t, 2, c.InCollection)
}

func TestAdjustLocalGuards(t *testing.T) {
	vm, store := loadedCatalog(t)
	ctx := context.Background()

	err := vm.Decrement(ctx, "LOB-002")
	assert.True(t, errors.Is(err, ErrNegativeCount))

	err = vm.Increment(ctx, "XXX-404")
	assert.True(t, errors.Is(err, ErrUnknownCard))

	assert.Empty(t, store.calls)
}
