// File: services/allocation/engine_test.go
package allocation

import (
	"context"
	"sync"
	"testing"

	bucketRepo "tablewala/database/repository/bucket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDate = "2026-09-10"

func newTestEngine(capacity int) *DefaultEngine {
	cfg := DefaultConfig()
	cfg.DefaultCapacity = capacity
	return NewDefaultEngine(bucketRepo.NewMemoryBucketRepo(), cfg, zap.NewNop())
}

func TestSlotTimes(t *testing.T) {
	e := newTestEngine(50)

	times := e.SlotTimes()
	require.Len(t, times, 23) // 11:00 through 22:00 inclusive, every 30 min
	assert.Equal(t, "11:00", times[0])
	assert.Equal(t, "22:00", times[len(times)-1])
}

func TestIsValidSlot(t *testing.T) {
	e := newTestEngine(50)

	assert.True(t, e.IsValidSlot("11:00"))
	assert.True(t, e.IsValidSlot("19:30"))
	assert.True(t, e.IsValidSlot("22:00"))
	assert.False(t, e.IsValidSlot("10:30"))
	assert.False(t, e.IsValidSlot("22:30"))
	assert.False(t, e.IsValidSlot("19:15")) // off the grid
	assert.False(t, e.IsValidSlot("nonsense"))
}

func TestReserveAndRelease(t *testing.T) {
	e := newTestEngine(10)
	ctx := context.Background()

	require.NoError(t, e.Reserve(ctx, testDate, "19:00", 4, "res-1"))

	bucket, err := e.GetOrCreate(ctx, testDate, "19:00")
	require.NoError(t, err)
	assert.Equal(t, 4, bucket.Booked)
	assert.Contains(t, bucket.ReservationIDs, "res-1")

	require.NoError(t, e.Release(ctx, testDate, "19:00", 4, "res-1"))

	bucket, err = e.GetOrCreate(ctx, testDate, "19:00")
	require.NoError(t, err)
	assert.Equal(t, 0, bucket.Booked)
	assert.NotContains(t, bucket.ReservationIDs, "res-1")
}

func TestReserveConflictOnFullBucket(t *testing.T) {
	e := newTestEngine(10)
	ctx := context.Background()

	require.NoError(t, e.Reserve(ctx, testDate, "19:00", 8, "res-1"))

	err := e.Reserve(ctx, testDate, "19:00", 3, "res-2")
	assert.ErrorIs(t, err, ErrSlotConflict)

	// An exact fit still succeeds.
	require.NoError(t, e.Reserve(ctx, testDate, "19:00", 2, "res-3"))

	bucket, err := e.GetOrCreate(ctx, testDate, "19:00")
	require.NoError(t, err)
	assert.Equal(t, 10, bucket.Booked)
}

func TestReserveOutsideOperatingHours(t *testing.T) {
	e := newTestEngine(10)

	err := e.Reserve(context.Background(), testDate, "23:00", 2, "res-1")
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestReserveNeverExceedsCapacityUnderContention(t *testing.T) {
	e := newTestEngine(50)
	ctx := context.Background()

	// 30 goroutines racing for 4 seats each against 50 can admit at most 12.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := e.Reserve(ctx, testDate, "20:00", 4, resID(n)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 12, succeeded)
	bucket, err := e.GetOrCreate(ctx, testDate, "20:00")
	require.NoError(t, err)
	assert.Equal(t, 48, bucket.Booked)
	assert.LessOrEqual(t, bucket.Booked, bucket.Capacity)
}

func resID(n int) string {
	return "res-" + string(rune('a'+n%26)) + string(rune('a'+n/26))
}

func TestFindNearestOrdersByDistanceThenClock(t *testing.T) {
	e := newTestEngine(10)
	ctx := context.Background()

	// Fill 19:00 and 19:30 completely.
	require.NoError(t, e.Reserve(ctx, testDate, "19:00", 10, "res-1"))
	require.NoError(t, e.Reserve(ctx, testDate, "19:30", 10, "res-2"))

	got, err := e.FindNearest(ctx, testDate, "19:00", 4, 3)
	require.NoError(t, err)
	// 18:30 at 30 minutes, then the 60-minute pair with the earlier clock
	// time first.
	assert.Equal(t, []string{"18:30", "18:00", "20:00"}, got)
}

func TestFindNearestReturnsOnlyOpenSlots(t *testing.T) {
	e := newTestEngine(10)
	ctx := context.Background()

	// Fill the whole day except 18:30 and 20:00.
	n := 0
	for _, slot := range e.SlotTimes() {
		if slot == "18:30" || slot == "20:00" {
			continue
		}
		n++
		require.NoError(t, e.Reserve(ctx, testDate, slot, 10, resID(n)))
	}

	got, err := e.FindNearest(ctx, testDate, "19:00", 4, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"18:30", "20:00"}, got)
}

func TestFindNearestSkipsBlockedSlots(t *testing.T) {
	e := newTestEngine(10)
	ctx := context.Background()

	require.NoError(t, e.Block(ctx, testDate, "19:00", "admin", "private event"))

	got, err := e.FindNearest(ctx, testDate, "19:00", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"18:30", "19:30"}, got)
}

func TestFindNearestRespectsGuestCount(t *testing.T) {
	e := newTestEngine(10)
	ctx := context.Background()

	require.NoError(t, e.Reserve(ctx, testDate, "19:00", 7, "res-1"))

	// 3 seats remain at 19:00: a party of 3 fits, a party of 4 does not.
	got, err := e.FindNearest(ctx, testDate, "19:00", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"19:00"}, got)

	got, err = e.FindNearest(ctx, testDate, "19:00", 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"18:30"}, got)
}

func TestBlockAndUnblock(t *testing.T) {
	e := newTestEngine(10)
	ctx := context.Background()

	require.NoError(t, e.Reserve(ctx, testDate, "19:00", 4, "res-1"))
	require.NoError(t, e.Block(ctx, testDate, "19:00", "admin", "deep clean"))

	// Blocking rejects new reservations but leaves existing seats booked.
	err := e.Reserve(ctx, testDate, "19:00", 2, "res-2")
	assert.ErrorIs(t, err, ErrSlotConflict)

	bucket, err := e.GetOrCreate(ctx, testDate, "19:00")
	require.NoError(t, err)
	assert.True(t, bucket.Blocked)
	assert.Equal(t, 4, bucket.Booked)

	require.NoError(t, e.Unblock(ctx, testDate, "19:00"))
	require.NoError(t, e.Reserve(ctx, testDate, "19:00", 2, "res-2"))
}

func TestAvailabilitySummary(t *testing.T) {
	e := newTestEngine(10)
	ctx := context.Background()

	require.NoError(t, e.Reserve(ctx, testDate, "19:00", 10, "res-1"))
	require.NoError(t, e.Reserve(ctx, testDate, "12:00", 4, "res-2"))
	require.NoError(t, e.Block(ctx, testDate, "13:00", "admin", "private event"))

	summary, err := e.AvailabilitySummary(ctx, testDate)
	require.NoError(t, err)

	require.Len(t, summary.Slots, 23)
	byTime := make(map[string]string, len(summary.Slots))
	for _, slot := range summary.Slots {
		byTime[slot.Time] = string(slot.Status)
	}
	assert.Equal(t, "fully_booked", byTime["19:00"])
	assert.Equal(t, "blocked", byTime["13:00"])
	assert.Equal(t, "available", byTime["12:00"])
	assert.Equal(t, "available", byTime["11:00"])

	assert.Equal(t, 14, summary.TotalBooked)
	assert.Equal(t, 230, summary.TotalCapacity)
	assert.InDelta(t, 14.0/230.0, summary.Utilization, 1e-9)
}
