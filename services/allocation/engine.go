// File: services/allocation/engine.go
package allocation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tablewala/config"
	bucketRepo "tablewala/database/repository/bucket"
	"tablewala/models"
	"tablewala/utils"

	"go.uber.org/zap"
)

// ErrSlotConflict mirrors the repository sentinel for callers that only
// import the engine.
var ErrSlotConflict = bucketRepo.ErrSlotConflict

// ErrOutsideOperatingHours signals a requested time that does not fall on the
// restaurant's slot grid. Callers treat it like a conflict: revert and
// suggest alternatives.
var ErrOutsideOperatingHours = errors.New("requested time is outside operating hours")

// Config carries the allocation engine's operating parameters. Minutes are
// from midnight.
type Config struct {
	OpenMinute      int
	CloseMinute     int // inclusive last seating
	SlotInterval    int
	DefaultCapacity int
}

// DefaultConfig is the stock dining-room setup: 30-minute slots, 11:00 to
// 22:00 inclusive, 50 covers per slot.
func DefaultConfig() Config {
	return Config{
		OpenMinute:      660,
		CloseMinute:     1320,
		SlotInterval:    30,
		DefaultCapacity: 50,
	}
}

// ConfigFromApp builds a Config from the loaded application configuration.
func ConfigFromApp() Config {
	return Config{
		OpenMinute:      config.AppConfig.RestaurantOpenMinute,
		CloseMinute:     config.AppConfig.RestaurantCloseMinute,
		SlotInterval:    config.AppConfig.RestaurantSlotInterval,
		DefaultCapacity: config.AppConfig.RestaurantSlotCapacity,
	}
}

// Engine owns capacity accounting for (date, time) buckets.
type Engine interface {
	GetOrCreate(ctx context.Context, date, time string) (*models.TimeSlotBucket, error)
	HasAvailability(ctx context.Context, date, time string, guestCount int) (bool, error)
	// Reserve atomically books guestCount seats; returns ErrSlotConflict when
	// the bucket is blocked or short on capacity, ErrOutsideOperatingHours
	// when the time is off the slot grid. Neither is a system failure.
	Reserve(ctx context.Context, date, time string, guestCount int, reservationID string) error
	// Release returns guestCount seats; the caller must pass the exact amount
	// originally reserved for reservationID.
	Release(ctx context.Context, date, time string, guestCount int, reservationID string) error
	// FindNearest returns up to maxResults open slot times ordered by minute
	// distance from preferredTime, earlier clock time breaking ties.
	FindNearest(ctx context.Context, date, preferredTime string, guestCount, maxResults int) ([]string, error)
	Block(ctx context.Context, date, time, actorID, reason string) error
	Unblock(ctx context.Context, date, time string) error
	AvailabilitySummary(ctx context.Context, date string) (*models.AvailabilitySummary, error)
}

// DefaultEngine is the production implementation over a BucketRepository.
type DefaultEngine struct {
	Repo   bucketRepo.BucketRepository
	Cfg    Config
	Logger *zap.Logger
}

// NewDefaultEngine wires an allocation engine over the given bucket store.
func NewDefaultEngine(repo bucketRepo.BucketRepository, cfg Config, logger *zap.Logger) *DefaultEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEngine{Repo: repo, Cfg: cfg, Logger: logger}
}

// SlotTimes lists every valid seating time in the operating window.
func (e *DefaultEngine) SlotTimes() []string {
	var out []string
	for m := e.Cfg.OpenMinute; m <= e.Cfg.CloseMinute; m += e.Cfg.SlotInterval {
		out = append(out, utils.ClockFromMinutes(m))
	}
	return out
}

// IsValidSlot reports whether the clock time falls on the slot grid within
// the operating window.
func (e *DefaultEngine) IsValidSlot(slotTime string) bool {
	m, err := utils.MinutesFromClock(slotTime)
	if err != nil {
		return false
	}
	if m < e.Cfg.OpenMinute || m > e.Cfg.CloseMinute {
		return false
	}
	return (m-e.Cfg.OpenMinute)%e.Cfg.SlotInterval == 0
}

func (e *DefaultEngine) GetOrCreate(ctx context.Context, date, slotTime string) (*models.TimeSlotBucket, error) {
	return e.Repo.GetOrCreate(ctx, date, slotTime, e.Cfg.DefaultCapacity)
}

func (e *DefaultEngine) HasAvailability(ctx context.Context, date, slotTime string, guestCount int) (bool, error) {
	bucket, err := e.GetOrCreate(ctx, date, slotTime)
	if err != nil {
		return false, err
	}
	return bucket.HasAvailability(guestCount), nil
}

func (e *DefaultEngine) Reserve(ctx context.Context, date, slotTime string, guestCount int, reservationID string) error {
	if !e.IsValidSlot(slotTime) {
		return ErrOutsideOperatingHours
	}
	if _, err := e.GetOrCreate(ctx, date, slotTime); err != nil {
		return err
	}
	err := e.Repo.TryReserve(ctx, date, slotTime, guestCount, reservationID)
	if errors.Is(err, bucketRepo.ErrSlotConflict) {
		e.Logger.Debug("reservation conflict",
			zap.String("date", date),
			zap.String("time", slotTime),
			zap.Int("guestCount", guestCount))
		return err
	}
	if err != nil {
		return err
	}
	e.Logger.Info("seats reserved",
		zap.String("date", date),
		zap.String("time", slotTime),
		zap.Int("guestCount", guestCount),
		zap.String("reservationId", reservationID))
	return nil
}

func (e *DefaultEngine) Release(ctx context.Context, date, slotTime string, guestCount int, reservationID string) error {
	if err := e.Repo.Release(ctx, date, slotTime, guestCount, reservationID); err != nil {
		return err
	}
	e.Logger.Info("seats released",
		zap.String("date", date),
		zap.String("time", slotTime),
		zap.Int("guestCount", guestCount),
		zap.String("reservationId", reservationID))
	return nil
}

func (e *DefaultEngine) FindNearest(ctx context.Context, date, preferredTime string, guestCount, maxResults int) ([]string, error) {
	preferred, err := utils.MinutesFromClock(preferredTime)
	if err != nil {
		return nil, fmt.Errorf("invalid preferred time %q: %w", preferredTime, err)
	}

	buckets, err := e.bucketsByTime(ctx, date)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		minute   int
		distance int
	}
	var candidates []candidate
	for m := e.Cfg.OpenMinute; m <= e.Cfg.CloseMinute; m += e.Cfg.SlotInterval {
		d := m - preferred
		if d < 0 {
			d = -d
		}
		candidates = append(candidates, candidate{minute: m, distance: d})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].minute < candidates[j].minute
	})

	var results []string
	for _, c := range candidates {
		if len(results) == maxResults {
			break
		}
		slotTime := utils.ClockFromMinutes(c.minute)
		bucket, ok := buckets[slotTime]
		if !ok {
			// Never materialized: open at default capacity.
			if guestCount <= e.Cfg.DefaultCapacity {
				results = append(results, slotTime)
			}
			continue
		}
		if bucket.HasAvailability(guestCount) {
			results = append(results, slotTime)
		}
	}
	return results, nil
}

func (e *DefaultEngine) Block(ctx context.Context, date, slotTime, actorID, reason string) error {
	if err := e.Repo.SetBlocked(ctx, date, slotTime, true, actorID, reason, e.Cfg.DefaultCapacity); err != nil {
		return err
	}
	e.Logger.Info("bucket blocked",
		zap.String("date", date),
		zap.String("time", slotTime),
		zap.String("actor", actorID),
		zap.String("reason", reason))
	return nil
}

func (e *DefaultEngine) Unblock(ctx context.Context, date, slotTime string) error {
	if err := e.Repo.SetBlocked(ctx, date, slotTime, false, "", "", e.Cfg.DefaultCapacity); err != nil {
		return err
	}
	e.Logger.Info("bucket unblocked",
		zap.String("date", date),
		zap.String("time", slotTime))
	return nil
}

func (e *DefaultEngine) AvailabilitySummary(ctx context.Context, date string) (*models.AvailabilitySummary, error) {
	buckets, err := e.bucketsByTime(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := &models.AvailabilitySummary{Date: date}
	for m := e.Cfg.OpenMinute; m <= e.Cfg.CloseMinute; m += e.Cfg.SlotInterval {
		slotTime := utils.ClockFromMinutes(m)
		row := models.SlotSummary{
			Time:     slotTime,
			Status:   models.SlotAvailable,
			Capacity: e.Cfg.DefaultCapacity,
		}
		if bucket, ok := buckets[slotTime]; ok {
			row.Capacity = bucket.Capacity
			row.Booked = bucket.Booked
			switch {
			case bucket.Blocked:
				row.Status = models.SlotBlocked
			case bucket.Remaining() <= 0:
				row.Status = models.SlotFullyBooked
			}
		}
		row.Remaining = row.Capacity - row.Booked
		summary.TotalBooked += row.Booked
		summary.TotalCapacity += row.Capacity
		summary.Slots = append(summary.Slots, row)
	}
	if summary.TotalCapacity > 0 {
		summary.Utilization = float64(summary.TotalBooked) / float64(summary.TotalCapacity)
	}
	return summary, nil
}

func (e *DefaultEngine) bucketsByTime(ctx context.Context, date string) (map[string]models.TimeSlotBucket, error) {
	buckets, err := e.Repo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	byTime := make(map[string]models.TimeSlotBucket, len(buckets))
	for _, b := range buckets {
		byTime[b.Time] = b
	}
	return byTime, nil
}
