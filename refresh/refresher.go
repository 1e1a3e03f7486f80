// Package refresh perturbs station occupancy on a fixed cadence to
// simulate live telemetry.
package refresh

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"dublinbikes/station"
)

// DefaultInterval is the cadence between refresh ticks.
const DefaultInterval = 15 * time.Second

// Store is the mutable station collection the refresher operates on.
type Store interface {
	GetAll() []station.Station
	ReplaceAll([]station.Station)
}

// Refresher periodically rewrites every station's availability with a
// bounded random delta and swaps the whole set into the store in one
// atomic replace.
type Refresher struct {
	store    Store
	interval time.Duration
	rnd      *rand.Rand
	log      *zap.Logger
	now      func() time.Time
}

// New returns a refresher for the given store. A non-positive interval
// falls back to DefaultInterval.
func New(st Store, interval time.Duration, log *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		store:    st,
		interval: interval,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log,
		now:      time.Now,
	}
}

// Run ticks until ctx is cancelled. A failed tick is logged and the
// loop carries on; only cancellation stops it.
func (r *Refresher) Run(ctx context.Context) {
	r.log.Info("station refresher starting", zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("station refresher stopping")
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Refresher) tick() {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("refresh tick failed", zap.Any("panic", rec))
		}
	}()

	updated := Perturb(r.store.GetAll(), r.rnd, r.now())
	if len(updated) == 0 {
		return
	}
	r.store.ReplaceAll(updated)
	r.log.Debug("refreshed stations", zap.Int("count", len(updated)))
}

// Perturb stages a refreshed copy of the snapshot: every station's
// available bikes move by a random delta of up to ±10% of its total
// capacity, clamped to [0, capacity], with the free-dock count and the
// last-update timestamp recomputed to match. The input is not modified.
func Perturb(snapshot []station.Station, rnd *rand.Rand, now time.Time) []station.Station {
	updated := make([]station.Station, 0, len(snapshot))
	nowMillis := now.UnixMilli()

	for _, st := range snapshot {
		capacity := st.BikeStands + st.AvailableBikeStands

		spread := int(math.Round(float64(capacity) * 0.1))
		delta := 0
		if spread > 0 {
			delta = rnd.Intn(2*spread+1) - spread
		}

		bikes := st.AvailableBikes + delta
		if bikes < 0 {
			bikes = 0
		}
		if bikes > capacity {
			bikes = capacity
		}

		st.AvailableBikes = bikes
		st.AvailableBikeStands = capacity - bikes
		st.LastUpdate = nowMillis
		updated = append(updated, st)
	}
	return updated
}
