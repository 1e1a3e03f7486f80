package refresh

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"dublinbikes/station"
	"dublinbikes/store"
)

func TestPerturb_Invariants(t *testing.T) {
	snapshot := []station.Station{
		{Number: 1, BikeStands: 11, AvailableBikeStands: 20, AvailableBikes: 11},
		{Number: 2, BikeStands: 6, AvailableBikeStands: 14, AvailableBikes: 6},
		{Number: 3, BikeStands: 0, AvailableBikeStands: 0, AvailableBikes: 0},
		{Number: 4, BikeStands: 30, AvailableBikeStands: 0, AvailableBikes: 30},
		{Number: 5, BikeStands: 0, AvailableBikeStands: 40, AvailableBikes: 0},
	}
	now := time.Date(2023, 10, 10, 12, 0, 0, 0, time.UTC)
	rnd := rand.New(rand.NewSource(1))

	for iter := 0; iter < 100; iter++ {
		updated := Perturb(snapshot, rnd, now)
		if len(updated) != len(snapshot) {
			t.Fatalf("Expected %d stations, got %d", len(snapshot), len(updated))
		}
		for i, st := range updated {
			before := snapshot[i]
			capacity := before.BikeStands + before.AvailableBikeStands

			if st.AvailableBikes < 0 || st.AvailableBikes > capacity {
				t.Errorf("Station %d: bikes %d outside [0, %d]", st.Number, st.AvailableBikes, capacity)
			}
			if st.AvailableBikeStands+st.AvailableBikes != capacity {
				t.Errorf("Station %d: stands %d + bikes %d != capacity %d",
					st.Number, st.AvailableBikeStands, st.AvailableBikes, capacity)
			}
			if st.LastUpdate != now.UnixMilli() {
				t.Errorf("Station %d: last_update not stamped, got %d", st.Number, st.LastUpdate)
			}
		}
	}
}

func TestPerturb_ZeroCapacityStaysZero(t *testing.T) {
	snapshot := []station.Station{{Number: 1}}
	updated := Perturb(snapshot, rand.New(rand.NewSource(7)), time.Now())

	if updated[0].AvailableBikes != 0 || updated[0].AvailableBikeStands != 0 {
		t.Errorf("Zero-capacity station should stay at zero, got %+v", updated[0])
	}
}

func TestPerturb_DoesNotModifyInput(t *testing.T) {
	snapshot := []station.Station{
		{Number: 1, BikeStands: 10, AvailableBikeStands: 10, AvailableBikes: 10, LastUpdate: 42},
	}
	Perturb(snapshot, rand.New(rand.NewSource(3)), time.Now())

	if snapshot[0].LastUpdate != 42 {
		t.Error("Perturb must stage changes on a copy, not the input snapshot")
	}
}

func TestRun_TickReplacesStore(t *testing.T) {
	m := store.NewMemory()
	m.ReplaceAll([]station.Station{
		{Number: 1, BikeStands: 5, AvailableBikeStands: 15, AvailableBikes: 5},
	})

	r := New(m, 5*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		st, _ := m.GetByNumber(1)
		if st.LastUpdate != 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("No refresh tick observed within 2s")
		case <-time.After(time.Millisecond):
		}
	}

	st, ok := m.GetByNumber(1)
	if !ok {
		t.Fatal("Station 1 disappeared after a tick")
	}
	if st.AvailableBikes < 0 || st.AvailableBikeStands < 0 {
		t.Errorf("Tick produced negative counts: %+v", st)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Refresher did not stop promptly after cancellation")
	}
}

func TestRun_StopsOnCancelWithoutTicking(t *testing.T) {
	m := store.NewMemory()
	r := New(m, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Refresher must observe cancellation at the wait boundary")
	}
}
