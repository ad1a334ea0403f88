package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"dumptrac/internal/models"

	"github.com/rs/zerolog"
)

type fakeKeepaliveStore struct {
	bins    map[string]models.Bin
	reports []models.Report
	failBin error
}

func (f *fakeKeepaliveStore) EnsureBin(_ context.Context, location string, lat, lng float64) (models.Bin, error) {
	if f.failBin != nil {
		return models.Bin{}, f.failBin
	}
	if f.bins == nil {
		f.bins = map[string]models.Bin{}
	}
	if b, ok := f.bins[location]; ok {
		return b, nil
	}
	b := models.Bin{ID: int64(len(f.bins) + 1), Location: location, Latitude: models.NewCoord(lat), Longitude: models.NewCoord(lng)}
	f.bins[location] = b
	return b, nil
}

func (f *fakeKeepaliveStore) CreateReport(_ context.Context, binID int64, status string) (models.Report, error) {
	r := models.Report{ID: int64(len(f.reports) + 1), BinID: binID, Status: status, CreatedAt: models.NewTimestamp(time.Now())}
	f.reports = append(f.reports, r)
	return r, nil
}

func TestKeepaliveRunOnceReusesSystemBin(t *testing.T) {
	store := &fakeKeepaliveStore{}
	k := NewKeepalive(store, time.Hour, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := k.RunOnce(context.Background()); err != nil {
			t.Fatalf("RunOnce #%d: %v", i+1, err)
		}
	}

	if len(store.bins) != 1 {
		t.Fatalf("got %d bins, want 1", len(store.bins))
	}
	bin := store.bins[KeepaliveLocation]
	if bin.Latitude.Float64 != KeepaliveLatitude || bin.Longitude.Float64 != KeepaliveLongitude {
		t.Errorf("system bin coordinates = %v,%v", bin.Latitude, bin.Longitude)
	}
	if len(store.reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(store.reports))
	}
	for _, r := range store.reports {
		if r.Status != models.StatusAutoCheck || r.BinID != bin.ID {
			t.Errorf("unexpected report %+v", r)
		}
	}
}

func TestKeepaliveRunOnceWrapsStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	k := NewKeepalive(&fakeKeepaliveStore{failBin: boom}, time.Hour, zerolog.Nop())

	_, err := k.RunOnce(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestKeepaliveRunStopsOnCancel(t *testing.T) {
	store := &fakeKeepaliveStore{}
	k := NewKeepalive(store, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		k.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
