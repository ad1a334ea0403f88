package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// View is what the dashboard page shows after a refresh.
type View struct {
	Rows        []Row
	Markers     []Marker
	RefreshedAt time.Time
}

// Dashboard holds the single rendered view and the map it draws on.
// Refreshes are not serialised: concurrent refreshes each fetch on their own,
// and whichever finishes last overwrites both the view and the map layer.
type Dashboard struct {
	mapView *MapView
	loc     *time.Location
	log     zerolog.Logger

	mu   sync.RWMutex
	view View
}

func New(mapView *MapView, loc *time.Location, log zerolog.Logger) *Dashboard {
	if loc == nil {
		loc = time.Local
	}
	return &Dashboard{mapView: mapView, loc: loc, log: log}
}

func (d *Dashboard) Map() *MapView {
	return d.mapView
}

// Refresh fetches, rebuilds the table and redraws every marker.
func (d *Dashboard) Refresh(ctx context.Context, src Source) View {
	snap := Load(ctx, src, d.log)

	rows := BuildRows(snap, d.loc)

	// The map layer and the stored view are committed together so they always
	// describe the same snapshot.
	d.mu.Lock()
	defer d.mu.Unlock()

	d.view = View{
		Rows:        rows,
		Markers:     d.mapView.Render(snap),
		RefreshedAt: time.Now(),
	}
	return d.view
}

// Clear marks a report done and then reloads the whole dashboard rather than
// patching the affected row.
func (d *Dashboard) Clear(ctx context.Context, src Source, id int64) (View, error) {
	if _, err := src.ClearReport(ctx, id); err != nil {
		return d.Current(), fmt.Errorf("clear report %d: %w", id, err)
	}
	return d.Refresh(ctx, src), nil
}

// Current returns the last rendered view.
func (d *Dashboard) Current() View {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.view
}
