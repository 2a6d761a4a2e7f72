package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/ravenerp/journey-sync/internal/errors"
	"github.com/ravenerp/journey-sync/internal/erp"
	"github.com/ravenerp/journey-sync/internal/model"
)

// Importer pulls remote trips into the local store as read-only
// records, replacing any previous copy of the same trip.
type Importer struct {
	store  Store
	api    erp.API
	logger *slog.Logger
	now    func() time.Time
	newID  func(time.Time) string
}

// NewImporter wires an importer over the given store and API client.
func NewImporter(store Store, api erp.API, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Importer{
		store:  store,
		api:    api,
		logger: logger,
		now:    time.Now,
		newID:  model.NewLocalID,
	}
}

// Import fetches the remote trip with the given ERP identifier and
// merges it into the local collection. Nothing local changes when the
// fetch fails.
func (i *Importer) Import(ctx context.Context, remoteID string) (model.Trip, error) {
	rt, err := i.api.Trip(ctx, remoteID)
	if err != nil {
		return model.Trip{}, err
	}

	now := i.now()
	imported := model.TripFromRemote(rt, i.newID(now), now)
	fillStopIDs(&imported, i.newID, now)

	merged, replaced := MergeImportedTrip(i.store.LoadTrips(), imported)

	if err := i.store.SaveTrips(merged); err != nil {
		return model.Trip{}, fmt.Errorf("saving imported trip: %w", err)
	}

	i.logger.Info("trip imported",
		slog.String("erp_id", imported.ERPID),
		slog.String("trip_id", imported.ID),
		slog.Int("replaced", replaced),
	)

	return imported, nil
}

// Refresh re-pulls an already-imported trip from the ERP, keeping its
// local id so navigation references stay valid. Trips that were never
// synchronized or imported have no remote identity to refresh.
func (i *Importer) Refresh(ctx context.Context, tripID string) (model.Trip, error) {
	local, err := i.store.GetTrip(tripID)
	if err != nil {
		return model.Trip{}, err
	}

	if local.ERPID == "" {
		return model.Trip{}, fmt.Errorf("trip %q: %w", tripID, apperrors.ErrNotImported)
	}

	rt, err := i.api.Trip(ctx, local.ERPID)
	if err != nil {
		return model.Trip{}, err
	}

	now := i.now()
	refreshed := model.TripFromRemote(rt, local.ID, now)
	fillStopIDs(&refreshed, i.newID, now)

	merged, _ := MergeImportedTrip(i.store.LoadTrips(), refreshed)

	if err := i.store.SaveTrips(merged); err != nil {
		return model.Trip{}, fmt.Errorf("saving refreshed trip: %w", err)
	}

	return refreshed, nil
}

// MergeImportedTrip removes every local trip matching the import by
// remote id, mobile UUID, or local id, then appends the import. Any
// single matching key replaces; importing the same remote trip twice
// therefore yields one copy, never two. It returns the new collection
// and how many locals were replaced.
func MergeImportedTrip(locals []model.Trip, imported model.Trip) ([]model.Trip, int) {
	kept := make([]model.Trip, 0, len(locals)+1)
	replaced := 0

	for _, t := range locals {
		erpIDMatch := t.ERPID != "" && t.ERPID == imported.ERPID
		uuidMatch := t.UUIDMovil != "" && imported.UUIDMovil != "" && t.UUIDMovil == imported.UUIDMovil
		localIDMatch := t.ID == imported.ERPID

		if erpIDMatch || uuidMatch || localIDMatch {
			replaced++

			continue
		}

		kept = append(kept, t)
	}

	return append(kept, imported), replaced
}

// fillStopIDs assigns local ids to remote stops that came without one.
func fillStopIDs(trip *model.Trip, newID func(time.Time) string, now time.Time) {
	seq := 0

	for di := range trip.Itinerario {
		for si := range trip.Itinerario[di].Puntos {
			if trip.Itinerario[di].Puntos[si].ID == "" {
				trip.Itinerario[di].Puntos[si].ID = newID(now.Add(time.Duration(seq) * time.Millisecond))
				seq++
			}
		}
	}
}
