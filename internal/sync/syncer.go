package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ravenerp/journey-sync/internal/errors"
	"github.com/ravenerp/journey-sync/internal/erp"
	"github.com/ravenerp/journey-sync/internal/model"
)

// Sync phases, named in PhaseError so a failure message can say what
// was happening when it broke.
const (
	PhaseIdentity = "identity"
	PhaseUpload   = "upload"
	PhaseSubmit   = "submit"
	PhaseStorage  = "storage"
)

// PhaseError reports which sync phase failed. The local trip is left
// exactly as it was whenever the submit never fully succeeded.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string { return fmt.Sprintf("sync failed during %s: %v", e.Phase, e.Err) }
func (e *PhaseError) Unwrap() error { return e.Err }

// Store is the slice of trip storage the sync and import flows need.
type Store interface {
	LoadTrips() []model.Trip
	SaveTrips(trips []model.Trip) error
	GetTrip(id string) (*model.Trip, error)
	UpsertTrip(trip model.Trip) error
	Employee() *model.Employee
}

// Syncer pushes one local trip to the ERP: upload local photos,
// flatten the itinerary, submit, then mark the trip synchronized with
// the identifier the server handed back.
type Syncer struct {
	store   Store
	api     erp.API
	logger  *slog.Logger
	now     func() time.Time
	newUUID func() string
}

// NewSyncer wires a syncer over the given store and API client.
func NewSyncer(store Store, api erp.API, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Syncer{
		store:   store,
		api:     api,
		logger:  logger,
		now:     time.Now,
		newUUID: uuid.NewString,
	}
}

// Sync pushes the trip with the given local id. On success the
// returned trip is the stored record: sincronizado, carrying the
// remote identifier and a fresh last-sync stamp. Uploads run stop by
// stop in itinerary order, one batch per stop.
func (s *Syncer) Sync(ctx context.Context, tripID string) (model.Trip, error) {
	stored, err := s.store.GetTrip(tripID)
	if err != nil {
		return model.Trip{}, &PhaseError{Phase: PhaseStorage, Err: err}
	}

	if stored.ReadOnly {
		return model.Trip{}, fmt.Errorf("trip %q: %w", tripID, apperrors.ErrReadOnlyTrip)
	}

	emp := s.store.Employee()
	if emp == nil {
		return model.Trip{}, &PhaseError{Phase: PhaseIdentity, Err: apperrors.ErrNotLinked}
	}

	trip := cloneTrip(*stored)

	// The mobile UUID anchors deduplication on the server, so it is
	// persisted before anything can fail.
	if trip.UUIDMovil == "" {
		trip.UUIDMovil = s.newUUID()
		if err := s.store.UpsertTrip(trip); err != nil {
			return model.Trip{}, &PhaseError{Phase: PhaseStorage, Err: err}
		}
	}

	if err := s.uploadLocalPhotos(ctx, &trip); err != nil {
		return model.Trip{}, &PhaseError{Phase: PhaseUpload, Err: err}
	}

	payload := BuildPayload(trip, *emp, s.now())

	remoteID, err := s.api.SubmitTrip(ctx, payload)
	if err != nil {
		return model.Trip{}, &PhaseError{Phase: PhaseSubmit, Err: err}
	}

	trip.Sincronizado = true
	trip.ERPID = remoteID
	trip.UltimaSync = s.now().Format(LastSyncLayout)

	if err := s.store.UpsertTrip(trip); err != nil {
		return model.Trip{}, &PhaseError{Phase: PhaseStorage, Err: err}
	}

	s.logger.Info("trip synchronized",
		slog.String("trip_id", trip.ID),
		slog.String("erp_id", remoteID),
		slog.Int("stops", trip.StopCount()),
	)

	return trip, nil
}

// uploadLocalPhotos replaces each stop's device-local photo URIs with
// the URLs the ERP returns, keeping already-remote URLs first.
func (s *Syncer) uploadLocalPhotos(ctx context.Context, trip *model.Trip) error {
	for di := range trip.Itinerario {
		for si := range trip.Itinerario[di].Puntos {
			stop := &trip.Itinerario[di].Puntos[si]

			local, remote := PartitionPhotos(stop.Fotos)
			if len(local) == 0 {
				continue
			}

			urls, err := s.api.UploadFiles(ctx, local)
			if err != nil {
				return fmt.Errorf("stop %q: %w", stop.Lugar, err)
			}

			stop.Fotos = append(remote, urls...)
		}
	}

	return nil
}

func cloneTrip(trip model.Trip) model.Trip {
	days := make([]model.Day, len(trip.Itinerario))

	for i, d := range trip.Itinerario {
		puntos := make([]model.Stop, len(d.Puntos))
		copy(puntos, d.Puntos)
		d.Puntos = puntos
		days[i] = d
	}

	trip.Itinerario = days

	return trip
}
