// Package store persists all local application state in a single
// bbolt database: the trip collection, the user profile, the linked
// employee, and the ERP server URL. The trip collection keeps the
// whole-document semantics of the original key-value blob (every
// write replaces the full array), hidden behind per-entity operations.
package store

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ravenerp/journey-sync/internal/errors"
	"github.com/ravenerp/journey-sync/internal/model"
)

const (
	// stateDirPerm is the permission mode for the state directory (~/.journey/).
	stateDirPerm = fs.FileMode(0o700)

	// stateFilePerm is the permission mode for the database file.
	stateFilePerm = fs.FileMode(0o600)

	// stateOpenTimeout is the maximum time to wait for the bolt database lock.
	stateOpenTimeout = 5 * time.Second
)

var (
	appBucket   = []byte("app")
	tripsBucket = []byte("trips")

	tripsKey     = []byte("trips")
	profileKey   = []byte("profile")
	employeeKey  = []byte("employee")
	serverURLKey = []byte("server_url")
)

// Store wraps a bbolt database for all persistent application state.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
}

// Load opens the database at <stateDir>/journey.db, creating it if it
// does not exist. An empty stateDir defaults to ~/.journey.
func Load(stateDir string, logger *slog.Logger) (*Store, error) {
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}

		stateDir = filepath.Join(home, ".journey")
	}

	return LoadAt(filepath.Join(stateDir, "journey.db"), logger)
}

// LoadAt opens a database at the given path, creating it if it does
// not exist. Useful for tests that need an isolated database.
func LoadAt(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), stateDirPerm); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := bolt.Open(path, stateFilePerm, &bolt.Options{Timeout: stateOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(appBucket); err != nil {
			return err
		}

		_, err := tx.CreateBucketIfNotExists(tripsBucket)

		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing state db: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadTrips returns the full trip collection. A missing or corrupted
// blob degrades to an empty list rather than an error: the collection
// is display data and a crash on startup would strand the user.
func (s *Store) LoadTrips() []model.Trip {
	var raw []byte

	_ = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(tripsBucket).Get(tripsKey)
		if v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}

		return nil
	})

	if raw == nil {
		return []model.Trip{}
	}

	var trips []model.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		s.logger.Warn("trips blob corrupted, starting empty",
			slog.String("error", err.Error()),
		)

		return []model.Trip{}
	}

	if trips == nil {
		trips = []model.Trip{}
	}

	return trips
}

// SaveTrips replaces the stored collection with the given one. The
// write is a single transaction, so no partial collection is ever
// visible.
func (s *Store) SaveTrips(trips []model.Trip) error {
	if trips == nil {
		trips = []model.Trip{}
	}

	data, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("marshalling trips: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tripsBucket).Put(tripsKey, data)
	})
}

// GetTrip returns the trip with the given local id.
func (s *Store) GetTrip(id string) (*model.Trip, error) {
	for _, t := range s.LoadTrips() {
		if t.ID == id {
			trip := t
			return &trip, nil
		}
	}

	return nil, fmt.Errorf("trip %s: %w", id, errors.ErrTripNotFound)
}

// UpsertTrip replaces the trip with a matching id, or appends it.
func (s *Store) UpsertTrip(trip model.Trip) error {
	trips := s.LoadTrips()

	found := false

	for i := range trips {
		if trips[i].ID == trip.ID {
			trips[i] = trip
			found = true

			break
		}
	}

	if !found {
		trips = append(trips, trip)
	}

	return s.SaveTrips(trips)
}

// DeleteTrip removes the trip with the given id. Deleting a missing
// trip is a no-op.
func (s *Store) DeleteTrip(id string) error {
	trips := s.LoadTrips()

	kept := trips[:0]

	for _, t := range trips {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	return s.SaveTrips(kept)
}

// Profile returns the stored user profile, or the default profile
// when none has been saved yet.
func (s *Store) Profile() model.UserProfile {
	profile := model.DefaultProfile()

	_ = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(appBucket).Get(profileKey)
		if v == nil {
			return nil
		}

		if err := json.Unmarshal(v, &profile); err != nil {
			s.logger.Warn("profile blob corrupted, using defaults",
				slog.String("error", err.Error()),
			)

			profile = model.DefaultProfile()
		}

		return nil
	})

	return profile
}

// SetProfile persists the user profile.
func (s *Store) SetProfile(p model.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshalling profile: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(appBucket).Put(profileKey, data)
	})
}

// Employee returns the linked ERP employee, or nil when the device is
// not linked.
func (s *Store) Employee() *model.Employee {
	var emp *model.Employee

	_ = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(appBucket).Get(employeeKey)
		if v == nil {
			return nil
		}

		emp = &model.Employee{}
		if err := json.Unmarshal(v, emp); err != nil {
			s.logger.Warn("employee blob corrupted, unlinking",
				slog.String("error", err.Error()),
			)

			emp = nil
		}

		return nil
	})

	return emp
}

// SetEmployee persists the linked employee.
func (s *Store) SetEmployee(e model.Employee) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshalling employee: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(appBucket).Put(employeeKey, data)
	})
}

// ClearEmployee removes the employee link.
func (s *Store) ClearEmployee() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(appBucket).Delete(employeeKey)
	})
}

// ServerURL returns the user-configured ERP base URL, or empty string.
func (s *Store) ServerURL() string {
	var url string

	_ = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(appBucket).Get(serverURLKey)
		if v != nil {
			url = string(v)
		}

		return nil
	})

	return url
}

// SetServerURL persists the ERP base URL.
func (s *Store) SetServerURL(url string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(appBucket).Put(serverURLKey, []byte(url))
	})
}

// ClearAll wipes every bucket: trips, profile, employee link and
// server URL. Callers are responsible for the double confirmation
// this destructive operation requires.
func (s *Store) ClearAll() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(appBucket); err != nil {
			return err
		}

		if err := tx.DeleteBucket(tripsBucket); err != nil {
			return err
		}

		if _, err := tx.CreateBucket(appBucket); err != nil {
			return err
		}

		_, err := tx.CreateBucket(tripsBucket)

		return err
	})
}
