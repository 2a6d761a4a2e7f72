// Package erp talks to the Raven ERP HTTP API: device linking,
// trip submission, file uploads, imports and the category catalog.
package erp

import (
	"context"

	"github.com/ravenerp/journey-sync/internal/model"
)

//go:generate mockgen -source=api.go -destination=mock_api.go -package=erp

// API is the surface the sync and import flows depend on.
type API interface {
	// Health probes GET /health with a fixed timeout. It returns nil
	// only on HTTP 200.
	Health(ctx context.Context) error

	// Employee fetches the identity behind an employee key.
	Employee(ctx context.Context, clave string) (model.Employee, error)

	// Trip fetches a remote trip by its ERP identifier.
	Trip(ctx context.Context, id string) (*model.RemoteTrip, error)

	// SubmitTrip pushes a flattened trip and returns the remote
	// identifier the ERP assigned to it.
	SubmitTrip(ctx context.Context, payload model.TripPayload) (string, error)

	// UploadFiles uploads local files in one multipart batch and
	// returns their remote URLs in input order.
	UploadFiles(ctx context.Context, paths []string) ([]string, error)

	// Categories returns the stop-category catalog, falling back to
	// the built-in catalog when the server has none to offer.
	Categories(ctx context.Context) ([]model.Category, error)
}
