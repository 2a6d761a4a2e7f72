package commands

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ravenerp/journey-sync/internal/config"
	apperrors "github.com/ravenerp/journey-sync/internal/errors"
	"github.com/ravenerp/journey-sync/internal/erp"
	"github.com/ravenerp/journey-sync/internal/model"
	"github.com/ravenerp/journey-sync/internal/places"
	"github.com/ravenerp/journey-sync/internal/store"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.LoadAt(filepath.Join(t.TempDir(), "journey.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

// execute runs one command line against a fresh command tree, feeding
// stdin for confirmation prompts, and returns everything printed.
func execute(t *testing.T, s *store.Store, api erp.API, stdin string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}

	env := &Env{
		Config: &config.Config{},
		Store:  s,
		API:    api,
		Out:    out,
		In:     strings.NewReader(stdin),
		Now:    func() time.Time { return testNow },
	}

	root := New(env)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func createTrip(t *testing.T, s *store.Store) string {
	t.Helper()

	_, err := execute(t, s, nil, "", "trip", "create",
		"--title", "Gira Norte", "--budget", "100", "--start", "2026-03-10", "--days", "3")
	require.NoError(t, err)

	trips := s.LoadTrips()
	require.Len(t, trips, 1)

	return trips[0].ID
}

func TestTripCreate(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := createTrip(t, s)

	trip, err := s.GetTrip(id)
	require.NoError(t, err)

	assert.Equal(t, "Gira Norte", trip.Titulo)
	assert.Equal(t, 100.0, trip.Presupuesto)
	require.Len(t, trip.Itinerario, 3)
	assert.Equal(t, "2026-03-10", trip.Itinerario[0].Fecha)
	assert.Equal(t, "2026-03-12", trip.Itinerario[2].Fecha)
}

func TestTripCreateWithoutTitleIsNoOp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := execute(t, s, nil, "", "trip", "create", "--days", "2")
	require.NoError(t, err)

	assert.Empty(t, s.LoadTrips())
}

func TestTripsListing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	createTrip(t, s)

	out, err := execute(t, s, nil, "", "trips")
	require.NoError(t, err)

	assert.Contains(t, out, "Gira Norte")
	assert.Contains(t, out, "2026-03-10")
	assert.Contains(t, out, "local")
}

func TestStopAddEditDone(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := createTrip(t, s)

	_, err := execute(t, s, nil, "", "stop", "add", id,
		"--day", "1", "--place", "Planta A", "--time", "09:00", "--cost", "40")
	require.NoError(t, err)

	trip, err := s.GetTrip(id)
	require.NoError(t, err)
	require.Len(t, trip.Itinerario[0].Puntos, 1)

	stopID := trip.Itinerario[0].Puntos[0].ID
	assert.Equal(t, 40.0, trip.Itinerario[0].Puntos[0].Costo)

	_, err = execute(t, s, nil, "", "stop", "edit", id, stopID, "--place", "Planta B", "--cost", "55")
	require.NoError(t, err)

	out, err := execute(t, s, nil, "", "stop", "done", id, stopID)
	require.NoError(t, err)
	assert.Contains(t, out, "marked done")

	trip, err = s.GetTrip(id)
	require.NoError(t, err)
	assert.Equal(t, "Planta B", trip.Itinerario[0].Puntos[0].Lugar)
	assert.Equal(t, 55.0, trip.Itinerario[0].Puntos[0].Costo)
	assert.True(t, bool(trip.Itinerario[0].Puntos[0].Completado))

	out, err = execute(t, s, nil, "", "stop", "done", id, stopID)
	require.NoError(t, err)
	assert.Contains(t, out, "marked pending")
}

func TestStopAddBlankPlaceIsNoOp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := createTrip(t, s)

	_, err := execute(t, s, nil, "", "stop", "add", id, "--day", "1", "--place", "   ")
	require.NoError(t, err)

	trip, err := s.GetTrip(id)
	require.NoError(t, err)
	assert.Empty(t, trip.Itinerario[0].Puntos)
}

func TestStopDeleteConfirms(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := createTrip(t, s)

	_, err := execute(t, s, nil, "", "stop", "add", id, "--day", "1", "--place", "Planta A")
	require.NoError(t, err)

	trip, _ := s.GetTrip(id)
	stopID := trip.Itinerario[0].Puntos[0].ID

	out, err := execute(t, s, nil, "n\n", "stop", "delete", id, stopID)
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")

	trip, _ = s.GetTrip(id)
	assert.Len(t, trip.Itinerario[0].Puntos, 1)

	_, err = execute(t, s, nil, "y\n", "stop", "delete", id, stopID)
	require.NoError(t, err)

	trip, _ = s.GetTrip(id)
	assert.Empty(t, trip.Itinerario[0].Puntos)
}

func TestTripResizeShrinkNeedsConfirmation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := createTrip(t, s)

	out, err := execute(t, s, nil, "n\n", "trip", "resize", id, "--days", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")

	trip, _ := s.GetTrip(id)
	assert.Len(t, trip.Itinerario, 3, "declining the prompt changes nothing")

	_, err = execute(t, s, nil, "y\n", "trip", "resize", id, "--days", "1")
	require.NoError(t, err)

	trip, _ = s.GetTrip(id)
	assert.Len(t, trip.Itinerario, 1)
}

func TestTripResizeGrowNeedsNoConfirmation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := createTrip(t, s)

	_, err := execute(t, s, nil, "", "trip", "resize", id, "--days", "5")
	require.NoError(t, err)

	trip, _ := s.GetTrip(id)
	require.Len(t, trip.Itinerario, 5)
	assert.Equal(t, "2026-03-14", trip.Itinerario[4].Fecha)
}

func TestTripResizeClampsNonPositiveDays(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := createTrip(t, s)

	out, err := execute(t, s, nil, "y\n", "trip", "resize", id, "--days", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "shrinking to 1 day")

	trip, _ := s.GetTrip(id)
	require.Len(t, trip.Itinerario, 1)
	assert.Equal(t, "2026-03-10", trip.Itinerario[0].Fecha)

	_, err = execute(t, s, nil, "", "trip", "resize", id, "--days", "0")
	require.NoError(t, err)

	trip, _ = s.GetTrip(id)
	assert.Len(t, trip.Itinerario, 1, "zero clamps to one day, nothing to drop")
}

func TestReadOnlyTripRejectsEdits(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	require.NoError(t, s.UpsertTrip(model.Trip{
		ID:       "imported-1",
		Titulo:   "Importado",
		ReadOnly: true,
		Itinerario: []model.Day{
			{Dia: 1, Fecha: "2026-03-10", Puntos: []model.Stop{{ID: "p1", Lugar: "Planta", Hora: "09:00"}}},
		},
	}))

	_, err := execute(t, s, nil, "", "stop", "add", "imported-1", "--day", "1", "--place", "Nueva")
	assert.ErrorIs(t, err, apperrors.ErrReadOnlyTrip)

	_, err = execute(t, s, nil, "", "stop", "done", "imported-1", "p1")
	assert.ErrorIs(t, err, apperrors.ErrReadOnlyTrip)

	_, err = execute(t, s, nil, "y\n", "trip", "resize", "imported-1", "--days", "2")
	assert.ErrorIs(t, err, apperrors.ErrReadOnlyTrip)
}

func TestWipeNeedsTwoConfirmations(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	createTrip(t, s)

	out, err := execute(t, s, nil, "y\nn\n", "wipe")
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")
	assert.Len(t, s.LoadTrips(), 1, "a single yes never wipes")

	_, err = execute(t, s, nil, "y\ny\n", "wipe")
	require.NoError(t, err)
	assert.Empty(t, s.LoadTrips())
}

func TestServerSet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := execute(t, s, nil, "", "server", "set", "http://erp.local:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://erp.local:8080", s.ServerURL(), "trailing slash is trimmed")

	_, err = execute(t, s, nil, "", "server", "set", "erp.local")
	assert.Error(t, err, "an address without a scheme is rejected")
}

func TestProfileLink(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	api := erp.NewMockAPI(ctrl)
	s := newTestStore(t)

	api.EXPECT().
		Employee(gomock.Any(), "E100").
		Return(model.Employee{CveEmple: "E100", Descri: "Ana Torres"}, nil)

	out, err := execute(t, s, api, "", "profile", "link", "E100")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Torres")

	emp := s.Employee()
	require.NotNil(t, emp)
	assert.Equal(t, "E100", emp.CveEmple)

	_, err = execute(t, s, api, "", "profile", "unlink")
	require.NoError(t, err)
	assert.Nil(t, s.Employee())
}

func TestCategoriesListing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	api := erp.NewMockAPI(ctrl)
	s := newTestStore(t)

	api.EXPECT().Categories(gomock.Any()).Return(erp.FallbackCategories(), nil)

	out, err := execute(t, s, api, "", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "VJ01")
	assert.Contains(t, out, "Transporte")
}

func TestStopAddResolvesCategory(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	api := erp.NewMockAPI(ctrl)
	s := newTestStore(t)
	id := createTrip(t, s)

	api.EXPECT().Categories(gomock.Any()).Return(erp.FallbackCategories(), nil).Times(2)

	_, err := execute(t, s, api, "", "stop", "add", id,
		"--day", "1", "--place", "Hotel Centro", "--category", "vj02")
	require.NoError(t, err)

	trip, _ := s.GetTrip(id)
	require.Len(t, trip.Itinerario[0].Puntos, 1)
	assert.Equal(t, "VJ02", trip.Itinerario[0].Puntos[0].Categoria, "keys match ignoring case")

	_, err = execute(t, s, api, "", "stop", "add", id,
		"--day", "1", "--place", "Otro", "--category", "VJ99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")

	trip, _ = s.GetTrip(id)
	assert.Len(t, trip.Itinerario[0].Puntos, 1, "an unknown category blocks the save")
}

func TestPlacesCommand(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "monterrey", r.URL.Query().Get("q"))
		fmt.Fprint(w, `[{"display_name":"Monterrey, Nuevo León, México","lat":"25.6866","lon":"-100.3161"}]`)
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	env := &Env{
		Config:   &config.Config{},
		Store:    newTestStore(t),
		Searcher: places.NewSearcher(srv.URL, srv.Client()),
		Out:      out,
		In:       strings.NewReader(""),
		Now:      func() time.Time { return testNow },
	}

	root := New(env)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"places", "monterrey"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Monterrey")
	assert.Contains(t, out.String(), "25.68660")
}

func TestTripShow(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := createTrip(t, s)

	_, err := execute(t, s, nil, "", "stop", "add", id, "--day", "1", "--place", "Planta A", "--cost", "110")
	require.NoError(t, err)

	out, err := execute(t, s, nil, "", "trip", "show", id)
	require.NoError(t, err)

	assert.Contains(t, out, "Gira Norte")
	assert.Contains(t, out, "Planta A")
	assert.Contains(t, out, "110.00 of 100.00")
}

func TestTripShowUnknown(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := execute(t, s, nil, "", "trip", "show", "nope")
	assert.ErrorIs(t, err, apperrors.ErrTripNotFound)
}
