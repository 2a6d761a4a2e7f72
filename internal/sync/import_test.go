package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/ravenerp/journey-sync/internal/errors"
	"github.com/ravenerp/journey-sync/internal/erp"
	"github.com/ravenerp/journey-sync/internal/model"
)

func newTestImporter(s Store, api erp.API) *Importer {
	imp := NewImporter(s, api, nil)
	imp.now = func() time.Time { return testNow }

	nextID := 0
	imp.newID = func(time.Time) string {
		nextID++

		return model.NewLocalID(testNow.Add(time.Duration(nextID) * time.Second))
	}

	return imp
}

func remoteTrip() *model.RemoteTrip {
	return &model.RemoteTrip{
		ID:            "77",
		Titulo:        "Gira Norte",
		FechaInicio:   "2026-02-01",
		Presupuesto:   1500,
		UUIDMovil:     "uuid-abc",
		NombreUsuario: "Luis",
		Paradas: []model.RemoteStop{
			{Fecha: "2026-02-02", Lugar: "Regreso", Hora: "08:00", Monto: 50},
			{Fecha: "2026-02-01", Lugar: "Planta A", Hora: "09:00", Monto: 120.5},
		},
	}
}

func TestImport(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	api := erp.NewMockAPI(ctrl)
	s := newTestStore(t)

	api.EXPECT().Trip(gomock.Any(), "77").Return(remoteTrip(), nil)

	imported, err := newTestImporter(s, api).Import(context.Background(), "77")
	require.NoError(t, err)

	assert.Equal(t, "77", imported.ERPID)
	assert.NotEqual(t, "77", imported.ID, "local id is freshly generated")
	assert.True(t, imported.ReadOnly)
	assert.True(t, imported.Sincronizado)
	assert.Equal(t, "Luis", imported.Propietario)

	require.Len(t, imported.Itinerario, 2, "remote stops are grouped by date")
	assert.Equal(t, 1, imported.Itinerario[0].Dia)
	assert.Equal(t, "2026-02-01", imported.Itinerario[0].Fecha)
	assert.Equal(t, "Planta A", imported.Itinerario[0].Puntos[0].Lugar)
	assert.Equal(t, "Regreso", imported.Itinerario[1].Puntos[0].Lugar)

	for _, day := range imported.Itinerario {
		for _, p := range day.Puntos {
			assert.NotEmpty(t, p.ID, "stops without a remote id get a local one")
		}
	}

	trips := s.LoadTrips()
	require.Len(t, trips, 1)
	assert.Equal(t, imported, trips[0])
}

func TestImportTwiceKeepsOneCopy(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	api := erp.NewMockAPI(ctrl)
	s := newTestStore(t)

	require.NoError(t, s.UpsertTrip(model.Trip{ID: "1600000000000", Titulo: "Otro viaje"}))

	api.EXPECT().Trip(gomock.Any(), "77").Return(remoteTrip(), nil).Times(2)

	imp := newTestImporter(s, api)

	_, err := imp.Import(context.Background(), "77")
	require.NoError(t, err)

	second, err := imp.Import(context.Background(), "77")
	require.NoError(t, err)

	trips := s.LoadTrips()
	require.Len(t, trips, 2, "re-import replaces the previous copy and spares unrelated trips")
	assert.Equal(t, "Otro viaje", trips[0].Titulo)
	assert.Equal(t, second.ID, trips[1].ID)
}

func TestImportFetchFailureLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	api := erp.NewMockAPI(ctrl)
	s := newTestStore(t)

	require.NoError(t, s.UpsertTrip(model.Trip{ID: "1600000000000", Titulo: "Otro viaje"}))

	api.EXPECT().Trip(gomock.Any(), "404").Return(nil, apperrors.ErrTripNotFound)

	_, err := newTestImporter(s, api).Import(context.Background(), "404")
	require.ErrorIs(t, err, apperrors.ErrTripNotFound)

	require.Len(t, s.LoadTrips(), 1)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	api := erp.NewMockAPI(ctrl)
	s := newTestStore(t)

	require.NoError(t, s.UpsertTrip(model.Trip{ID: "1600000000000", Titulo: "Versión vieja", ERPID: "77", ReadOnly: true, Sincronizado: true}))

	api.EXPECT().Trip(gomock.Any(), "77").Return(remoteTrip(), nil)

	refreshed, err := newTestImporter(s, api).Refresh(context.Background(), "1600000000000")
	require.NoError(t, err)

	assert.Equal(t, "1600000000000", refreshed.ID, "refresh keeps the local id")
	assert.Equal(t, "Gira Norte", refreshed.Titulo)

	trips := s.LoadTrips()
	require.Len(t, trips, 1)
	assert.Equal(t, refreshed, trips[0])
}

func TestRefreshRequiresRemoteIdentity(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	s := newTestStore(t)

	require.NoError(t, s.UpsertTrip(model.Trip{ID: "1600000000000", Titulo: "Local"}))

	_, err := newTestImporter(s, erp.NewMockAPI(ctrl)).Refresh(context.Background(), "1600000000000")
	assert.ErrorIs(t, err, apperrors.ErrNotImported)
}

func TestMergeImportedTrip(t *testing.T) {
	t.Parallel()

	imported := model.Trip{ID: "local-new", ERPID: "77", UUIDMovil: "uuid-abc", ReadOnly: true}

	tests := []struct {
		name         string
		locals       []model.Trip
		wantReplaced int
		wantKept     []string
	}{
		{
			name:         "no locals",
			locals:       nil,
			wantReplaced: 0,
			wantKept:     []string{"local-new"},
		},
		{
			name: "replaces by remote id",
			locals: []model.Trip{
				{ID: "a", ERPID: "77"},
				{ID: "b"},
			},
			wantReplaced: 1,
			wantKept:     []string{"b", "local-new"},
		},
		{
			name: "replaces by mobile uuid",
			locals: []model.Trip{
				{ID: "a", UUIDMovil: "uuid-abc"},
			},
			wantReplaced: 1,
			wantKept:     []string{"local-new"},
		},
		{
			name: "replaces by local id colliding with the remote id",
			locals: []model.Trip{
				{ID: "77"},
			},
			wantReplaced: 1,
			wantKept:     []string{"local-new"},
		},
		{
			name: "empty uuids never match each other",
			locals: []model.Trip{
				{ID: "a"},
			},
			wantReplaced: 0,
			wantKept:     []string{"a", "local-new"},
		},
		{
			name: "any single matching key is enough",
			locals: []model.Trip{
				{ID: "a", ERPID: "77", UUIDMovil: "uuid-totally-different"},
			},
			wantReplaced: 1,
			wantKept:     []string{"local-new"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			merged, replaced := MergeImportedTrip(tc.locals, imported)

			assert.Equal(t, tc.wantReplaced, replaced)

			ids := make([]string, len(merged))
			for i, tr := range merged {
				ids[i] = tr.ID
			}

			assert.Equal(t, tc.wantKept, ids)
		})
	}
}
