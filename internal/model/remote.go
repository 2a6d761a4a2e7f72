package model

import (
	"sort"
	"time"
)

// DefaultAccentColor is used when a remote trip carries no accent color.
const DefaultAccentColor = "#00FF41"

// ImportedTitleFallback is used when a remote trip has no title.
const ImportedTitleFallback = "Viaje Importado"

// ImportedOwnerFallback is shown when the remote trip has no owner name.
const ImportedOwnerFallback = "Otro técnico"

// RemoteTrip is a trip as fetched from GET /viajes/{id}. Fields are
// extracted one by one by the ERP client rather than unmarshalled
// wholesale, so schema drift on the server cannot leak unknown fields
// into local records.
type RemoteTrip struct {
	ID            string
	Titulo        string
	FechaInicio   string
	Presupuesto   float64
	UUIDMovil     string
	NombreUsuario string
	ColorAcento   string
	Paradas       []RemoteStop
	Notas         []Note
}

// RemoteStop is one entry of the ERP's flat stop list.
type RemoteStop struct {
	ID          string
	Fecha       string
	Lugar       string
	Hora        string
	Monto       float64
	Categoria   string
	Facturable  bool
	Lat         float64
	Lng         float64
	Descripcion string
	Notas       string
	Evidencias  []RemoteEvidence
}

// RemoteEvidence is an uploaded file reference attached to a remote stop.
type RemoteEvidence struct {
	TipoArchivo string
	URLArchivo  string
	Fuente      string
}

// TripFromRemote maps a remote trip into a local read-only record.
// localID is the freshly generated device id (navigation references
// stay independent of remote numbering); today provides the date
// fallback for stops that carry none.
func TripFromRemote(rt *RemoteTrip, localID string, today time.Time) Trip {
	titulo := rt.Titulo
	if titulo == "" {
		titulo = ImportedTitleFallback
	}

	color := rt.ColorAcento
	if color == "" {
		color = DefaultAccentColor
	}

	owner := rt.NombreUsuario
	if owner == "" {
		owner = ImportedOwnerFallback
	}

	return Trip{
		ID:           localID,
		Titulo:       titulo,
		ColorAcento:  color,
		Presupuesto:  rt.Presupuesto,
		FechaInicio:  rt.FechaInicio,
		Itinerario:   GroupRemoteStops(rt.Paradas, rt.FechaInicio, today),
		ERPID:        rt.ID,
		UUIDMovil:    rt.UUIDMovil,
		Sincronizado: true,
		ReadOnly:     true,
		Propietario:  owner,
		NotasERP:     rt.Notas,
	}
}

// GroupRemoteStops reshapes the ERP's flat stop list into the local
// day-based itinerary. Each distinct date becomes one day; days are
// ordered by ascending date string and numbered sequentially from 1.
// Stops without a date fall back to the trip start date, then today.
func GroupRemoteStops(paradas []RemoteStop, fechaInicio string, today time.Time) []Day {
	groups := make(map[string][]Stop)

	for _, p := range paradas {
		fecha := p.Fecha
		if fecha == "" {
			fecha = fechaInicio
		}

		if fecha == "" {
			fecha = today.Format(DateLayout)
		}

		groups[fecha] = append(groups[fecha], StopFromRemote(p))
	}

	dates := make([]string, 0, len(groups))
	for fecha := range groups {
		dates = append(dates, fecha)
	}

	sort.Strings(dates)

	days := make([]Day, 0, len(dates))

	for i, fecha := range dates {
		puntos := groups[fecha]
		sort.SliceStable(puntos, func(a, b int) bool {
			return puntos[a].Hora < puntos[b].Hora
		})

		days = append(days, Day{
			Dia:    i + 1,
			Fecha:  fecha,
			Puntos: puntos,
		})
	}

	return days
}

// StopFromRemote maps one ERP stop onto the local shape. Evidence
// URLs become plain photo URIs; entries without a URL are dropped.
func StopFromRemote(p RemoteStop) Stop {
	var fotos []string

	for _, e := range p.Evidencias {
		if e.URLArchivo != "" {
			fotos = append(fotos, e.URLArchivo)
		}
	}

	var coords *Coords
	if p.Lat != 0 || p.Lng != 0 {
		coords = &Coords{Latitude: p.Lat, Longitude: p.Lng}
	}

	return Stop{
		ID:          p.ID,
		Lugar:       p.Lugar,
		Hora:        p.Hora,
		Costo:       p.Monto,
		Descripcion: p.Descripcion,
		Coords:      coords,
		Fotos:       fotos,
		Categoria:   p.Categoria,
		Facturable:  p.Facturable,
		Notas:       p.Notas,
	}
}
