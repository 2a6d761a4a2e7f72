// Package sync pushes local trips to the ERP and pulls remote trips
// into the local store. The payload builder and the import merge are
// pure; the Syncer and Importer wrap them with storage and network
// calls.
package sync

import (
	"path"
	"sort"
	"strings"
	"time"

	"github.com/ravenerp/journey-sync/internal/model"
)

const (
	// RegistroLayout is the timestamp format for hora_registro.
	RegistroLayout = "2006-01-02 15:04:05"

	// LastSyncLayout is the human-readable last-sync stamp kept on
	// the local trip.
	LastSyncLayout = "02/01/2006 15:04"

	// evidenceSource marks uploads as coming from the mobile client.
	evidenceSource = "movil"
)

// IsLocalURI reports whether a photo URI still points at the device:
// a file scheme, or a bare path with no scheme at all. Anything else
// already lives on a server and is sent as-is.
func IsLocalURI(uri string) bool {
	if strings.HasPrefix(uri, "file://") {
		return true
	}

	return !strings.Contains(uri, "://")
}

// PartitionPhotos splits a stop's photos into device-local URIs that
// still need uploading and URLs that are already remote. Relative
// order within each group is preserved.
func PartitionPhotos(fotos []string) (local, remote []string) {
	for _, f := range fotos {
		if f == "" {
			continue
		}

		if IsLocalURI(f) {
			local = append(local, f)
		} else {
			remote = append(remote, f)
		}
	}

	return local, remote
}

// EvidenceType derives tipo_archivo from a URL's extension. Anything
// that is not a PDF counts as an image.
func EvidenceType(url string) string {
	if strings.EqualFold(path.Ext(url), ".pdf") {
		return "pdf"
	}

	return "imagen"
}

// BuildPayload flattens a trip's day tree into the ERP's wire shape.
// Paradas come out ordered by day and then by hora within the day.
// Photo URIs must already be remote URLs; entries without a URL are
// dropped rather than sent as null evidencias. now stamps every stop
// with the submission time.
func BuildPayload(trip model.Trip, emp model.Employee, now time.Time) model.TripPayload {
	registro := now.Format(RegistroLayout)

	payload := model.TripPayload{
		CveEmple:    emp.CveEmple,
		UUIDMovil:   trip.UUIDMovil,
		Titulo:      trip.Titulo,
		FechaInicio: trip.FechaInicio,
		Presupuesto: trip.Presupuesto,
		Paradas:     []model.StopPayload{},
	}

	for _, day := range trip.Itinerario {
		puntos := make([]model.Stop, len(day.Puntos))
		copy(puntos, day.Puntos)
		sort.SliceStable(puntos, func(i, j int) bool { return puntos[i].Hora < puntos[j].Hora })

		for _, p := range puntos {
			stop := model.StopPayload{
				Lugar:        p.Lugar,
				Hora:         p.Hora,
				Monto:        p.Costo,
				CveCatVJ:     p.Categoria,
				Facturable:   p.Facturable,
				Descripcion:  p.Descripcion,
				Notas:        p.Notas,
				HoraRegistro: registro,
				Evidencias:   []model.Evidence{},
			}

			if p.Coords != nil {
				stop.Lat = p.Coords.Latitude
				stop.Lng = p.Coords.Longitude
			}

			for _, foto := range p.Fotos {
				if foto == "" {
					continue
				}

				stop.Evidencias = append(stop.Evidencias, model.Evidence{
					TipoArchivo: EvidenceType(foto),
					URLArchivo:  foto,
					Fuente:      evidenceSource,
				})
			}

			payload.Paradas = append(payload.Paradas, stop)
		}
	}

	return payload
}
