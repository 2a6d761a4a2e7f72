// Package itinerary holds the pure transforms over a trip's day list:
// resizing when the declared duration changes, and stop edits that
// preserve the time-sorted invariant. Nothing here performs I/O or
// asks for confirmation; destructive callers confirm first and then
// invoke the transform.
package itinerary

import (
	"sort"
	"strings"
	"time"

	"github.com/ravenerp/journey-sync/internal/model"
)

// DefaultStopTime is the prefilled time for a new stop.
const DefaultStopTime = "10:00"

// Resize produces a new day list of exactly newDuration days starting
// at startDate. Days that still exist keep their stops; new days are
// empty; days beyond the new duration are discarded. Shrinking is
// destructive and irreversible, and callers must obtain explicit user
// confirmation before invoking it. newDuration below 1 is clamped to 1.
func Resize(newDuration int, startDate time.Time, existing []model.Day) []model.Day {
	if newDuration < 1 {
		newDuration = 1
	}

	days := make([]model.Day, newDuration)

	for i := 0; i < newDuration; i++ {
		days[i] = model.Day{
			Dia:    i + 1,
			Fecha:  startDate.AddDate(0, 0, i).Format(model.DateLayout),
			Puntos: []model.Stop{},
		}

		if i < len(existing) {
			days[i].Puntos = existing[i].Puntos
		}
	}

	return days
}

// SortStops returns the stops ordered ascending by Hora. The format
// is fixed-width "HH:MM", so plain string comparison is correct. The
// sort is stable: stops sharing a time keep their insertion order.
func SortStops(puntos []model.Stop) []model.Stop {
	sorted := make([]model.Stop, len(puntos))
	copy(sorted, puntos)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Hora < sorted[j].Hora
	})

	return sorted
}

// AddStop inserts a stop into the day numbered dia, keeping the day
// sorted. An empty (or blank) Lugar blocks the save: the unmodified
// itinerary is returned with ok=false. A missing day also no-ops.
func AddStop(days []model.Day, dia int, stop model.Stop) ([]model.Day, bool) {
	stop.Lugar = strings.TrimSpace(stop.Lugar)
	if stop.Lugar == "" {
		return days, false
	}

	if stop.Hora == "" {
		stop.Hora = DefaultStopTime
	}

	out := cloneDays(days)

	for i := range out {
		if out[i].Dia == dia {
			out[i].Puntos = SortStops(append(out[i].Puntos, stop))
			return out, true
		}
	}

	return days, false
}

// UpdateStop replaces the stop with the matching id wherever it
// lives, re-sorting its day. A blank Lugar blocks the save. The
// stop's day assignment never changes on edit.
func UpdateStop(days []model.Day, stopID string, lugar, hora, descripcion string, costo float64) ([]model.Day, bool) {
	lugar = strings.TrimSpace(lugar)
	if lugar == "" {
		return days, false
	}

	out := cloneDays(days)

	for i := range out {
		for j := range out[i].Puntos {
			if out[i].Puntos[j].ID != stopID {
				continue
			}

			out[i].Puntos[j].Lugar = lugar
			out[i].Puntos[j].Descripcion = strings.TrimSpace(descripcion)
			out[i].Puntos[j].Costo = costo

			if hora != "" {
				out[i].Puntos[j].Hora = hora
			}

			out[i].Puntos = SortStops(out[i].Puntos)

			return out, true
		}
	}

	return days, false
}

// ToggleStop flips the completado flag of the stop with the given id.
func ToggleStop(days []model.Day, stopID string) ([]model.Day, bool) {
	out := cloneDays(days)

	for i := range out {
		for j := range out[i].Puntos {
			if out[i].Puntos[j].ID == stopID {
				out[i].Puntos[j].Completado = !out[i].Puntos[j].Completado
				return out, true
			}
		}
	}

	return days, false
}

// DeleteStop removes the stop with the given id. Callers confirm
// before invoking; the transform itself is unconditional.
func DeleteStop(days []model.Day, stopID string) ([]model.Day, bool) {
	out := cloneDays(days)

	for i := range out {
		for j := range out[i].Puntos {
			if out[i].Puntos[j].ID == stopID {
				out[i].Puntos = append(out[i].Puntos[:j:j], out[i].Puntos[j+1:]...)
				return out, true
			}
		}
	}

	return days, false
}

func cloneDays(days []model.Day) []model.Day {
	out := make([]model.Day, len(days))
	copy(out, days)

	for i := range out {
		puntos := make([]model.Stop, len(out[i].Puntos))
		copy(puntos, out[i].Puntos)
		out[i].Puntos = puntos
	}

	return out
}
