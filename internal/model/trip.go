// Package model holds the domain types shared by the store, the sync
// engine, and the ERP client. JSON tags follow the ERP's Spanish wire
// names so local persistence and the remote payloads stay aligned.
package model

import (
	"strconv"
	"time"
)

// DateLayout is the wire format for all trip dates (date only).
const DateLayout = "2006-01-02"

// Trip is a locally-owned travel plan. The local id is generated on
// the device and stays stable for the life of the record; ERPID is
// assigned by the server on first successful sync.
type Trip struct {
	ID           string  `json:"id"`
	Titulo       string  `json:"titulo_viaje"`
	ColorAcento  string  `json:"color_acento"`
	Presupuesto  float64 `json:"presupuesto_total"`
	FechaInicio  string  `json:"fecha_inicio"`
	Itinerario   []Day   `json:"itinerario"`
	ERPID        string  `json:"erp_id,omitempty"`
	UUIDMovil    string  `json:"uuid_movil,omitempty"`
	Sincronizado bool    `json:"sincronizado"`
	ReadOnly     bool    `json:"readonly"`
	Propietario  string  `json:"propietario,omitempty"`
	NotasERP     []Note  `json:"notas_erp,omitempty"`
	UltimaSync   string  `json:"ultima_sync,omitempty"`
}

// Day is one itinerary day. Days are owned exclusively by their trip
// and are recreated, not mutated in place, whenever duration changes.
type Day struct {
	Dia    int    `json:"dia"`
	Fecha  string `json:"fecha"`
	Puntos []Stop `json:"puntos"`
}

// Stop is a scheduled point within a day. Within a day, stops are
// kept sorted ascending by Hora (fixed-width "HH:MM", so lexicographic
// comparison is correct).
type Stop struct {
	ID          string   `json:"id"`
	Lugar       string   `json:"lugar"`
	Hora        string   `json:"hora"`
	Costo       float64  `json:"costo"`
	Descripcion string   `json:"descripcion"`
	Completado  FlexBool `json:"completado"`
	Coords      *Coords  `json:"coords,omitempty"`
	Fotos       []string `json:"fotos,omitempty"`
	Categoria   string   `json:"categoria,omitempty"`
	Facturable  bool     `json:"facturable"`
	Notas       string   `json:"notas,omitempty"`
}

// Coords is a WGS84 point attached to a stop.
type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NoteType classifies an ERP note.
type NoteType string

const (
	NoteGeneral    NoteType = "General"
	NoteIncidencia NoteType = "Incidencia"
	NoteChecklist  NoteType = "Checklist"
)

// Note is an ERP-side annotation on a trip. Notes are editable only
// while the trip has not been synchronized.
type Note struct {
	ID        string   `json:"id"`
	Titulo    string   `json:"titulo"`
	Contenido string   `json:"contenido"`
	TipoNota  NoteType `json:"tipo_nota"`
}

// Category is one entry of the stop-category catalog served by the ERP.
type Category struct {
	CveCatVJ string `json:"cve_catvj" yaml:"cve_catvj"`
	Nombre   string `json:"nombre" yaml:"nombre"`
	Icon     string `json:"icon" yaml:"icon"`
}

// Employee is the ERP identity a device links to before syncing.
type Employee struct {
	CveEmple string `json:"cve_emple"`
	Descri   string `json:"descri"`
	Depto    string `json:"depto,omitempty"`
}

// NewLocalID returns a device-local identifier. Millisecond timestamps
// match the ids the historical clients generated, so imported and
// locally-created trips share one id space.
func NewLocalID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// StopCount returns the number of stops across all days.
func (t *Trip) StopCount() int {
	n := 0
	for _, d := range t.Itinerario {
		n += len(d.Puntos)
	}

	return n
}

// FindStop returns the day index and stop index for a stop id, or
// (-1, -1) when the id is not present.
func (t *Trip) FindStop(stopID string) (dayIdx, stopIdx int) {
	for i, d := range t.Itinerario {
		for j, p := range d.Puntos {
			if p.ID == stopID {
				return i, j
			}
		}
	}

	return -1, -1
}
