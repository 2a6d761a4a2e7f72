package itinerary

import (
	"strconv"
	"strings"

	"github.com/ravenerp/journey-sync/internal/model"
)

// EditorState carries an in-progress stop edit as raw text fields, so
// a half-typed cost or time survives until the user commits. Stop
// converts it into a model.Stop; validation happens at commit, not
// while typing.
type EditorState struct {
	StopID      string
	Dia         int
	Lugar       string
	Hora        string
	Costo       string
	Descripcion string
	Categoria   string
	Facturable  bool
	Coords      *model.Coords
	Fotos       []string
}

// EditorFor seeds the editor from an existing stop.
func EditorFor(dia int, stop model.Stop) EditorState {
	costo := ""
	if stop.Costo != 0 {
		costo = strconv.FormatFloat(stop.Costo, 'f', -1, 64)
	}

	return EditorState{
		StopID:      stop.ID,
		Dia:         dia,
		Lugar:       stop.Lugar,
		Hora:        stop.Hora,
		Costo:       costo,
		Descripcion: stop.Descripcion,
		Categoria:   stop.Categoria,
		Facturable:  stop.Facturable,
		Coords:      stop.Coords,
		Fotos:       stop.Fotos,
	}
}

// ParsedCost interprets the raw cost field. Blank or unparseable
// input reads as zero, matching how an abandoned cost field behaves.
func (e EditorState) ParsedCost() float64 {
	raw := strings.TrimSpace(e.Costo)
	if raw == "" {
		return 0
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}

	return v
}

// Stop materializes the editor into a stop, generating an id with
// newID when the editor does not already carry one.
func (e EditorState) Stop(newID func() string) model.Stop {
	id := e.StopID
	if id == "" {
		id = newID()
	}

	hora := e.Hora
	if hora == "" {
		hora = DefaultStopTime
	}

	return model.Stop{
		ID:          id,
		Lugar:       strings.TrimSpace(e.Lugar),
		Hora:        hora,
		Costo:       e.ParsedCost(),
		Descripcion: strings.TrimSpace(e.Descripcion),
		Categoria:   e.Categoria,
		Facturable:  e.Facturable,
		Coords:      e.Coords,
		Fotos:       e.Fotos,
	}
}
