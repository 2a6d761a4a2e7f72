package model

// TripPayload is the flat wire shape POST /viajes expects. The
// day-based itinerary is flattened into Paradas by the sync engine.
type TripPayload struct {
	CveEmple    string        `json:"cve_emple"`
	UUIDMovil   string        `json:"uuid_movil"`
	Titulo      string        `json:"titulo"`
	FechaInicio string        `json:"fecha_inicio"`
	Presupuesto float64       `json:"presupuesto"`
	Paradas     []StopPayload `json:"paradas"`
}

// StopPayload is one flattened stop. HoraRegistro is the submission
// timestamp, not the stop's scheduled Hora.
type StopPayload struct {
	Lugar        string     `json:"lugar"`
	Hora         string     `json:"hora"`
	Monto        float64    `json:"monto"`
	CveCatVJ     string     `json:"cve_catvj"`
	Facturable   bool       `json:"facturable"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	Descripcion  string     `json:"descripcion"`
	Evidencias   []Evidence `json:"evidencias"`
	Notas        string     `json:"notas"`
	HoraRegistro string     `json:"hora_registro"`
}

// Evidence is one uploaded file reference in the sync payload. The
// builder never emits an entry with an empty URLArchivo.
type Evidence struct {
	TipoArchivo string `json:"tipo_archivo"`
	URLArchivo  string `json:"url_archivo"`
	Fuente      string `json:"fuente"`
}

// UserProfile is the locally stored profile blob.
type UserProfile struct {
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	Photo    string          `json:"photo,omitempty"`
	Settings ProfileSettings `json:"settings"`
}

// ProfileSettings holds the device preference toggles.
type ProfileSettings struct {
	Haptics       bool `json:"haptics"`
	Notifications bool `json:"notifications"`
}

// DefaultProfile returns the profile used before the user saves one.
func DefaultProfile() UserProfile {
	return UserProfile{
		Currency: "USD",
		Settings: ProfileSettings{Haptics: true, Notifications: true},
	}
}
