package models

// SearchResponse resultado de la búsqueda de un invitado.
// AsistenciaConfirmada solo es true si el invitado y todos sus
// acompañantes están confirmados.
type SearchResponse struct {
	Invitado             Invitado `json:"invitado"`
	TotalPersonas        int      `json:"total_personas"`
	AsistenciaConfirmada bool     `json:"asistencia_confirmada"`
}

// ConfirmarAsistenciaRequest petición de confirmación para un invitado
// y un subconjunto de sus acompañantes.
type ConfirmarAsistenciaRequest struct {
	InvitadoID      uint   `json:"invitado_id"`
	AcompanantesIDs []uint `json:"acompanantes_ids"`
}

// ConfirmarAsistenciaResponse resultado de una confirmación.
// PersonasConfirmadas cuenta solo las transiciones reales false→true
// de esta llamada; cero es un éxito válido (todo estaba confirmado).
type ConfirmarAsistenciaResponse struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	PersonasConfirmadas int    `json:"personas_confirmadas"`
}

// Stats agregados de asistencia para el dashboard.
type Stats struct {
	TotalInvitados          int64 `json:"total_invitados"`
	InvitadosConfirmados    int64 `json:"invitados_confirmados"`
	TotalAcompanantes       int64 `json:"total_acompanantes"`
	AcompanantesConfirmados int64 `json:"acompanantes_confirmados"`
	TotalPersonas           int64 `json:"total_personas"`
	PersonasConfirmadas     int64 `json:"personas_confirmadas"`
}

// EliminadosResult conteo de registros borrados por el borrado masivo.
type EliminadosResult struct {
	Invitados    int64 `json:"invitados"`
	Acompanantes int64 `json:"acompanantes"`
	Logs         int64 `json:"logs"`
}

// ImportResult resumen de una importación de Excel.
type ImportResult struct {
	InvitadosCreados     int      `json:"invitados_creados"`
	InvitadosOmitidos    int      `json:"invitados_omitidos"`
	AcompanantesCreados  int      `json:"acompanantes_creados"`
	AcompanantesOmitidos int      `json:"acompanantes_omitidos"`
	HojasProcesadas      []string `json:"hojas_procesadas"`
}
