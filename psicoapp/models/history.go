package models

import (
	"errors"
	"time"
)

const HistoryURL = "/rest/v1/historias_clinicas"

// ClinicalHistory is one dated clinical entry tied to a patient. Estado marks
// the record as active (true) or closed (false); a closed record is read-only
// in the history form.
type ClinicalHistory struct {
	ID            string    `json:"id"`
	PacienteID    string    `json:"paciente_id"`
	UserID        string    `json:"user_id"`
	Diagnostico   string    `json:"diagnostico"`
	Tratamiento   string    `json:"tratamiento,omitempty"`
	Observaciones string    `json:"observaciones,omitempty"`
	FechaRegistro string    `json:"fecha_registro"`
	Estado        bool      `json:"estado"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Normalize checks a history row received from the backend. The registration
// date is defaulted to the row's creation day when the column is empty.
func (h *ClinicalHistory) Normalize() error {
	if h.ID == "" {
		return errors.New("history row is missing the id field")
	}
	if h.PacienteID == "" {
		return errors.New("history row is missing the paciente_id field")
	}
	if h.Diagnostico == "" {
		return errors.New("history row is missing the diagnostico field")
	}
	if h.FechaRegistro == "" {
		h.FechaRegistro = h.CreatedAt.Format("2006-01-02")
	}
	return nil
}
