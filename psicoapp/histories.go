package psicoapp

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/psicoapp/psicoapp-connector-go/internals/http"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

// historyPayload is the writable column set of the historias_clinicas table.
type historyPayload struct {
	ID            string `json:"id,omitempty"`
	PacienteID    string `json:"paciente_id,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	Diagnostico   string `json:"diagnostico"`
	Tratamiento   string `json:"tratamiento,omitempty"`
	Observaciones string `json:"observaciones,omitempty"`
	FechaRegistro string `json:"fecha_registro,omitempty"`
	Estado        bool   `json:"estado"`
}

func historyPayloadFrom(h models.ClinicalHistory) historyPayload {
	return historyPayload{
		ID:            h.ID,
		PacienteID:    h.PacienteID,
		UserID:        h.UserID,
		Diagnostico:   h.Diagnostico,
		Tratamiento:   h.Tratamiento,
		Observaciones: h.Observaciones,
		FechaRegistro: h.FechaRegistro,
		Estado:        h.Estado,
	}
}

// ListHistoriesForPatient returns all clinical histories of one patient,
// newest registration date first.
func (a *App) ListHistoriesForPatient(patientID string) ([]models.ClinicalHistory, error) {
	path := models.HistoryURL + "?" + http.NewQuery().Select("*").Eq("paciente_id", patientID).OrderDesc("fecha_registro").Encode()
	var histories []models.ClinicalHistory
	if err := a.Client.GetAndParse(path, &histories); err != nil {
		return nil, a.dataErr("list histories", err)
	}
	for i := range histories {
		if err := histories[i].Normalize(); err != nil {
			return nil, fmt.Errorf("list histories: %w", err)
		}
	}
	return histories, nil
}

// GetHistoryByID fetches a single clinical history record.
func (a *App) GetHistoryByID(id string) (*models.ClinicalHistory, error) {
	path := models.HistoryURL + "?" + http.NewQuery().Select("*").Eq("id", id).Limit(1).Encode()
	var histories []models.ClinicalHistory
	if err := a.Client.GetAndParse(path, &histories); err != nil {
		return nil, a.dataErr("get history", err)
	}
	if len(histories) == 0 {
		return nil, fmt.Errorf("get history %s: %w", id, ErrNotFound)
	}
	history := histories[0]
	if err := history.Normalize(); err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return &history, nil
}

// CreateHistory inserts a new clinical history record. The registration date
// defaults to the current day and the authoring clinician to the session user.
func (a *App) CreateHistory(history models.ClinicalHistory) (*models.ClinicalHistory, error) {
	if history.PacienteID == "" {
		return nil, fmt.Errorf("create history: paciente_id is required")
	}
	if history.ID == "" {
		history.ID = uuid.New().String()
	}
	if history.UserID == "" && a.session != nil {
		history.UserID = a.session.UserID
	}
	if history.FechaRegistro == "" {
		history.FechaRegistro = time.Now().Format("2006-01-02")
	}

	body, err := http.JSONBody(historyPayloadFrom(history))
	if err != nil {
		return nil, err
	}
	var created []models.ClinicalHistory
	if err := a.Client.PostAndParse(models.HistoryURL, body, &created); err != nil {
		return nil, a.dataErr("create history", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("create history: backend returned no row")
	}
	row := created[0]
	if err := row.Normalize(); err != nil {
		return nil, fmt.Errorf("create history: %w", err)
	}
	return &row, nil
}

// UpdateHistory updates the record matching the identifier with a single
// atomic round-trip and returns the updated row.
func (a *App) UpdateHistory(history models.ClinicalHistory) (*models.ClinicalHistory, error) {
	if history.ID == "" {
		return nil, fmt.Errorf("update history: id is required")
	}
	payload := historyPayloadFrom(history)
	payload.ID = ""
	payload.PacienteID = ""
	payload.UserID = ""
	body, err := http.JSONBody(payload)
	if err != nil {
		return nil, err
	}

	path := models.HistoryURL + "?" + http.NewQuery().Eq("id", history.ID).Encode()
	var updated []models.ClinicalHistory
	if err := a.Client.PatchAndParse(path, body, &updated); err != nil {
		return nil, a.dataErr("update history", err)
	}
	if len(updated) == 0 {
		return nil, fmt.Errorf("update history %s: %w", history.ID, ErrNotFound)
	}
	row := updated[0]
	if err := row.Normalize(); err != nil {
		return nil, fmt.Errorf("update history: %w", err)
	}
	return &row, nil
}

// DeleteHistory removes the record matching the identifier.
func (a *App) DeleteHistory(id string) error {
	path := models.HistoryURL + "?" + http.NewQuery().Eq("id", id).Encode()
	if err := a.Client.DeleteAndCheck(path); err != nil {
		return a.dataErr("delete history", err)
	}
	return nil
}
