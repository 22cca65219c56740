package psicoapp

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/psicoapp/psicoapp-connector-go/internals/http"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

// patientPayload is the writable column set of the pacientes table. Keeping it
// separate from models.Patient stops the client from sending the server-owned
// timestamp columns on insert and update.
type patientPayload struct {
	ID              string     `json:"id,omitempty"`
	DNI             string     `json:"dni"`
	Nombre          string     `json:"nombre"`
	Apellido        string     `json:"apellido"`
	FechaNacimiento string     `json:"fecha_nacimiento"`
	Sexo            models.Sex `json:"sexo"`
	Telefono        string     `json:"telefono"`
	Correo          string     `json:"correo,omitempty"`
	UserID          string     `json:"user_id,omitempty"`
}

func patientPayloadFrom(p models.Patient) patientPayload {
	return patientPayload{
		ID:              p.ID,
		DNI:             p.DNI,
		Nombre:          p.Nombre,
		Apellido:        p.Apellido,
		FechaNacimiento: p.FechaNacimiento,
		Sexo:            p.Sexo,
		Telefono:        p.Telefono,
		Correo:          p.Correo,
		UserID:          p.UserID,
	}
}

// ListPatients returns all patients visible to the session, ordered by given
// name ascending.
func (a *App) ListPatients() ([]models.Patient, error) {
	path := models.PatientURL + "?" + http.NewQuery().Select("*").OrderAsc("nombre").Encode()
	var patients []models.Patient
	if err := a.Client.GetAndParse(path, &patients); err != nil {
		return nil, a.dataErr("list patients", err)
	}
	for i := range patients {
		if err := patients[i].Normalize(); err != nil {
			return nil, fmt.Errorf("list patients: %w", err)
		}
	}
	return patients, nil
}

// GetPatient fetches a single patient by identifier. A missing patient is an
// error, never a nil success.
func (a *App) GetPatient(id string) (*models.Patient, error) {
	path := models.PatientURL + "?" + http.NewQuery().Select("*").Eq("id", id).Limit(1).Encode()
	var patients []models.Patient
	if err := a.Client.GetAndParse(path, &patients); err != nil {
		return nil, a.dataErr("get patient", err)
	}
	if len(patients) == 0 {
		return nil, fmt.Errorf("get patient %s: %w", id, ErrNotFound)
	}
	patient := patients[0]
	if err := patient.Normalize(); err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &patient, nil
}

// CreatePatient inserts a new patient and returns the stored row. The
// identifier is generated client-side when the caller leaves it empty; the
// owning clinician defaults to the session user.
func (a *App) CreatePatient(patient models.Patient) (*models.Patient, error) {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if patient.UserID == "" && a.session != nil {
		patient.UserID = a.session.UserID
	}

	body, err := http.JSONBody(patientPayloadFrom(patient))
	if err != nil {
		return nil, err
	}
	var created []models.Patient
	if err := a.Client.PostAndParse(models.PatientURL, body, &created); err != nil {
		return nil, a.dataErr("create patient", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("create patient: backend returned no row")
	}
	row := created[0]
	if err := row.Normalize(); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return &row, nil
}

// UpdatePatient updates the patient row matching the identifier and returns
// the updated row. The match is by identifier equality only; there is no
// optimistic concurrency check.
func (a *App) UpdatePatient(patient models.Patient) (*models.Patient, error) {
	if patient.ID == "" {
		return nil, fmt.Errorf("update patient: id is required")
	}
	payload := patientPayloadFrom(patient)
	payload.ID = ""
	payload.UserID = ""
	body, err := http.JSONBody(payload)
	if err != nil {
		return nil, err
	}

	path := models.PatientURL + "?" + http.NewQuery().Eq("id", patient.ID).Encode()
	var updated []models.Patient
	if err := a.Client.PatchAndParse(path, body, &updated); err != nil {
		return nil, a.dataErr("update patient", err)
	}
	if len(updated) == 0 {
		return nil, fmt.Errorf("update patient %s: %w", patient.ID, ErrNotFound)
	}
	row := updated[0]
	if err := row.Normalize(); err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return &row, nil
}

// DeletePatient removes the patient row matching the identifier.
func (a *App) DeletePatient(id string) error {
	path := models.PatientURL + "?" + http.NewQuery().Eq("id", id).Encode()
	if err := a.Client.DeleteAndCheck(path); err != nil {
		return a.dataErr("delete patient", err)
	}
	return nil
}
