package controllers

import (
	"errors"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/validate"
)

// HistoryFormController drives the create and edit clinical history screens.
// A closed record is read-only: resubmission is blocked unless the form
// simultaneously reactivates it.
type HistoryFormController struct {
	store HistoryStore
	nav   Navigator

	Form        validate.HistoryForm
	patientID   string // set in create mode
	historyID   string // set in edit mode
	existing    *models.ClinicalHistory
	fieldErrors []validate.FieldError
	state       State[models.ClinicalHistory]
}

// NewHistoryCreateController returns a form controller that creates a history
// for the given patient. The new record starts active.
func NewHistoryCreateController(store HistoryStore, nav Navigator, patientID string) *HistoryFormController {
	c := &HistoryFormController{store: store, nav: nav, patientID: patientID, state: Idle[models.ClinicalHistory]()}
	c.Form.Estado = true
	return c
}

// NewHistoryEditController returns a form controller that edits an existing
// record. Call Load before showing the form.
func NewHistoryEditController(store HistoryStore, nav Navigator, historyID string) *HistoryFormController {
	return &HistoryFormController{store: store, nav: nav, historyID: historyID, state: Idle[models.ClinicalHistory]()}
}

// Load validates the route parameter and fetches the record being edited.
func (c *HistoryFormController) Load() {
	if c.historyID == "" {
		if err := RequireParam("patientID", c.patientID); err != nil {
			c.state = Failed[models.ClinicalHistory](err)
			c.nav.AlertAndBack("No se pudo abrir la historia clínica")
		}
		return
	}
	if err := RequireParam("historyID", c.historyID); err != nil {
		c.state = Failed[models.ClinicalHistory](err)
		c.nav.AlertAndBack("No se pudo abrir la historia clínica")
		return
	}

	c.state = Loading[models.ClinicalHistory]()
	history, err := c.store.GetHistoryByID(c.historyID)
	if err != nil {
		c.state = Failed[models.ClinicalHistory](err)
		if errors.Is(err, psicoapp.ErrNotFound) {
			c.nav.AlertAndBack("Historia clínica no encontrada")
		} else {
			c.nav.AlertAndBack("No se pudo cargar la historia clínica")
		}
		return
	}

	c.existing = history
	c.Form = validate.HistoryForm{
		Diagnostico:   history.Diagnostico,
		Tratamiento:   history.Tratamiento,
		Observaciones: history.Observaciones,
		Estado:        history.Estado,
	}
	c.state = Loaded(*history)
}

// ReadOnly reports whether the loaded record is closed, which freezes the
// form fields in the view.
func (c *HistoryFormController) ReadOnly() bool {
	return c.existing != nil && !c.existing.Estado
}

// Validate runs the schema plus the closed-record rule.
func (c *HistoryFormController) Validate() []validate.FieldError {
	c.fieldErrors = validate.HistoryFormErrors(c.Form)
	if c.ReadOnly() && !c.Form.Estado {
		c.fieldErrors = append(c.fieldErrors, validate.FieldError{
			Field:   "estado",
			Message: "La historia está cerrada; reactívela para poder editarla",
		})
	}
	return c.fieldErrors
}

func (c *HistoryFormController) FieldErrors() []validate.FieldError {
	return c.fieldErrors
}

// Submit validates and then creates or updates the record with a single
// remote call. In create mode the patient route parameter is re-checked here,
// so a malformed id never reaches the network even when Load was skipped.
func (c *HistoryFormController) Submit() (*models.ClinicalHistory, error) {
	if c.existing == nil {
		if err := RequireParam("patientID", c.patientID); err != nil {
			c.state = Failed[models.ClinicalHistory](err)
			c.nav.AlertAndBack("No se pudo abrir la historia clínica")
			return nil, err
		}
	}
	if errs := c.Validate(); len(errs) > 0 {
		return nil, errors.New("el formulario tiene campos inválidos")
	}

	history := models.ClinicalHistory{
		PacienteID:    c.patientID,
		Diagnostico:   c.Form.Diagnostico,
		Tratamiento:   c.Form.Tratamiento,
		Observaciones: c.Form.Observaciones,
		Estado:        c.Form.Estado,
	}
	if c.existing != nil {
		history.ID = c.existing.ID
		history.PacienteID = c.existing.PacienteID
		history.FechaRegistro = c.existing.FechaRegistro
	}

	var (
		saved *models.ClinicalHistory
		err   error
	)
	c.state = Loading[models.ClinicalHistory]()
	if c.existing == nil {
		saved, err = c.store.CreateHistory(history)
	} else {
		saved, err = c.store.UpdateHistory(history)
	}
	if err != nil {
		c.state = Failed[models.ClinicalHistory](err)
		c.nav.Alert("No se pudo guardar la historia clínica")
		return nil, err
	}

	c.existing = saved
	c.state = Loaded(*saved)
	return saved, nil
}

func (c *HistoryFormController) State() State[models.ClinicalHistory] {
	return c.state
}
