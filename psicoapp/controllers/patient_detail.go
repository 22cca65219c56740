package controllers

import (
	"errors"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

// PatientDetail is what the detail screen shows: the patient plus their
// clinical histories, newest first.
type PatientDetail struct {
	Patient   models.Patient
	Histories []models.ClinicalHistory
}

// PatientDetailController drives the patient detail screen. The two fetches
// are sequential: patient first, then that patient's histories.
type PatientDetailController struct {
	patients  PatientStore
	histories HistoryStore
	nav       Navigator

	patientID string
	state     State[PatientDetail]
}

func NewPatientDetailController(patients PatientStore, histories HistoryStore, nav Navigator, patientID string) *PatientDetailController {
	return &PatientDetailController{
		patients:  patients,
		histories: histories,
		nav:       nav,
		patientID: patientID,
		state:     Idle[PatientDetail](),
	}
}

// Load validates the route parameter and fetches the screen data. A missing
// or malformed identifier short-circuits to the failed state with a forced
// back-navigation, before any remote call.
func (c *PatientDetailController) Load() {
	if err := RequireParam("patientID", c.patientID); err != nil {
		c.state = Failed[PatientDetail](err)
		c.nav.AlertAndBack("No se pudo abrir el paciente")
		return
	}
	c.state = Loading[PatientDetail]()
	c.fetch()
}

func (c *PatientDetailController) Refresh() {
	stale, ok := c.state.Data()
	if !ok {
		c.Load()
		return
	}
	c.state = Refreshing(stale)
	c.fetch()
}

func (c *PatientDetailController) fetch() {
	patient, err := c.patients.GetPatient(c.patientID)
	if err != nil {
		c.state = Failed[PatientDetail](err)
		if errors.Is(err, psicoapp.ErrNotFound) {
			c.nav.AlertAndBack("Paciente no encontrado")
		} else {
			c.nav.AlertAndBack("No se pudo cargar el paciente")
		}
		return
	}

	histories, err := c.histories.ListHistoriesForPatient(c.patientID)
	if err != nil {
		c.state = Failed[PatientDetail](err)
		c.nav.Alert("No se pudieron cargar las historias clínicas")
		return
	}

	c.state = Loaded(PatientDetail{Patient: *patient, Histories: histories})
}

func (c *PatientDetailController) State() State[PatientDetail] {
	return c.state
}
