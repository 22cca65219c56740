package controllers

import (
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/search"
)

// PatientListController drives the patient list screen: load on focus,
// pull-to-refresh, and the live search box.
type PatientListController struct {
	store PatientStore
	nav   Navigator

	state State[[]models.Patient]
	query string
}

func NewPatientListController(store PatientStore, nav Navigator) *PatientListController {
	return &PatientListController{store: store, nav: nav, state: Idle[[]models.Patient]()}
}

// Load fetches the list. Called on screen focus.
func (c *PatientListController) Load() {
	c.state = Loading[[]models.Patient]()
	c.fetch()
}

// Refresh re-enters the loading path while keeping the stale list visible.
func (c *PatientListController) Refresh() {
	stale, _ := c.state.Data()
	c.state = Refreshing(stale)
	c.fetch()
}

func (c *PatientListController) fetch() {
	patients, err := c.store.ListPatients()
	if err != nil {
		c.state = Failed[[]models.Patient](err)
		c.nav.Alert("No se pudieron cargar los pacientes")
		return
	}
	c.state = Loaded(patients)
}

func (c *PatientListController) SetQuery(query string) {
	c.query = query
}

// Visible returns the loaded list with the current query applied.
func (c *PatientListController) Visible() []models.Patient {
	patients, ok := c.state.Data()
	if !ok {
		return nil
	}
	return search.FilterPatients(patients, c.query)
}

func (c *PatientListController) State() State[[]models.Patient] {
	return c.state
}
