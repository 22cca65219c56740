package controllers

import (
	"errors"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

// HistoryDetailController drives the read-only view of a single clinical
// history record.
type HistoryDetailController struct {
	store HistoryStore
	nav   Navigator

	historyID string
	state     State[models.ClinicalHistory]
}

func NewHistoryDetailController(store HistoryStore, nav Navigator, historyID string) *HistoryDetailController {
	return &HistoryDetailController{store: store, nav: nav, historyID: historyID, state: Idle[models.ClinicalHistory]()}
}

func (c *HistoryDetailController) Load() {
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
	c.state = Loaded(*history)
}

func (c *HistoryDetailController) State() State[models.ClinicalHistory] {
	return c.state
}
