package controllers

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/psicoapp/psicoapp-connector-go/internals/utils"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

// Navigator is the contract a screen controller has with the surrounding
// navigation layer: it can raise a dismissible alert, or a blocking alert
// followed by a forced navigation back.
type Navigator interface {
	Alert(message string)
	AlertAndBack(message string)
}

// PatientStore is the patient data access a screen needs. *psicoapp.App
// satisfies it.
type PatientStore interface {
	ListPatients() ([]models.Patient, error)
	GetPatient(id string) (*models.Patient, error)
	CreatePatient(patient models.Patient) (*models.Patient, error)
	UpdatePatient(patient models.Patient) (*models.Patient, error)
	DeletePatient(id string) error
}

// HistoryStore is the clinical history data access a screen needs.
type HistoryStore interface {
	ListHistoriesForPatient(patientID string) ([]models.ClinicalHistory, error)
	GetHistoryByID(id string) (*models.ClinicalHistory, error)
	CreateHistory(history models.ClinicalHistory) (*models.ClinicalHistory, error)
	UpdateHistory(history models.ClinicalHistory) (*models.ClinicalHistory, error)
	DeleteHistory(id string) error
}

// ParamError is a missing or malformed navigation route parameter, detected
// before any remote call is made.
type ParamError struct {
	Name  string
	Value string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("route parameter %q is missing or malformed", e.Name)
}

// RequireParam validates a route parameter: it must be present, not one of
// the literal placeholder strings a broken navigation produces, and a
// well-formed identifier.
func RequireParam(name string, value string) error {
	if utils.IsBlank(value) || value == "undefined" || value == "null" {
		return &ParamError{Name: name, Value: value}
	}
	if _, err := uuid.Parse(value); err != nil {
		return &ParamError{Name: name, Value: value}
	}
	return nil
}
