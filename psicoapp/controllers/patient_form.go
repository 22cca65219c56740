package controllers

import (
	"errors"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/dates"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/validate"
)

// PatientFormController drives the create and edit patient screens. A failing
// validation blocks submission before any remote call; a remote failure keeps
// the form state so the clinician can retry by hand.
type PatientFormController struct {
	store PatientStore
	nav   Navigator

	Form        validate.PatientForm
	patientID   string // empty in create mode
	fieldErrors []validate.FieldError
	state       State[models.Patient]
}

// NewPatientCreateController returns a form controller in create mode.
func NewPatientCreateController(store PatientStore, nav Navigator) *PatientFormController {
	return &PatientFormController{store: store, nav: nav, state: Idle[models.Patient]()}
}

// NewPatientEditController returns a form controller that edits an existing
// patient. Call Load before showing the form.
func NewPatientEditController(store PatientStore, nav Navigator, patientID string) *PatientFormController {
	return &PatientFormController{store: store, nav: nav, patientID: patientID, state: Idle[models.Patient]()}
}

// Load fetches the patient being edited and fills the form, converting the
// stored birth date to the display format.
func (c *PatientFormController) Load() {
	if c.patientID == "" {
		c.state = Idle[models.Patient]()
		return
	}
	if err := RequireParam("patientID", c.patientID); err != nil {
		c.state = Failed[models.Patient](err)
		c.nav.AlertAndBack("No se pudo abrir el paciente")
		return
	}

	c.state = Loading[models.Patient]()
	patient, err := c.store.GetPatient(c.patientID)
	if err != nil {
		c.state = Failed[models.Patient](err)
		if errors.Is(err, psicoapp.ErrNotFound) {
			c.nav.AlertAndBack("Paciente no encontrado")
		} else {
			c.nav.AlertAndBack("No se pudo cargar el paciente")
		}
		return
	}

	c.Form = validate.PatientForm{
		DNI:             patient.DNI,
		Nombre:          patient.Nombre,
		Apellido:        patient.Apellido,
		FechaNacimiento: displayFromStorage(patient.FechaNacimiento),
		Sexo:            string(patient.Sexo),
		Telefono:        patient.Telefono,
		Correo:          patient.Correo,
	}
	c.state = Loaded(*patient)
}

// TypeBirthDate feeds raw keystrokes through the live date mask and stores
// the masked value in the form.
func (c *PatientFormController) TypeBirthDate(rawInput string) string {
	c.Form.FechaNacimiento = dates.AutoFormatKeystrokes(rawInput)
	return c.Form.FechaNacimiento
}

// Validate runs the schema and remembers the field errors for the view.
func (c *PatientFormController) Validate() []validate.FieldError {
	c.fieldErrors = validate.PatientFormErrors(c.Form)
	return c.fieldErrors
}

// FieldErrors returns the errors of the last Validate or Submit call.
func (c *PatientFormController) FieldErrors() []validate.FieldError {
	return c.fieldErrors
}

// Submit validates and then creates or updates the patient with a single
// remote call. It returns the stored row on success.
func (c *PatientFormController) Submit() (*models.Patient, error) {
	if errs := c.Validate(); len(errs) > 0 {
		return nil, errors.New("el formulario tiene campos inválidos")
	}

	patient := models.Patient{
		ID:              c.patientID,
		DNI:             c.Form.DNI,
		Nombre:          c.Form.Nombre,
		Apellido:        c.Form.Apellido,
		FechaNacimiento: dates.FormatForStorage(c.Form.FechaNacimiento),
		Sexo:            models.Sex(c.Form.Sexo),
		Telefono:        c.Form.Telefono,
		Correo:          c.Form.Correo,
	}

	var (
		saved *models.Patient
		err   error
	)
	c.state = Loading[models.Patient]()
	if c.patientID == "" {
		saved, err = c.store.CreatePatient(patient)
	} else {
		saved, err = c.store.UpdatePatient(patient)
	}
	if err != nil {
		// Form state is preserved; the alert is dismissible so the
		// clinician may correct and retry manually.
		c.state = Failed[models.Patient](err)
		c.nav.Alert("No se pudo guardar el paciente")
		return nil, err
	}

	c.state = Loaded(*saved)
	return saved, nil
}

func (c *PatientFormController) State() State[models.Patient] {
	return c.state
}

// displayFromStorage converts YYYY-MM-DD to DD/MM/YYYY for form editing, as
// opposed to dates.FormatForDisplay which renders the long read-only form.
func displayFromStorage(storageDate string) string {
	date, err := dates.ParseStorageDate(storageDate)
	if err != nil {
		return storageDate
	}
	return date.Format("02/01/2006")
}
