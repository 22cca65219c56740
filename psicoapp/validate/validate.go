// Package validate holds the form schemas that gate submission. Validation is
// purely client-side and synchronous; a form with any failing field never
// reaches the network layer.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp/dates"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation("displaydate", func(fl validator.FieldLevel) bool {
		return dates.ParseDisplayDate(fl.Field().String())
	})
}

// FieldError is one failing form field with its user-facing message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PatientForm carries the patient form exactly as typed: the birth date is in
// display format, sex is the raw selection value.
type PatientForm struct {
	DNI             string `json:"dni" validate:"required,len=8,number"`
	Nombre          string `json:"nombre" validate:"required,min=2,max=50"`
	Apellido        string `json:"apellido" validate:"required,min=2,max=50"`
	FechaNacimiento string `json:"fecha_nacimiento" validate:"required,displaydate"`
	Sexo            string `json:"sexo" validate:"required,oneof=masculino femenino otro"`
	Telefono        string `json:"telefono" validate:"required,len=9,number"`
	Correo          string `json:"correo" validate:"omitempty,email"`
}

// HistoryForm carries the clinical history form. Estado has no constraint of
// its own; the closed-record rule lives in the form controller because it
// depends on the previously stored state.
type HistoryForm struct {
	Diagnostico   string `json:"diagnostico" validate:"required,min=5,max=500"`
	Tratamiento   string `json:"tratamiento" validate:"omitempty,max=1000"`
	Observaciones string `json:"observaciones" validate:"omitempty,max=1000"`
	Estado        bool   `json:"estado"`
}

var patientMessages = map[string]string{
	"dni":              "El DNI debe tener exactamente 8 dígitos",
	"nombre":           "El nombre debe tener entre 2 y 50 caracteres",
	"apellido":         "El apellido debe tener entre 2 y 50 caracteres",
	"fecha_nacimiento": "La fecha debe tener el formato DD/MM/AAAA y no puede ser futura",
	"sexo":             "Seleccione un sexo válido",
	"telefono":         "El teléfono debe tener exactamente 9 dígitos",
	"correo":           "El correo no tiene un formato válido",
}

var historyMessages = map[string]string{
	"diagnostico":   "El diagnóstico debe tener entre 5 y 500 caracteres",
	"tratamiento":   "El tratamiento no puede superar los 1000 caracteres",
	"observaciones": "Las observaciones no pueden superar los 1000 caracteres",
}

// PatientFormErrors validates the full field set and returns the first failing
// constraint per field, keyed to the field name. An empty slice means the form
// may be submitted.
func PatientFormErrors(form PatientForm) []FieldError {
	return collect(validate.Struct(form), patientMessages)
}

// HistoryFormErrors validates the clinical history form.
func HistoryFormErrors(form HistoryForm) []FieldError {
	return collect(validate.Struct(form), historyMessages)
}

func collect(err error, messages map[string]string) []FieldError {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	var fieldErrors []FieldError
	seen := map[string]bool{}
	for _, e := range errs {
		field := e.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		message := messages[field]
		if message == "" {
			message = "Valor no válido"
		}
		fieldErrors = append(fieldErrors, FieldError{Field: field, Message: message})
	}
	return fieldErrors
}
