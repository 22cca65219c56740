package models

import (
	"errors"
	"time"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp/dates"
)

const PatientURL = "/rest/v1/pacientes"

type Sex string

const (
	SexMale   Sex = "masculino"
	SexFemale Sex = "femenino"
	SexOther  Sex = "otro"
)

type Patient struct {
	ID              string    `json:"id"`
	DNI             string    `json:"dni"`
	Nombre          string    `json:"nombre"`
	Apellido        string    `json:"apellido"`
	FechaNacimiento string    `json:"fecha_nacimiento"`
	Sexo            Sex       `json:"sexo"`
	Telefono        string    `json:"telefono"`
	Correo          string    `json:"correo,omitempty"`
	UserID          string    `json:"user_id"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// Normalize checks a row received from the backend right at the data-access
// boundary. Rows without the fields the app cannot work without are rejected;
// an unknown sex value is defaulted instead.
func (p *Patient) Normalize() error {
	if p.ID == "" {
		return errors.New("patient row is missing the id field")
	}
	if p.DNI == "" {
		return errors.New("patient row is missing the dni field")
	}
	if p.Nombre == "" && p.Apellido == "" {
		return errors.New("patient row has neither nombre nor apellido")
	}
	switch p.Sexo {
	case SexMale, SexFemale, SexOther:
	default:
		p.Sexo = SexOther
	}
	return nil
}

func (p *Patient) FullName() string {
	if p.Nombre == "" {
		return p.Apellido
	}
	if p.Apellido == "" {
		return p.Nombre
	}
	return p.Nombre + " " + p.Apellido
}

// Age returns the patient's age in whole years, or -1 when the stored birth
// date cannot be parsed.
func (p *Patient) Age() int {
	birth, err := dates.ParseStorageDate(p.FechaNacimiento)
	if err != nil {
		return -1
	}
	return dates.ComputeAge(birth)
}
