package validate

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func validPatientForm() PatientForm {
	return PatientForm{
		DNI:             "12345678",
		Nombre:          "Ana",
		Apellido:        "Lopez",
		FechaNacimiento: "15/03/1990",
		Sexo:            "femenino",
		Telefono:        "987654321",
		Correo:          "",
	}
}

func fieldNames(errs []FieldError) []string {
	var names []string
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestPatientFormValid(t *testing.T) {
	errs := PatientFormErrors(validPatientForm())
	assert.Equal(t, len(errs), 0)
}

func TestPatientFormDNI(t *testing.T) {
	form := validPatientForm()

	form.DNI = "1234567" // 7 chars
	assert.Assert(t, hasField(PatientFormErrors(form), "dni"))

	form.DNI = "123456789" // 9 chars
	assert.Assert(t, hasField(PatientFormErrors(form), "dni"))

	form.DNI = "1234567a" // non-numeric
	assert.Assert(t, hasField(PatientFormErrors(form), "dni"))

	form.DNI = "-1234567" // sign is not a digit
	assert.Assert(t, hasField(PatientFormErrors(form), "dni"))

	form.DNI = "12345678"
	assert.Assert(t, !hasField(PatientFormErrors(form), "dni"))
}

func TestPatientFormCorreo(t *testing.T) {
	form := validPatientForm()

	form.Correo = "not-an-email"
	errs := PatientFormErrors(form)
	assert.Assert(t, hasField(errs, "correo"))

	// optional field: explicit empty is valid
	form.Correo = ""
	assert.Equal(t, len(PatientFormErrors(form)), 0)

	form.Correo = "ana.lopez@example.com"
	assert.Equal(t, len(PatientFormErrors(form)), 0)
}

func TestPatientFormNameBounds(t *testing.T) {
	form := validPatientForm()

	form.Nombre = "A"
	assert.Assert(t, hasField(PatientFormErrors(form), "nombre"))

	form.Nombre = strings.Repeat("a", 51)
	assert.Assert(t, hasField(PatientFormErrors(form), "nombre"))

	form = validPatientForm()
	form.Apellido = ""
	assert.Assert(t, hasField(PatientFormErrors(form), "apellido"))
}

func TestPatientFormDates(t *testing.T) {
	form := validPatientForm()

	form.FechaNacimiento = "31/02/2020"
	assert.Assert(t, hasField(PatientFormErrors(form), "fecha_nacimiento"))

	form.FechaNacimiento = "15/03/2990" // future
	assert.Assert(t, hasField(PatientFormErrors(form), "fecha_nacimiento"))
}

func TestPatientFormSexoAndTelefono(t *testing.T) {
	form := validPatientForm()

	form.Sexo = "desconocido"
	assert.Assert(t, hasField(PatientFormErrors(form), "sexo"))

	form = validPatientForm()
	form.Telefono = "12345678" // 8 digits
	assert.Assert(t, hasField(PatientFormErrors(form), "telefono"))

	form.Telefono = "+34123456" // 9 chars but not all digits
	assert.Assert(t, hasField(PatientFormErrors(form), "telefono"))
}

func TestPatientFormReportsOneErrorPerField(t *testing.T) {
	form := PatientForm{} // everything fails
	errs := PatientFormErrors(form)

	seen := map[string]int{}
	for _, name := range fieldNames(errs) {
		seen[name]++
	}
	for name, count := range seen {
		if count > 1 {
			t.Errorf("field %s reported %d times, want 1", name, count)
		}
	}
	// correo is optional and absent, so it must not be reported
	assert.Assert(t, !hasField(errs, "correo"))
}

func TestHistoryForm(t *testing.T) {
	form := HistoryForm{Diagnostico: "Trastorno de ansiedad generalizada", Estado: true}
	assert.Equal(t, len(HistoryFormErrors(form)), 0)

	form.Diagnostico = "abc" // under 5 chars
	errs := HistoryFormErrors(form)
	assert.Assert(t, hasField(errs, "diagnostico"))

	form.Diagnostico = strings.Repeat("a", 501)
	assert.Assert(t, hasField(HistoryFormErrors(form), "diagnostico"))

	form = HistoryForm{Diagnostico: "Diagnóstico válido", Tratamiento: strings.Repeat("t", 1001)}
	assert.Assert(t, hasField(HistoryFormErrors(form), "tratamiento"))

	form = HistoryForm{Diagnostico: "Diagnóstico válido", Observaciones: strings.Repeat("o", 1001)}
	assert.Assert(t, hasField(HistoryFormErrors(form), "observaciones"))

	// optional fields accept explicit empty
	form = HistoryForm{Diagnostico: "Diagnóstico válido", Tratamiento: "", Observaciones: ""}
	assert.Equal(t, len(HistoryFormErrors(form)), 0)
}

func TestMessagesAreKeyedToFields(t *testing.T) {
	form := validPatientForm()
	form.DNI = "12"
	errs := PatientFormErrors(form)
	assert.Equal(t, len(errs), 1)
	assert.Equal(t, errs[0].Field, "dni")
	assert.Equal(t, errs[0].Message, "El DNI debe tener exactamente 8 dígitos")
}
