package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gotest.tools/v3/assert"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NilError(t, err)
	return signed
}

func TestSessionFromTokens(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	access := signedToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"email": "doctora@clinica.pe",
		"exp":   exp.Unix(),
	})

	session, err := SessionFromTokens(access, "refresh-1")
	assert.NilError(t, err)
	assert.Equal(t, session.UserID, "user-1")
	assert.Equal(t, session.Email, "doctora@clinica.pe")
	assert.Equal(t, session.RefreshToken, "refresh-1")
	assert.Assert(t, session.ExpiresAt.Equal(exp))
	assert.Assert(t, !session.Expired())
}

func TestSessionFromTokensRejectsGarbage(t *testing.T) {
	_, err := SessionFromTokens("not-a-jwt", "")
	assert.ErrorContains(t, err, "not a valid JWT")
}

func TestSessionFromTokensRequiresSubject(t *testing.T) {
	access := signedToken(t, jwt.MapClaims{"email": "doctora@clinica.pe"})
	_, err := SessionFromTokens(access, "")
	assert.ErrorContains(t, err, "no subject claim")
}

func TestSessionExpired(t *testing.T) {
	session := &Session{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.Assert(t, session.Expired())

	session = &Session{}
	assert.Assert(t, !session.Expired())
}

func TestPatientNormalize(t *testing.T) {
	patient := Patient{
		ID:              "p1",
		DNI:             "12345678",
		Nombre:          "Ana",
		Apellido:        "Torres",
		FechaNacimiento: "1990-03-15",
		Sexo:            "desconocido",
	}
	assert.NilError(t, patient.Normalize())
	assert.Equal(t, patient.Sexo, SexOther)

	missing := Patient{DNI: "12345678", Nombre: "Ana"}
	assert.ErrorContains(t, missing.Normalize(), "id")

	noNames := Patient{ID: "p1", DNI: "12345678"}
	assert.ErrorContains(t, noNames.Normalize(), "nombre")
}

func TestPatientFullName(t *testing.T) {
	patient := Patient{Nombre: "Ana", Apellido: "Torres"}
	assert.Equal(t, patient.FullName(), "Ana Torres")

	patient = Patient{Apellido: "Torres"}
	assert.Equal(t, patient.FullName(), "Torres")
}

func TestPatientAge(t *testing.T) {
	patient := Patient{FechaNacimiento: "1990-03-15"}
	assert.Assert(t, patient.Age() >= 36)

	patient = Patient{FechaNacimiento: "15/03/1990"}
	assert.Equal(t, patient.Age(), -1)
}

func TestHistoryNormalize(t *testing.T) {
	created := time.Date(2024, 5, 2, 11, 30, 0, 0, time.UTC)
	history := ClinicalHistory{
		ID:          "h1",
		PacienteID:  "p1",
		Diagnostico: "Trastorno de ansiedad",
		CreatedAt:   created,
	}
	assert.NilError(t, history.Normalize())
	assert.Equal(t, history.FechaRegistro, "2024-05-02")

	missing := ClinicalHistory{ID: "h1", Diagnostico: "Trastorno de ansiedad"}
	assert.ErrorContains(t, missing.Normalize(), "paciente_id")
}
