package controllers

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

const (
	patientID = "7b0d2d7e-45a1-4f4b-9a3e-111111111111"
	historyID = "7b0d2d7e-45a1-4f4b-9a3e-222222222222"
)

// fakeStore implements PatientStore and HistoryStore, recording call counts.
type fakeStore struct {
	patients  []models.Patient
	histories []models.ClinicalHistory
	err       error

	listCalls   int
	getCalls    int
	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakeStore) ListPatients() ([]models.Patient, error) {
	f.listCalls++
	return f.patients, f.err
}

func (f *fakeStore) GetPatient(id string) (*models.Patient, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.patients {
		if f.patients[i].ID == id {
			return &f.patients[i], nil
		}
	}
	return nil, psicoapp.ErrNotFound
}

func (f *fakeStore) CreatePatient(p models.Patient) (*models.Patient, error) {
	f.createCalls++
	if f.err != nil {
		return nil, f.err
	}
	p.ID = patientID
	return &p, nil
}

func (f *fakeStore) UpdatePatient(p models.Patient) (*models.Patient, error) {
	f.updateCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &p, nil
}

func (f *fakeStore) DeletePatient(id string) error {
	f.deleteCalls++
	return f.err
}

func (f *fakeStore) ListHistoriesForPatient(id string) ([]models.ClinicalHistory, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.histories, nil
}

func (f *fakeStore) GetHistoryByID(id string) (*models.ClinicalHistory, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.histories {
		if f.histories[i].ID == id {
			return &f.histories[i], nil
		}
	}
	return nil, psicoapp.ErrNotFound
}

func (f *fakeStore) CreateHistory(h models.ClinicalHistory) (*models.ClinicalHistory, error) {
	f.createCalls++
	if f.err != nil {
		return nil, f.err
	}
	h.ID = historyID
	return &h, nil
}

func (f *fakeStore) UpdateHistory(h models.ClinicalHistory) (*models.ClinicalHistory, error) {
	f.updateCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &h, nil
}

func (f *fakeStore) DeleteHistory(id string) error {
	f.deleteCalls++
	return f.err
}

// fakeNav records the alerts a controller raises.
type fakeNav struct {
	alerts     int
	backAlerts int
	lastMsg    string
}

func (n *fakeNav) Alert(message string) {
	n.alerts++
	n.lastMsg = message
}

func (n *fakeNav) AlertAndBack(message string) {
	n.backAlerts++
	n.lastMsg = message
}

func somePatient() models.Patient {
	return models.Patient{
		ID:              patientID,
		DNI:             "12345678",
		Nombre:          "Ana",
		Apellido:        "Lopez",
		FechaNacimiento: "1990-03-15",
		Sexo:            models.SexFemale,
		Telefono:        "987654321",
	}
}

func TestRequireParam(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{patientID, true},
		{"", false},
		{"   ", false},
		{"undefined", false},
		{"null", false},
		{"not-a-uuid", false},
	}
	for _, tc := range cases {
		err := RequireParam("patientID", tc.value)
		if tc.ok && err != nil {
			t.Errorf("RequireParam(%q) = %v, want nil", tc.value, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("RequireParam(%q) = nil, want error", tc.value)
		}
	}
}

func TestStateTransitions(t *testing.T) {
	s := Idle[int]()
	assert.Equal(t, s.Status(), StatusIdle)
	assert.Assert(t, s.Err() == nil)

	s = Loaded(42)
	data, ok := s.Data()
	assert.Assert(t, ok)
	assert.Equal(t, data, 42)

	s = Failed[int](errors.New("boom"))
	assert.Assert(t, s.Err() != nil)
	_, ok = s.Data()
	assert.Assert(t, !ok)

	s = Refreshing(7)
	data, ok = s.Data()
	assert.Assert(t, ok)
	assert.Equal(t, data, 7)
	assert.Assert(t, s.InFlight())
}

func TestPatientListLoadAndFilter(t *testing.T) {
	store := &fakeStore{patients: []models.Patient{
		{ID: patientID, Nombre: "Ana", Apellido: "Lopez", DNI: "12345678"},
		{ID: historyID, Nombre: "Luis", Apellido: "Ramos", DNI: "87654321"},
	}}
	nav := &fakeNav{}

	list := NewPatientListController(store, nav)
	list.Load()
	assert.Equal(t, list.State().Status(), StatusLoaded)
	assert.Equal(t, len(list.Visible()), 2)

	list.SetQuery("ana")
	visible := list.Visible()
	assert.Equal(t, len(visible), 1)
	assert.Equal(t, visible[0].Nombre, "Ana")

	list.SetQuery("")
	assert.Equal(t, len(list.Visible()), 2)
}

func TestPatientListLoadFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("backend down")}
	nav := &fakeNav{}

	list := NewPatientListController(store, nav)
	list.Load()

	assert.Equal(t, list.State().Status(), StatusFailed)
	assert.Equal(t, nav.alerts, 1)
	assert.Equal(t, nav.backAlerts, 0)
	// no automatic retry
	assert.Equal(t, store.listCalls, 1)
}

func TestPatientListRefreshKeepsStaleData(t *testing.T) {
	store := &fakeStore{patients: []models.Patient{somePatient()}}
	nav := &fakeNav{}

	list := NewPatientListController(store, nav)
	list.Load()
	list.Refresh()
	assert.Equal(t, list.State().Status(), StatusLoaded)
	assert.Equal(t, store.listCalls, 2)
}

func TestPatientDetailBackendFailureBacksOutOnce(t *testing.T) {
	store := &fakeStore{err: errors.New("backend down")}
	nav := &fakeNav{}

	detail := NewPatientDetailController(store, store, nav, patientID)
	detail.Load()

	assert.Equal(t, detail.State().Status(), StatusFailed)
	assert.Equal(t, nav.backAlerts, 1)
	assert.Equal(t, store.getCalls, 1) // never retried
}

func TestPatientDetailNotFound(t *testing.T) {
	store := &fakeStore{}
	nav := &fakeNav{}

	detail := NewPatientDetailController(store, store, nav, patientID)
	detail.Load()

	assert.Equal(t, detail.State().Status(), StatusFailed)
	assert.Assert(t, errors.Is(detail.State().Err(), psicoapp.ErrNotFound))
	assert.Equal(t, nav.backAlerts, 1)
}

func TestPatientDetailBadParamShortCircuits(t *testing.T) {
	store := &fakeStore{}
	nav := &fakeNav{}

	detail := NewPatientDetailController(store, store, nav, "undefined")
	detail.Load()

	assert.Equal(t, detail.State().Status(), StatusFailed)
	assert.Equal(t, nav.backAlerts, 1)
	// no remote call was attempted
	assert.Equal(t, store.getCalls, 0)
	assert.Equal(t, store.listCalls, 0)
}

func TestPatientDetailSequentialFetch(t *testing.T) {
	store := &fakeStore{
		patients:  []models.Patient{somePatient()},
		histories: []models.ClinicalHistory{{ID: historyID, PacienteID: patientID, Diagnostico: "Ansiedad", FechaRegistro: "2024-01-10"}},
	}
	nav := &fakeNav{}

	detail := NewPatientDetailController(store, store, nav, patientID)
	detail.Load()

	assert.Equal(t, detail.State().Status(), StatusLoaded)
	data, _ := detail.State().Data()
	assert.Equal(t, data.Patient.Nombre, "Ana")
	assert.Equal(t, len(data.Histories), 1)
}

func TestPatientFormSubmitBlockedByValidation(t *testing.T) {
	store := &fakeStore{}
	nav := &fakeNav{}

	ctrl := NewPatientCreateController(store, nav)
	ctrl.Form.DNI = "1234567" // short
	_, err := ctrl.Submit()

	assert.Assert(t, err != nil)
	assert.Assert(t, len(ctrl.FieldErrors()) > 0)
	// the failing form never reaches the data layer
	assert.Equal(t, store.createCalls, 0)
}

func TestPatientFormSubmitCreate(t *testing.T) {
	store := &fakeStore{}
	nav := &fakeNav{}

	ctrl := NewPatientCreateController(store, nav)
	ctrl.Form.DNI = "12345678"
	ctrl.Form.Nombre = "Ana"
	ctrl.Form.Apellido = "Lopez"
	ctrl.Form.FechaNacimiento = "15/03/1990"
	ctrl.Form.Sexo = "femenino"
	ctrl.Form.Telefono = "987654321"

	saved, err := ctrl.Submit()
	assert.NilError(t, err)
	assert.Equal(t, store.createCalls, 1)
	// the display date was converted to storage format before sending
	assert.Equal(t, saved.FechaNacimiento, "1990-03-15")
}

func TestPatientFormRemoteFailureKeepsForm(t *testing.T) {
	store := &fakeStore{err: errors.New("backend down")}
	nav := &fakeNav{}

	ctrl := NewPatientCreateController(store, nav)
	ctrl.Form.DNI = "12345678"
	ctrl.Form.Nombre = "Ana"
	ctrl.Form.Apellido = "Lopez"
	ctrl.Form.FechaNacimiento = "15/03/1990"
	ctrl.Form.Sexo = "femenino"
	ctrl.Form.Telefono = "987654321"

	_, err := ctrl.Submit()
	assert.Assert(t, err != nil)
	// dismissible alert, not a forced back-navigation
	assert.Equal(t, nav.alerts, 1)
	assert.Equal(t, nav.backAlerts, 0)
	// form state preserved for a manual retry
	assert.Equal(t, ctrl.Form.DNI, "12345678")
	assert.Equal(t, store.createCalls, 1)
}

func TestPatientFormTypeBirthDate(t *testing.T) {
	ctrl := NewPatientCreateController(&fakeStore{}, &fakeNav{})
	assert.Equal(t, ctrl.TypeBirthDate("1503"), "15/03")
	assert.Equal(t, ctrl.TypeBirthDate("15031990"), "15/03/1990")
	assert.Equal(t, ctrl.Form.FechaNacimiento, "15/03/1990")
}

func TestHistoryFormShortDiagnosisNeverHitsNetwork(t *testing.T) {
	store := &fakeStore{}
	nav := &fakeNav{}

	ctrl := NewHistoryCreateController(store, nav, patientID)
	ctrl.Form.Diagnostico = "abc"
	_, err := ctrl.Submit()

	assert.Assert(t, err != nil)
	assert.Equal(t, store.createCalls, 0)
	assert.Equal(t, store.updateCalls, 0)
}

func TestHistoryFormCreateBadParamNeverHitsNetwork(t *testing.T) {
	store := &fakeStore{}
	nav := &fakeNav{}

	ctrl := NewHistoryCreateController(store, nav, "undefined")
	ctrl.Form.Diagnostico = "Trastorno de ansiedad generalizada"
	_, err := ctrl.Submit()

	assert.Assert(t, err != nil)
	assert.Equal(t, ctrl.State().Status(), StatusFailed)
	assert.Equal(t, nav.backAlerts, 1)
	assert.Equal(t, store.createCalls, 0)
}

func TestHistoryFormCreate(t *testing.T) {
	store := &fakeStore{}
	nav := &fakeNav{}

	ctrl := NewHistoryCreateController(store, nav, patientID)
	ctrl.Form.Diagnostico = "Trastorno de ansiedad generalizada"
	saved, err := ctrl.Submit()

	assert.NilError(t, err)
	assert.Equal(t, saved.PacienteID, patientID)
	assert.Assert(t, saved.Estado) // new records start active
	assert.Equal(t, store.createCalls, 1)
}

func TestHistoryFormClosedRecordBlocksResubmission(t *testing.T) {
	closed := models.ClinicalHistory{
		ID:            historyID,
		PacienteID:    patientID,
		Diagnostico:   "Diagnóstico original",
		FechaRegistro: "2024-01-10",
		Estado:        false,
	}
	store := &fakeStore{histories: []models.ClinicalHistory{closed}}
	nav := &fakeNav{}

	ctrl := NewHistoryEditController(store, nav, historyID)
	ctrl.Load()
	assert.Equal(t, ctrl.State().Status(), StatusLoaded)
	assert.Assert(t, ctrl.ReadOnly())

	ctrl.Form.Diagnostico = "Diagnóstico corregido"
	_, err := ctrl.Submit()
	assert.Assert(t, err != nil)
	assert.Equal(t, store.updateCalls, 0)

	// reactivating the record in the same submission unblocks the edit
	ctrl.Form.Estado = true
	saved, err := ctrl.Submit()
	assert.NilError(t, err)
	assert.Equal(t, saved.Diagnostico, "Diagnóstico corregido")
	assert.Equal(t, store.updateCalls, 1)
}

func TestHistoryDetailBadParam(t *testing.T) {
	store := &fakeStore{}
	nav := &fakeNav{}

	detail := NewHistoryDetailController(store, nav, "null")
	detail.Load()

	assert.Equal(t, detail.State().Status(), StatusFailed)
	assert.Equal(t, nav.backAlerts, 1)
	assert.Equal(t, store.getCalls, 0)
}

func TestHistoryDetailLoads(t *testing.T) {
	store := &fakeStore{histories: []models.ClinicalHistory{{
		ID: historyID, PacienteID: patientID, Diagnostico: "Ansiedad", FechaRegistro: "2024-01-10", Estado: true,
	}}}
	nav := &fakeNav{}

	detail := NewHistoryDetailController(store, nav, historyID)
	detail.Load()

	assert.Equal(t, detail.State().Status(), StatusLoaded)
	h, _ := detail.State().Data()
	assert.Equal(t, h.Diagnostico, "Ansiedad")
}
