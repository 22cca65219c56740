// Package search implements the list filtering behind the search box. The
// match is a case-insensitive substring check over a few concatenated fields,
// recomputed in memory on every keystroke; a blank query leaves the list
// untouched.
package search

import (
	"strings"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

// Matches reports whether the concatenation of fields contains query,
// ignoring case. A blank query matches everything.
func Matches(query string, fields ...string) bool {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join(fields, " "))
	return strings.Contains(haystack, query)
}

// FilterPatients returns the patients whose name, surname or DNI contain the
// query, in their original order.
func FilterPatients(patients []models.Patient, query string) []models.Patient {
	if strings.TrimSpace(query) == "" {
		return patients
	}
	var matched []models.Patient
	for _, p := range patients {
		if Matches(query, p.Nombre, p.Apellido, p.DNI) {
			matched = append(matched, p)
		}
	}
	return matched
}

// FilterHistories returns the histories whose diagnosis contains the query,
// in their original order.
func FilterHistories(histories []models.ClinicalHistory, query string) []models.ClinicalHistory {
	if strings.TrimSpace(query) == "" {
		return histories
	}
	var matched []models.ClinicalHistory
	for _, h := range histories {
		if Matches(query, h.Diagnostico) {
			matched = append(matched, h)
		}
	}
	return matched
}
