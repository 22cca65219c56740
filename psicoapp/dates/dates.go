// Package dates holds the calendar helpers used by the patient and clinical
// history forms. Dates travel in two shapes: the display format DD/MM/YYYY
// shown to the clinician, and the storage format YYYY-MM-DD kept by the
// backend.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const StorageLayout = "2006-01-02"

var displayDatePattern = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[012])/(\d{4})$`)

var monthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// ParseDisplayDate reports whether text is a valid DD/MM/YYYY calendar date
// that is not in the future. Combinations like 31/02/2020 are rejected even
// though they match the pattern.
func ParseDisplayDate(text string) bool {
	return parseDisplayDateAt(text, time.Now())
}

func parseDisplayDateAt(text string, now time.Time) bool {
	m := displayDatePattern.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	// time.Date normalizes overflowing components (31/02 becomes 02/03), so a
	// round-trip comparison catches calendar-invalid combinations.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !date.After(today)
}

// FormatForStorage rewrites a DD/MM/YYYY display date to the YYYY-MM-DD
// storage format, zero-padding day and month. Input without three slash
// separated parts is returned unchanged.
func FormatForStorage(displayDate string) string {
	parts := strings.Split(displayDate, "/")
	if len(parts) != 3 {
		return displayDate
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return displayDate
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// FormatForDisplay rewrites a YYYY-MM-DD storage date to the long Spanish
// form, e.g. "15 de marzo de 1990". Malformed input is returned unchanged.
func FormatForDisplay(storageDate string) string {
	date, err := time.Parse(StorageLayout, storageDate)
	if err != nil {
		return storageDate
	}
	return fmt.Sprintf("%d de %s de %d", date.Day(), monthNames[date.Month()-1], date.Year())
}

// ParseStorageDate parses a YYYY-MM-DD date.
func ParseStorageDate(storageDate string) (time.Time, error) {
	return time.Parse(StorageLayout, storageDate)
}

// ComputeAge returns the whole-year difference between today and the birth
// date, minus one if the birthday has not yet occurred this year.
func ComputeAge(birthDate time.Time) int {
	return ageAt(birthDate, time.Now())
}

func ageAt(birthDate time.Time, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AutoFormatKeystrokes turns raw keyboard input into a live DD/MM/YYYY mask:
// non-digits are stripped, input is capped at 8 digits and slashes are
// inserted after the day and month as the user types.
func AutoFormatKeystrokes(rawInput string) string {
	var digits strings.Builder
	for _, r := range rawInput {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
		if digits.Len() == 8 {
			break
		}
	}

	s := digits.String()
	switch {
	case len(s) <= 2:
		return s
	case len(s) <= 4:
		return s[:2] + "/" + s[2:]
	default:
		return s[:2] + "/" + s[2:4] + "/" + s[4:]
	}
}
