package utils

import (
	"net/url"
	"strings"
)

// ValidateURL normalizes the backend project URL: the scheme defaults to https
// and any path component is stripped, so relative API paths resolve cleanly.
func ValidateURL(urlString string) (string, error) {
	u, err := url.Parse(urlString)
	if err != nil {
		return "", err
	}

	if u.Scheme == "" {
		u.Scheme = "https"
		u, err = url.Parse(u.String())
		if err != nil {
			return "", err
		}
	}

	u.Path = ""

	cleanURL := u.String()
	return cleanURL, nil
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
