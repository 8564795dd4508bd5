package config

import "os"

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the version history API.
// It can be overridden with the HCI_VERSIONS_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("HCI_VERSIONS_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// Token returns the bearer token from HCI_VERSIONS_TOKEN, or "" when unset.
func Token() string {
	return os.Getenv("HCI_VERSIONS_TOKEN")
}
