package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".notes_token.json"
)

// ErrNotLoggedIn is returned when no token file exists.
var ErrNotLoggedIn = errors.New("not logged in: run `notes login` first")

// APIURL returns the base URL for the notes API.
// It can be overridden with the NOTES_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("NOTES_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// Tokens is the pair stored after a successful login.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenPath is NOTES_TOKEN_FILE when set, otherwise ~/.notes_token.json.
func TokenPath() string {
	if v := os.Getenv("NOTES_TOKEN_FILE"); v != "" {
		return v
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return tokenFileName
	}
	return filepath.Join(dir, tokenFileName)
}

func SaveTokens(t Tokens) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(TokenPath(), data, 0600)
}

func LoadTokens() (Tokens, error) {
	data, err := os.ReadFile(TokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Tokens{}, ErrNotLoggedIn
		}
		return Tokens{}, err
	}
	var t Tokens
	if err := json.Unmarshal(data, &t); err != nil || t.Access == "" {
		return Tokens{}, ErrNotLoggedIn
	}
	return t, nil
}

// ClearTokens removes the token file. It reports false if there was nothing to remove.
func ClearTokens() (bool, error) {
	err := os.Remove(TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
