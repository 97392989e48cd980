package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const (
	dirName    = "homemenu"
	fileName   = "config.json"
	dirPerms   = 0700
	filePerms  = 0600
	DefaultURL = "http://localhost:8080"
)

// Settings is the CLI state persisted between invocations.
type Settings struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	Username  string `json:"username,omitempty"`
}

// SettingsPath returns the full path to the settings file.
func SettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dirName, fileName), nil
}

// LoadSettings reads the settings file. A missing file yields defaults.
func LoadSettings() (*Settings, error) {
	p, err := SettingsPath()
	if err != nil {
		return &Settings{ServerURL: DefaultURL}, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{ServerURL: DefaultURL}, nil
		}
		return nil, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.ServerURL == "" {
		s.ServerURL = DefaultURL
	}
	return &s, nil
}

func SaveSettings(s *Settings) error {
	p, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), dirPerms); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, filePerms)
}

// ClearSettings removes the settings file; a missing file is not an error.
func ClearSettings() error {
	p, err := SettingsPath()
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Settings) HasToken() bool {
	return s.Token != ""
}
