package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDefaults(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Provider = "gemini"

	err := Validate(cfg)
	assert.ErrorContains(t, err, "unsupported llm provider")
}

func TestValidateEmptyModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Model = ""

	err := Validate(cfg)
	assert.ErrorContains(t, err, "model cannot be empty")
}

func TestValidatePortRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 70000

	err := Validate(cfg)
	assert.ErrorContains(t, err, "invalid server port")
}

func TestValidateMaintenanceSchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Maintenance.Schedule = "every hour or so"

	err := Validate(cfg)
	assert.ErrorContains(t, err, "invalid maintenance schedule")

	// A disabled maintenance loop skips schedule validation
	cfg.Maintenance.Enabled = false
	assert.NoError(t, Validate(cfg))
}
