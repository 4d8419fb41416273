package app

import (
	"os"
	"testing"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	// Note: LogLevel may be empty (triggers precedence logic in logger.go)
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.DataDir == "" {
		t.Error("DataDir not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	// Save original env
	oldData := os.Getenv("DATA_DIR")
	oldDB := os.Getenv("DATABASE_PATH")
	defer func() {
		os.Setenv("DATA_DIR", oldData)
		os.Setenv("DATABASE_PATH", oldDB)
	}()

	os.Setenv("DATA_DIR", "/srv/legis/data")
	os.Setenv("DATABASE_PATH", "/srv/legis/legisync.db")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DataDir != "/srv/legis/data" {
		t.Errorf("DataDir = %s, want /srv/legis/data", config.DataDir)
	}
	if config.DatabasePath != "/srv/legis/legisync.db" {
		t.Errorf("DatabasePath = %s, want /srv/legis/legisync.db", config.DatabasePath)
	}
}

// TestConfig_ReferenceFiles verifies reference file configuration.
func TestConfig_ReferenceFiles(t *testing.T) {
	oldPeople := os.Getenv("PEOPLE_FILE")
	oldCommittees := os.Getenv("COMMITTEES_FILE")
	defer func() {
		os.Setenv("PEOPLE_FILE", oldPeople)
		os.Setenv("COMMITTEES_FILE", oldCommittees)
	}()

	os.Setenv("PEOPLE_FILE", "people.yaml")
	os.Setenv("COMMITTEES_FILE", "committees.yaml")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.PeopleFile != "people.yaml" {
		t.Errorf("PeopleFile = %s, want people.yaml", config.PeopleFile)
	}
	if config.CommitteesFile != "committees.yaml" {
		t.Errorf("CommitteesFile = %s, want committees.yaml", config.CommitteesFile)
	}
}

// TestConfig_LoggingOptions verifies logging configuration.
func TestConfig_LoggingOptions(t *testing.T) {
	// Save original env
	oldLevel := os.Getenv("LOG_LEVEL")
	oldFormat := os.Getenv("LOG_FORMAT")
	oldOutput := os.Getenv("LOG_OUTPUT")
	defer func() {
		os.Setenv("LOG_LEVEL", oldLevel)
		os.Setenv("LOG_FORMAT", oldFormat)
		os.Setenv("LOG_OUTPUT", oldOutput)
	}()

	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("LOG_OUTPUT", "stdout")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
	if config.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", config.LogFormat)
	}
	if config.LogOutput != "stdout" {
		t.Errorf("LogOutput = %s, want stdout", config.LogOutput)
	}
}

// TestConfig_UpdateFromFlags verifies flag values take precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "error")

	if !config.Verbose {
		t.Error("Verbose not updated from flags")
	}
	if !config.NoColor {
		t.Error("NoColor not updated from flags")
	}
	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error", config.LogLevel)
	}

	// Empty flag value keeps the prior level.
	config.UpdateFromFlags(false, true, false, "")
	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error after empty flag", config.LogLevel)
	}
}
