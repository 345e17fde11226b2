package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestReadConfigFindsDefaultFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
interview:
  match-threshold: 8.5
  required-skills:
    - excel
    - charts
session:
  ttl-minutes: 15
`)
	if err := os.WriteFile(filepath.Join(dir, app+".yaml"), content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	v := viper.New()
	if err := readConfig(v, "", dir); err != nil {
		t.Fatalf("default config file was not picked up: %v", err)
	}

	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if config.Interview == nil || config.Interview.MatchThreshold != 8.5 {
		t.Fatalf("interview section not loaded: %+v", config.Interview)
	}
	if len(config.Interview.RequiredSkills) != 2 {
		t.Fatalf("required skills not loaded: %+v", config.Interview.RequiredSkills)
	}
	if config.Session == nil || config.Session.TTLMinutes != 15 {
		t.Fatalf("session section not loaded: %+v", config.Session)
	}
}

func TestReadConfigToleratesMissingDefaultFile(t *testing.T) {
	if err := readConfig(viper.New(), "", t.TempDir()); err != nil {
		t.Fatalf("missing default config must not be an error: %v", err)
	}
}

func TestReadConfigFailsOnBrokenFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, app+".yaml"), []byte("interview: ["), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if err := readConfig(viper.New(), "", dir); err == nil {
		t.Fatal("expected a parse error for a broken config file")
	}
}

func TestReadConfigFailsOnMissingExplicitFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if err := readConfig(viper.New(), missing, ""); err == nil {
		t.Fatal("an explicitly named config file must exist")
	}
}
