package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Plan.MinSimilarity != DefaultMinSimilarity {
		t.Errorf("MinSimilarity = %v, want %v", cfg.Plan.MinSimilarity, DefaultMinSimilarity)
	}
	if !cfg.Execute.Backup {
		t.Error("backups must default to on")
	}
	if !cfg.Scan.RespectGitignore {
		t.Error("gitignore must be respected by default")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"similarity above one", func(c *Config) { c.Plan.MinSimilarity = 1.5 }, "min_similarity"},
		{"similarity negative", func(c *Config) { c.Plan.MinSimilarity = -0.1 }, "min_similarity"},
		{"negative concurrency", func(c *Config) { c.Scan.MaxConcurrency = -1 }, "max_concurrency"},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoadConfigJSONWithComments(t *testing.T) {
	// The init command writes commented JSON; loading must tolerate it
	path := writeConfig(t, "tsshift.config.json",
		GetFullConfigTemplate(ProjectTypeReact, StrictnessRelaxed))

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Plan.MinSimilarity != 0.9 {
		t.Errorf("MinSimilarity = %v, want the relaxed floor 0.9", cfg.Plan.MinSimilarity)
	}
	found := false
	for _, p := range cfg.Scan.ExcludePatterns {
		if p == ".next" {
			found = true
		}
	}
	if !found {
		t.Errorf("ExcludePatterns = %v, want the react excludes", cfg.Scan.ExcludePatterns)
	}
}

func TestLoadConfigMinimalTemplate(t *testing.T) {
	path := writeConfig(t, "tsshift.config.json", GetMinimalConfigTemplate())

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Plan.MinSimilarity != 1.0 {
		t.Errorf("MinSimilarity = %v, want 1.0", cfg.Plan.MinSimilarity)
	}
	// Keys the minimal template omits keep their defaults
	if cfg.Output.Format != "text" {
		t.Errorf("Format = %q, want the default", cfg.Output.Format)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "tsshift.yaml", `plan:
  min_similarity: 0.95
execute:
  backup: false
  library_root: src/lib
output:
  format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Plan.MinSimilarity != 0.95 {
		t.Errorf("MinSimilarity = %v", cfg.Plan.MinSimilarity)
	}
	if cfg.Execute.Backup {
		t.Error("backup should be disabled by the file")
	}
	if cfg.Execute.LibraryRoot != "src/lib" {
		t.Errorf("LibraryRoot = %q", cfg.Execute.LibraryRoot)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q", cfg.Output.Format)
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("an explicit path that does not exist must fail")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "tsshift.config.json", `{"plan": {"min_similarity": 2.0}}`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("out-of-range similarity must fail validation")
	}
}

func TestFindConfigFileWalksParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "packages", "app")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	want := filepath.Join(root, ".tsshiftrc.json")
	if err := os.WriteFile(want, []byte(`{}`), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if got := FindConfigFile(nested); got != want {
		t.Errorf("FindConfigFile = %q, want %q", got, want)
	}
}

func TestFindConfigFileNone(t *testing.T) {
	if got := FindConfigFile(t.TempDir()); got != "" {
		t.Errorf("FindConfigFile = %q, want empty", got)
	}
}

func TestStrictnessMinSimilarity(t *testing.T) {
	tests := []struct {
		s    Strictness
		want float64
	}{
		{StrictnessRelaxed, 0.9},
		{StrictnessStandard, DefaultMinSimilarity},
		{StrictnessStrict, 1.0},
	}
	for _, tt := range tests {
		if got := strictnessMinSimilarity(tt.s); got != tt.want {
			t.Errorf("strictnessMinSimilarity(%s) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
