package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadProjectFile(t *testing.T) {
	path := writeFile(t, "stackless.toml", `
[analysis]
jobs = 4
verify = true
cache_dir = "/tmp/dumps"

[analysis.pragmas]
verify = true
opaque = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Jobs != 4 || !cfg.Verify || cfg.CacheDir != "/tmp/dumps" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.Pragmas["verify"] || cfg.Pragmas["opaque"] {
		t.Errorf("unexpected pragma defaults: %v", cfg.Pragmas)
	}
}

func TestLoadEmptyProjectFile(t *testing.T) {
	path := writeFile(t, "stackless.toml", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Jobs != 0 || cfg.Verify || cfg.Pragmas == nil {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeFile(t, "stackless.toml", "[analysis\njobs = 4")

	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestPragmaDefault(t *testing.T) {
	cfg := Config{Pragmas: map[string]bool{"verify": false}}

	if cfg.PragmaDefault("verify", true)() {
		t.Error("the configured default must win over the fallback")
	}
	if !cfg.PragmaDefault("opaque", true)() {
		t.Error("the fallback must apply to unconfigured pragmas")
	}
}

func TestLoadPipeline(t *testing.T) {
	path := writeFile(t, "pipeline.yaml", `
passes:
  - livevar
  - borrow
  - writeback
`)

	pf, err := LoadPipeline(path)
	if err != nil {
		t.Fatalf("load pipeline: %v", err)
	}
	if len(pf.Passes) != 3 || pf.Passes[0] != "livevar" || pf.Passes[2] != "writeback" {
		t.Errorf("unexpected passes: %v", pf.Passes)
	}
}

func TestLoadPipelineRejectsEmpty(t *testing.T) {
	path := writeFile(t, "pipeline.yaml", "passes: []\n")

	if _, err := LoadPipeline(path); err == nil || !strings.Contains(err.Error(), "no passes") {
		t.Errorf("expected an empty-pipeline error, got %v", err)
	}
}

func TestLoadPipelineRejectsDuplicates(t *testing.T) {
	path := writeFile(t, "pipeline.yaml", "passes: [livevar, borrow, livevar]\n")

	if _, err := LoadPipeline(path); err == nil || !strings.Contains(err.Error(), "listed twice") {
		t.Errorf("expected a duplicate-pass error, got %v", err)
	}
}
