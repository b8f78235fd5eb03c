package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestGodotenvQuoting(t *testing.T) {
	content := `INVSIM_EXPORT_DIR='exports with "double quotes"'`
	tmpfile, err := os.CreateTemp("", ".env.test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(tmpfile.Name())
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `exports with "double quotes"`
	if env["INVSIM_EXPORT_DIR"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["INVSIM_EXPORT_DIR"])
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_PATH", dir)
	t.Setenv("INVSIM_MAX_WEEKS", "20")
	t.Setenv("INVSIM_HTTP_ADDR", "127.0.0.1:9090")
	t.Setenv("INVSIM_SWEEP_CONCURRENCY", "0")
	t.Setenv("ENABLE_MERMAID_CHARTS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataPath != dir {
		t.Errorf("Expected data path %s, got %s", dir, cfg.DataPath)
	}
	if cfg.ExportDir != filepath.Join(dir, "exports") {
		t.Errorf("Expected export dir under data path, got %s", cfg.ExportDir)
	}
	if _, err := os.Stat(cfg.ExportDir); err != nil {
		t.Errorf("Expected export dir to be created: %v", err)
	}
	if cfg.MaxWeeks != 20 {
		t.Errorf("Expected max weeks 20, got %d", cfg.MaxWeeks)
	}
	if cfg.HTTPAddr != "127.0.0.1:9090" {
		t.Errorf("Expected HTTP addr 127.0.0.1:9090, got %s", cfg.HTTPAddr)
	}
	if cfg.SweepConcurrency != 1 {
		t.Errorf("Expected sweep concurrency to be clamped to 1, got %d", cfg.SweepConcurrency)
	}
	if !cfg.EnableMermaidCharts {
		t.Error("Expected mermaid charts to be enabled")
	}
}

func TestGetEnvInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("INVSIM_TEST_INT", "twelve")
	if got := getEnvInt("INVSIM_TEST_INT", 7); got != 7 {
		t.Errorf("Expected fallback 7, got %d", got)
	}
}
