package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrsinham/quantitest/internal/assets"
	"github.com/mrsinham/quantitest/internal/report"
)

// writeTestConfig writes a config file pointing assets and logs into dir.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	assetsDir := filepath.Join(dir, "assets")
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := "assets:\n  dir: " + assetsDir + "\n" +
		"logging:\n  file: " + filepath.Join(dir, "quantitest.log") + "\n" +
		"analysis:\n  seed: 7\n"
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "quantitest" {
			t.Errorf("expected use 'quantitest', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has global flags", func(t *testing.T) {
		t.Parallel()
		for name, short := range map[string]string{"config": "c", "verbose": "v", "assets": ""} {
			flag := cmd.PersistentFlags().Lookup(name)
			if flag == nil {
				t.Errorf("expected %s flag", name)
				continue
			}
			if flag.Shorthand != short {
				t.Errorf("%s: expected shorthand %q, got %q", name, short, flag.Shorthand)
			}
		}
		if cmd.Flags().Lookup("out") == nil {
			t.Error("expected out flag on root")
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{"run": false, "steps": false, "export": false, "init": false, "version": false}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})
}

func TestStepsCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "steps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 steps, got %d: %q", len(lines), out)
	}
	if lines[0] != "1. Home/Welcome Page" {
		t.Errorf("first step = %q", lines[0])
	}
	if lines[9] != "10. Results Summary" {
		t.Errorf("last step = %q", lines[9])
	}
}

func TestInitCmd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "quantitest.yaml")

	out, err := execute(t, "init", "-o", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("expected output to mention %s, got %q", path, out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "press_duration") {
		t.Errorf("expected timers in config, got:\n%s", data)
	}

	t.Run("refuses to overwrite", func(t *testing.T) {
		if _, err := execute(t, "init", "-o", path); err == nil {
			t.Error("expected error for existing file")
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		if _, err := execute(t, "init", "-o", path, "-f"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestExportCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "assets", assets.ReportTemplate), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	photo := filepath.Join(dir, "arm.png")
	f, err := os.Create(photo)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	outDir := filepath.Join(dir, "results")
	out, err := execute(t, "export", "-c", cfgPath, "-o", outDir, "--reaction", photo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{report.ResultsFilename, report.SummaryFilename, report.CaptureFilename} {
		path := filepath.Join(outDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("expected output to list %s", path)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "quantitest.log")); err != nil {
		t.Errorf("expected log file: %v", err)
	}
}

func TestExportCmd_MissingTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	_, err := execute(t, "export", "-c", cfgPath, "-o", filepath.Join(dir, "results"))
	if err == nil {
		t.Fatal("expected error without results template")
	}
	if !strings.Contains(err.Error(), assets.ReportTemplate) {
		t.Errorf("expected error to name %s, got %v", assets.ReportTemplate, err)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "export", "-c", filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("expected reading config error, got %v", err)
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)
	t.Setenv("QUANTITEST_LOGGING_LEVEL", "loud")

	_, err := execute(t, "export", "-c", cfgPath, "-o", filepath.Join(dir, "results"))
	if err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("expected logging.level validation error, got %v", err)
	}
}
