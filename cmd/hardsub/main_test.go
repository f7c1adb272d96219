package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\ndata_dir = %q\nlog_dir = %q\n",
		filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIConfigInit(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "nested", "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestCLIDecisionsLifecycle(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, _, err := runCLI(t, configPath, "decisions", "list")
	if err != nil {
		t.Fatalf("decisions list: %v", err)
	}
	if !strings.Contains(out, "No decisions recorded yet") {
		t.Fatalf("unexpected list output: %q", out)
	}

	out, _, err = runCLI(t, configPath, "decisions", "clear")
	if err != nil {
		t.Fatalf("decisions clear: %v", err)
	}
	if !strings.Contains(out, "Removed 0 decision(s)") {
		t.Fatalf("unexpected clear output: %q", out)
	}

	if _, _, err := runCLI(t, configPath, "decisions", "show", "missing-id"); err == nil {
		t.Fatal("expected error for unknown scan id")
	}
}

func TestCLIScanRequiresBinaries(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)
	t.Setenv("PATH", "")

	_, _, err := runCLI(t, configPath, "scan", filepath.Join(base, "movie.mkv"))
	if err == nil {
		t.Fatal("expected error when external tools are missing")
	}
	if !strings.Contains(err.Error(), "missing required tools") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCLIScanRequiresArgument(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	if _, _, err := runCLI(t, configPath, "scan"); err == nil {
		t.Fatal("expected error for missing video argument")
	}
}

func TestCLIRootShowsHelp(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, _, err := runCLI(t, configPath)
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	for _, want := range []string{"scan", "decisions", "deps", "config"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestCLIConfigShowUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, _, err := runCLI(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "ensemble.voting_method") || !strings.Contains(out, "confidence_weighted") {
		t.Fatalf("unexpected show output: %q", out)
	}
}
