package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	libraryDir string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TMDB_API_KEY", "")

	libraryDir := filepath.Join(base, "library")
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, base, libraryDir)

	return &cliTestEnv{
		baseDir:    base,
		configPath: configPath,
		libraryDir: libraryDir,
	}
}

func writeTestConfig(t *testing.T, path, base, libraryDir string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
library_dir = %q
log_dir = %q
history_db = %q

[rename]
action = "dryrun"

[logging]
format = "json"
level = "error"
`,
		libraryDir,
		filepath.Join(base, "logs"),
		filepath.Join(base, "history.db"),
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
