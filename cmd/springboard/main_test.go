package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestMainPackageBuilds verifies the main package compiles correctly
func TestMainPackageBuilds(t *testing.T) {
	cmd := exec.Command("go", "build", "-o", os.DevNull, ".")
	cmd.Dir = getPackageDir(t)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("main package failed to build: %v\nOutput: %s", err, output)
	}
}

// TestCLIHelp verifies the help flag works and shows expected output
func TestCLIHelp(t *testing.T) {
	binary := buildTestBinary(t)

	cmd := exec.Command(binary, "--help")
	output, _ := cmd.CombinedOutput()

	expectedFlags := []string{
		"package-id",
		"receivers-dir",
		"dispatch-timeout",
		"log-level",
	}

	outputStr := string(output)
	for _, flag := range expectedFlags {
		if !strings.Contains(outputStr, flag) {
			t.Errorf("help output missing expected flag: %s", flag)
		}
	}
}

// TestCLIInvalidFlag verifies invalid flags are rejected
func TestCLIInvalidFlag(t *testing.T) {
	binary := buildTestBinary(t)

	cmd := exec.Command(binary, "--nonexistent-flag")
	err := cmd.Run()
	if err == nil {
		t.Error("expected error for invalid flag, got nil")
	}
}

// TestExitCodeAlwaysZero verifies every invocation shape exits 0
func TestExitCodeAlwaysZero(t *testing.T) {
	binary := buildTestBinary(t)
	receiversDir := t.TempDir()

	tests := []struct {
		name      string
		args      []string
		expectLog string
	}{
		{"tag link without receiver", []string{"https://rou.video/t/abc123"}, "RECEIVER_NOT_FOUND"},
		{"video link without receiver", []string{"https://rou.video/v/999"}, "RECEIVER_NOT_FOUND"},
		{"single segment", []string{"https://rou.video/t"}, "could not parse uri from invocation"},
		{"no address", nil, "could not parse uri from invocation"},
		{"bad timeout", []string{"--dispatch-timeout", "soon", "https://rou.video/t/abc"}, "cannot load configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--receivers-dir", receiversDir, "--config", ""}, tt.args...)
			cmd := exec.Command(binary, args...)
			cmd.Dir = t.TempDir()
			cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "XDG_CONFIG_HOME="+t.TempDir())

			output, err := cmd.CombinedOutput()
			if err != nil {
				t.Fatalf("expected exit code 0, got %v\nOutput: %s", err, output)
			}
			if !strings.Contains(string(output), tt.expectLog) {
				t.Errorf("output missing %q\nGot: %s", tt.expectLog, output)
			}
		})
	}
}

// TestExecReceiver verifies a link is forwarded to an exec receiver
func TestExecReceiver(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	binary := buildTestBinary(t)
	receiversDir := t.TempDir()
	out := filepath.Join(t.TempDir(), "query")

	manifest := `name: recorder
actions: [eu.kanade.tachiyomi.ANIMESEARCH]
transport: exec
command: [sh, -c, 'printf "%s %s" "$1" "$SPRINGBOARD_FILTER" > "$2"', sh, "{query}", "` + out + `"]
`
	if err := os.WriteFile(filepath.Join(receiversDir, "recorder.yaml"), []byte(manifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	cmd := exec.Command(binary, "--receivers-dir", receiversDir, "https://rou.video/t/abc123")
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "XDG_CONFIG_HOME="+t.TempDir())
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("expected exit code 0, got %v\nOutput: %s", err, output)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		data, err := os.ReadFile(out)
		if err == nil && len(data) > 0 {
			want := "t:abc123 eu.kanade.tachiyomi.animeextension.all.rouvideo"
			if string(data) != want {
				t.Errorf("receiver got %q, want %q", data, want)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("receiver was not started")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// Helper function to get the package directory
func getPackageDir(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal("failed to get package directory")
	}
	return dir
}

// buildTestBinary builds the binary for testing and returns the path
func buildTestBinary(t *testing.T) string {
	t.Helper()

	binary := filepath.Join(t.TempDir(), "springboard-test")
	cmd := exec.Command("go", "build", "-o", binary, ".")
	cmd.Dir = getPackageDir(t)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build test binary: %v\nOutput: %s", err, output)
	}

	return binary
}
