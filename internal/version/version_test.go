package version

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
)

// TestHelperProcess isn't a real test. It's used to mock exec.CommandContext.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}
	if len(args) < 3 || args[0] != "git" {
		os.Exit(1)
	}

	switch args[2] {
	case "--always":
		if os.Getenv("MOCK_GIT_COMMIT_FAIL") == "1" {
			os.Exit(1)
		}
		os.Stdout.WriteString("mock-commit-hash\n")
	case "--tags":
		if os.Getenv("MOCK_GIT_VERSION_FAIL") == "1" {
			os.Exit(1)
		}
		os.Stdout.WriteString("v1.0.0\n")
	}
}

func mockExecCommand(env ...string) func(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, arg...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append([]string{"GO_WANT_HELPER_PROCESS=1"}, env...)
		return cmd
	}
}

func reset() {
	Version, Commit, Date = "", "", ""
	once = sync.Once{}
}

func TestInfo(t *testing.T) {
	origExecCommand := execCommand
	defer func() {
		execCommand = origExecCommand
		reset()
	}()

	tests := []struct {
		name           string
		env            []string
		expectedVer    string
		expectedCommit string
	}{
		{"Success", nil, "1.0.0", "mock-commit-hash"},
		{"CommitFail", []string{"MOCK_GIT_COMMIT_FAIL=1"}, "1.0.0", "unknown"},
		{"VersionFail", []string{"MOCK_GIT_VERSION_FAIL=1"}, "dev", "mock-commit-hash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset()
			execCommand = mockExecCommand(tt.env...)

			info := Info()
			if Version != tt.expectedVer {
				t.Errorf("Version = %q, want %q", Version, tt.expectedVer)
			}
			if Commit != tt.expectedCommit {
				t.Errorf("Commit = %q, want %q", Commit, tt.expectedCommit)
			}
			if !strings.HasPrefix(info, "interaction-sector-viewer ") {
				t.Errorf("Info() = %q", info)
			}
		})
	}
}

func TestInfo_LdflagsWin(t *testing.T) {
	defer reset()
	reset()
	Version, Commit, Date = "2.0.0", "abc123", "2024-01-01"

	info := Info()
	if !strings.Contains(info, "2.0.0") || !strings.Contains(info, "abc123") || !strings.Contains(info, "2024-01-01") {
		t.Errorf("Info() = %q", info)
	}
}
