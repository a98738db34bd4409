package workflows

import (
	"testing"

	"github.com/friuns/vibehub/internal/config"
)

func TestParseSourceArg(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		wantOwner string
		wantRepo  string
		wantPath  string
		wantErr   bool
	}{
		{
			name:      "full path",
			arg:       "octo/tools:.github/workflows/ci.yml",
			wantOwner: "octo",
			wantRepo:  "tools",
			wantPath:  ".github/workflows/ci.yml",
		},
		{
			name:      "bare file name resolves under workflows dir",
			arg:       "octo/tools:ci.yml",
			wantOwner: "octo",
			wantRepo:  "tools",
			wantPath:  ".github/workflows/ci.yml",
		},
		{
			name:    "missing path",
			arg:     "octo/tools",
			wantErr: true,
		},
		{
			name:    "empty path",
			arg:     "octo/tools:",
			wantErr: true,
		},
		{
			name:    "bad repo part",
			arg:     "octotools:ci.yml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, path, err := parseSourceArg(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseSourceArg(%q) expected error, got nil", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSourceArg(%q) unexpected error = %v", tt.arg, err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo || path != tt.wantPath {
				t.Errorf("parseSourceArg(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.arg, owner, repo, path, tt.wantOwner, tt.wantRepo, tt.wantPath)
			}
		})
	}
}

func TestNewWorkflowsCmd(t *testing.T) {
	loadConfig := func(filename string) (*config.Config, error) {
		return config.DefaultConfig(), nil
	}

	configFile := "test-config.yaml"
	cmd := NewWorkflowsCmd(&configFile, loadConfig)

	if cmd.Use != "workflows" {
		t.Errorf("NewWorkflowsCmd() Use = %v, want %v", cmd.Use, "workflows")
	}
	if len(cmd.Commands()) != 2 {
		t.Errorf("NewWorkflowsCmd() has %d subcommands, want 2", len(cmd.Commands()))
	}
}
