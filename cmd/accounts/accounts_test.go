package accounts

import (
	"testing"

	"github.com/friuns/vibehub/internal/config"
)

func TestNewAccountsCmd(t *testing.T) {
	loadConfig := func(filename string) (*config.Config, error) {
		return config.DefaultConfig(), nil
	}

	configFile := "test-config.yaml"
	cmd := NewAccountsCmd(&configFile, loadConfig)

	if cmd.Use != "accounts" {
		t.Errorf("NewAccountsCmd() Use = %v, want %v", cmd.Use, "accounts")
	}

	want := map[string]bool{"list": false, "add": false, "switch [login]": false, "remove [login]": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Use]; ok {
			want[sub.Use] = true
		}
	}
	for use, found := range want {
		if !found {
			t.Errorf("NewAccountsCmd() missing subcommand %q", use)
		}
	}
}
