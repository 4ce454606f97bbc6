package config_test

import (
	"strings"
	"testing"

	"github.com/andri/tdialog/pkg/config"
	"github.com/andri/tdialog/pkg/dialog"
)

func TestConfigStringIncludesSections(t *testing.T) {
	cfg := config.DefaultConfig()
	output := cfg.String()

	for _, section := range []string{"theme:", "dialog:", "exit-codes:", "logging:"} {
		if !strings.Contains(output, section) {
			t.Fatalf("expected output to include %q", section)
		}
	}
}

func TestDefaultExitCodesMatchDialogDefaults(t *testing.T) {
	got := config.DefaultConfig().ExitCodes.Map()
	for r, want := range dialog.DefaultExitCodes {
		if got[r] != want {
			t.Errorf("exit code for %s = %d, want %d", r, got[r], want)
		}
	}
}

func TestDialogConfigApply(t *testing.T) {
	d := config.DialogConfig{Shadow: false, Escape: false, TabLen: 4, MaxLines: 20}
	cfg := dialog.DefaultConfig()
	d.Apply(&cfg)

	if !cfg.NoShadow {
		t.Errorf("NoShadow = false, want true")
	}
	if cfg.EscapeEnabled {
		t.Errorf("EscapeEnabled = true, want false")
	}
	if cfg.Text.TabLen != 4 {
		t.Errorf("TabLen = %d, want 4", cfg.Text.TabLen)
	}
	if cfg.Stream.MaxLines != 20 {
		t.Errorf("MaxLines = %d, want 20", cfg.Stream.MaxLines)
	}
}

func TestDialogConfigApplyKeepsPositiveDefaults(t *testing.T) {
	cfg := dialog.DefaultConfig()
	config.DialogConfig{Shadow: true, Escape: true}.Apply(&cfg)

	if cfg.Text.TabLen != 8 {
		t.Errorf("TabLen = %d, want 8", cfg.Text.TabLen)
	}
	if cfg.Stream.MaxLines != 1000 {
		t.Errorf("MaxLines = %d, want 1000", cfg.Stream.MaxLines)
	}
}
