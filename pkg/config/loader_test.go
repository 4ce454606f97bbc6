package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andri/tdialog/pkg/config"
	"github.com/andri/tdialog/pkg/dialog"
	"github.com/spf13/pflag"
)

// noFiles keeps discovery from picking up rc files on the test host.
var noFiles = []string{""}

func TestLoadConfigDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("# empty\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	result, err := config.LoadConfig(config.LoadOptions{ConfigFile: configPath})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	cfg := result.Config
	if cfg.Theme.BorderStyle != config.DefaultBorderStyle {
		t.Fatalf("expected border style default %q, got %q", config.DefaultBorderStyle, cfg.Theme.BorderStyle)
	}
	if cfg.Dialog.TabLen != config.DefaultTabLen {
		t.Fatalf("expected tab-len default %d, got %d", config.DefaultTabLen, cfg.Dialog.TabLen)
	}
	if cfg.ExitCodes.Error != 255 {
		t.Fatalf("expected error exit code 255, got %d", cfg.ExitCodes.Error)
	}
	if result.Validation.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", result.Validation.Errors)
	}
}

func TestLoadConfigFlagOverridesDefault(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.Int("tab-len", 8, "")
	if err := flags.Set("log-level", "debug"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	result, err := config.LoadConfig(config.LoadOptions{Flags: flags, ConfigFiles: noFiles})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if result.Config.Logging.Level != "debug" {
		t.Fatalf("expected flag override, got %q", result.Config.Logging.Level)
	}
	if result.Config.Dialog.TabLen != config.DefaultTabLen {
		t.Fatalf("unchanged flag must not override, got tab-len %d", result.Config.Dialog.TabLen)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := config.LoadConfig(config.LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadConfigFromFileFixture(t *testing.T) {
	result, err := config.LoadConfig(config.LoadOptions{ConfigFile: testdataPath(t, "full.yaml")})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	cfg := result.Config
	if cfg.Theme.BorderStyle != "double" {
		t.Fatalf("expected border style from file, got %q", cfg.Theme.BorderStyle)
	}
	if cfg.Theme.Screen != "#003366" {
		t.Fatalf("expected screen color from file, got %q", cfg.Theme.Screen)
	}
	if cfg.Dialog.Shadow {
		t.Fatalf("expected shadow disabled from file")
	}
	if cfg.Dialog.MaxLines != 500 {
		t.Fatalf("expected max-lines from file, got %d", cfg.Dialog.MaxLines)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected log format from file, got %q", cfg.Logging.Format)
	}
	if result.Validation.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", result.Validation.Errors)
	}
}

func TestLoadConfigPartialUsesDefaults(t *testing.T) {
	result, err := config.LoadConfig(config.LoadOptions{ConfigFile: testdataPath(t, "partial.yaml")})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	cfg := result.Config
	if cfg.Theme.Gauge != "#00ff00" {
		t.Fatalf("expected gauge color from file, got %q", cfg.Theme.Gauge)
	}
	if cfg.Theme.Title != config.DefaultConfig().Theme.Title {
		t.Fatalf("expected default title color, got %q", cfg.Theme.Title)
	}
	if cfg.ExitCodes.ESC != 255 {
		t.Fatalf("expected esc exit code from file, got %d", cfg.ExitCodes.ESC)
	}
	if cfg.ExitCodes.Cancel != 1 {
		t.Fatalf("expected default cancel exit code, got %d", cfg.ExitCodes.Cancel)
	}
	if !result.Validation.HasWarnings() {
		t.Fatalf("expected warning for esc sharing the error exit code")
	}
}

func TestLoadConfigDialogEnvOverridesFile(t *testing.T) {
	t.Setenv("DIALOG_CANCEL", "9")
	t.Setenv("DIALOG_ESC", "7")

	result, err := config.LoadConfig(config.LoadOptions{ConfigFile: testdataPath(t, "partial.yaml")})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if result.Config.ExitCodes.Cancel != 9 {
		t.Fatalf("expected DIALOG_CANCEL override, got %d", result.Config.ExitCodes.Cancel)
	}
	if result.Config.ExitCodes.ESC != 7 {
		t.Fatalf("expected DIALOG_ESC to win over the rc file, got %d", result.Config.ExitCodes.ESC)
	}
}

func TestLoadConfigButtonSlotEnv(t *testing.T) {
	t.Setenv("DIALOG_LEFT1", "21")
	t.Setenv("DIALOG_RIGHT3", "23")

	result, err := config.LoadConfig(config.LoadOptions{ConfigFiles: noFiles})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	codes := result.Config.ExitCodes.Map()
	if codes[dialog.ResultLeft1] != 21 || codes[dialog.ResultRight3] != 23 {
		t.Fatalf("slot codes = %d/%d, want 21/23", codes[dialog.ResultLeft1], codes[dialog.ResultRight3])
	}
	if codes[dialog.ResultLeft2] != 7 {
		t.Errorf("left2 = %d, want default 7", codes[dialog.ResultLeft2])
	}
}

func TestLoadConfigPrefixedEnvOverridesDefault(t *testing.T) {
	t.Setenv("TDIALOG_THEME_BORDER_STYLE", "thick")
	t.Setenv("TDIALOG_DIALOG_TAB_LEN", "2")

	result, err := config.LoadConfig(config.LoadOptions{ConfigFiles: noFiles})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if result.Config.Theme.BorderStyle != "thick" {
		t.Fatalf("expected env override for border style, got %q", result.Config.Theme.BorderStyle)
	}
	if result.Config.Dialog.TabLen != 2 {
		t.Fatalf("expected env override for tab-len, got %d", result.Config.Dialog.TabLen)
	}
}

func TestLoadConfigDialogRCEnv(t *testing.T) {
	t.Setenv(config.EnvRCFile, testdataPath(t, "full.yaml"))

	result, err := config.LoadConfig(config.LoadOptions{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if result.ConfigFileUsed != testdataPath(t, "full.yaml") {
		t.Fatalf("expected DIALOGRC file to be used, got %q", result.ConfigFileUsed)
	}
}

func TestLoadConfigConfigFileDiscovery(t *testing.T) {
	tempDir := t.TempDir()
	missing := filepath.Join(tempDir, "missing.yaml")
	first := filepath.Join(tempDir, "first.yaml")
	second := filepath.Join(tempDir, "second.yaml")

	if err := os.WriteFile(first, []byte("logging:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write first config: %v", err)
	}
	if err := os.WriteFile(second, []byte("logging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatalf("write second config: %v", err)
	}

	result, err := config.LoadConfig(config.LoadOptions{ConfigFiles: []string{missing, first, second}})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if result.Config.Logging.Level != "debug" {
		t.Fatalf("expected first config file to win, got %q", result.Config.Logging.Level)
	}
	if result.ConfigFileUsed != first {
		t.Fatalf("expected ConfigFileUsed %q, got %q", first, result.ConfigFileUsed)
	}
}

func TestLoadConfigNoConfigFileFound(t *testing.T) {
	result, err := config.LoadConfig(config.LoadOptions{ConfigFiles: []string{filepath.Join(t.TempDir(), "missing.yaml")}})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if result.ConfigFileUsed != "" {
		t.Fatalf("expected no config file used, got %q", result.ConfigFileUsed)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(configPath, []byte("theme: ["), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if _, err := config.LoadConfig(config.LoadOptions{ConfigFile: configPath}); err == nil {
		t.Fatalf("expected error for invalid YAML")
	}
}

func TestLoadConfigUnknownKeys(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantKey  string
	}{
		{"top level", "logging:\n  level: info\nunknown-section:\n  foo: bar\n", "unknown-section"},
		{"nested", "theme:\n  gauge: \"2\"\n  invalid-key: x\n", "theme.invalid-key"},
		{"typo", "dialog:\n  tab-lenght: 4\n", "tab-lenght"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.contents), 0o600); err != nil {
				t.Fatalf("write config file: %v", err)
			}

			result, err := config.LoadConfig(config.LoadOptions{ConfigFile: configPath})
			if err == nil {
				t.Fatalf("expected error for unknown config key")
			}
			var verr *config.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			found := false
			for _, e := range result.Validation.Errors {
				if strings.Contains(e.Error(), tt.wantKey) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for %s, got errors: %v", tt.wantKey, result.Validation.Errors)
			}
		})
	}
}

func TestSaveRCRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tdialogrc")
	cfg := config.DefaultConfig()
	cfg.Theme.Gauge = "#123456"
	cfg.ExitCodes.ESC = 9

	if err := config.SaveRC(path, cfg); err != nil {
		t.Fatalf("save rc: %v", err)
	}

	result, err := config.LoadConfig(config.LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("load saved rc: %v", err)
	}
	if result.Config.Theme.Gauge != "#123456" {
		t.Errorf("gauge = %q, want #123456", result.Config.Theme.Gauge)
	}
	if result.Config.ExitCodes.ESC != 9 {
		t.Errorf("esc = %d, want 9", result.Config.ExitCodes.ESC)
	}
}

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join("testdata", name)
}
