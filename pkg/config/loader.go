package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvRCFile names the environment variable pointing at an rc file.
const EnvRCFile = "DIALOGRC"

// exitCodeEnv maps exit-code keys to the historical environment variables.
var exitCodeEnv = map[string]string{
	"exit-codes.ok":      "DIALOG_OK",
	"exit-codes.cancel":  "DIALOG_CANCEL",
	"exit-codes.help":    "DIALOG_HELP",
	"exit-codes.extra":   "DIALOG_EXTRA",
	"exit-codes.timeout": "DIALOG_TIMEOUT",
	"exit-codes.esc":     "DIALOG_ESC",
	"exit-codes.error":   "DIALOG_ERROR",
	"exit-codes.left1":   "DIALOG_LEFT1",
	"exit-codes.left2":   "DIALOG_LEFT2",
	"exit-codes.left3":   "DIALOG_LEFT3",
	"exit-codes.right1":  "DIALOG_RIGHT1",
	"exit-codes.right2":  "DIALOG_RIGHT2",
	"exit-codes.right3":  "DIALOG_RIGHT3",
}

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	ConfigFile  string
	ConfigFiles []string
	Flags       *pflag.FlagSet
}

// LoadResult contains the merged configuration and validation output.
type LoadResult struct {
	Config         Config
	Validation     ValidationResult
	ConfigFileUsed string
}

// LoadConfig loads configuration from defaults, rc file, env, and flags.
func LoadConfig(opts LoadOptions) (LoadResult, error) {
	v := viper.New()
	setDefaults(v)
	if err := configureEnv(v); err != nil {
		return LoadResult{}, err
	}

	if opts.Flags != nil {
		if err := BindFlags(v, opts.Flags); err != nil {
			return LoadResult{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	configPath, err := resolveConfigFile(opts)
	if err != nil {
		return LoadResult{}, err
	}

	var unknown []error
	if configPath != "" {
		v.SetConfigFile(configPath)
		if filepath.Ext(configPath) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return LoadResult{}, fmt.Errorf("read config: %w", err)
		}
		unknown = unknownKeys(v.AllKeys())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return LoadResult{}, fmt.Errorf("unmarshal config: %w", err)
	}

	validation := ValidateConfig(cfg)
	validation.Errors = append(unknown, validation.Errors...)
	result := LoadResult{
		Config:         cfg,
		Validation:     validation,
		ConfigFileUsed: v.ConfigFileUsed(),
	}
	if validation.HasErrors() {
		return result, &ValidationError{Result: validation}
	}
	return result, nil
}

// BindFlags binds the process-level flags to viper keys.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"log-level":  "logging.level",
		"log-file":   "logging.file",
		"log-format": "logging.format",
		"tab-len":    "dialog.tab-len",
		"max-lines":  "dialog.max-lines",
	}

	for flag, key := range bindings {
		f := flags.Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}

	return nil
}

// SaveRC writes cfg as YAML to path, creating parent directories.
func SaveRC(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create rc directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode rc file: %w", err)
	}
	header := []byte("# tdialog run-time configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("write rc file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	t := defaults.Theme
	v.SetDefault("theme.use-colors", t.UseColors)
	v.SetDefault("theme.border-style", t.BorderStyle)
	v.SetDefault("theme.screen", t.Screen)
	v.SetDefault("theme.dialog", t.Dialog)
	v.SetDefault("theme.title", t.Title)
	v.SetDefault("theme.border", t.Border)
	v.SetDefault("theme.button-active", t.ButtonActive)
	v.SetDefault("theme.button-inactive", t.ButtonInactive)
	v.SetDefault("theme.gauge", t.Gauge)
	v.SetDefault("theme.error", t.Error)

	v.SetDefault("dialog.shadow", defaults.Dialog.Shadow)
	v.SetDefault("dialog.escape", defaults.Dialog.Escape)
	v.SetDefault("dialog.tab-len", defaults.Dialog.TabLen)
	v.SetDefault("dialog.max-lines", defaults.Dialog.MaxLines)

	e := defaults.ExitCodes
	v.SetDefault("exit-codes.ok", e.OK)
	v.SetDefault("exit-codes.cancel", e.Cancel)
	v.SetDefault("exit-codes.help", e.Help)
	v.SetDefault("exit-codes.extra", e.Extra)
	v.SetDefault("exit-codes.timeout", e.Timeout)
	v.SetDefault("exit-codes.esc", e.ESC)
	v.SetDefault("exit-codes.error", e.Error)
	v.SetDefault("exit-codes.left1", e.Left1)
	v.SetDefault("exit-codes.left2", e.Left2)
	v.SetDefault("exit-codes.left3", e.Left3)
	v.SetDefault("exit-codes.right1", e.Right1)
	v.SetDefault("exit-codes.right2", e.Right2)
	v.SetDefault("exit-codes.right3", e.Right3)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

func configureEnv(v *viper.Viper) error {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	v.SetEnvKeyReplacer(replacer)
	v.SetEnvPrefix("TDIALOG")
	v.AutomaticEnv()

	for key, env := range exitCodeEnv {
		if err := v.BindEnv(key, "TDIALOG_"+replacer.Replace(strings.ToUpper(key)), env); err != nil {
			return fmt.Errorf("bind env %s: %w", env, err)
		}
	}
	return nil
}

func resolveConfigFile(opts LoadOptions) (string, error) {
	explicit := opts.ConfigFile
	if explicit == "" && opts.ConfigFiles == nil {
		explicit = os.Getenv(EnvRCFile)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("config file not found: %s", explicit)
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		return explicit, nil
	}

	candidates := opts.ConfigFiles
	if len(candidates) == 0 {
		candidates = defaultConfigFiles()
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		if info.IsDir() {
			continue
		}
		return candidate, nil
	}

	return "", nil
}

func defaultConfigFiles() []string {
	files := []string{"./tdialog.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".config", "tdialog", "config.yaml"))
	}
	files = append(files, "/etc/tdialog/config.yaml")
	return files
}

// knownKeys lists every dotted key reachable through mapstructure tags.
func knownKeys() map[string]bool {
	keys := make(map[string]bool)
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := f.Tag.Get("mapstructure")
			if name == "" {
				continue
			}
			if prefix != "" {
				name = prefix + "." + name
			}
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, name)
				continue
			}
			keys[name] = true
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

func unknownKeys(all []string) []error {
	known := knownKeys()
	var errs []error
	sort.Strings(all)
	for _, key := range all {
		if !known[key] {
			errs = append(errs, fmt.Errorf("unknown config key %q", key))
		}
	}
	return errs
}
