package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "2s" or "500ms" parse
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// WindowConfig bounds the daily delivery window
type WindowConfig struct {
	Start ClockTime `yaml:"start"`
	End   ClockTime `yaml:"end"`
}

// PaceConfig bounds the randomized delay between outbound messages
type PaceConfig struct {
	Min Duration `yaml:"min"`
	Max Duration `yaml:"max"`
}

// WhatsAppConfig configures the chat transport
type WhatsAppConfig struct {
	URL              string   `yaml:"url"`
	UserDataDir      string   `yaml:"user_data_dir"`
	SelfChat         string   `yaml:"self_chat"`
	Headless         bool     `yaml:"headless"`
	SurfaceTimeout   Duration `yaml:"surface_timeout"`   // QR-or-chatlist race
	HandshakeTimeout Duration `yaml:"handshake_timeout"` // QR scan ceiling
	OpTimeout        Duration `yaml:"op_timeout"`        // search/compose waits
	SearchSettle     Duration `yaml:"search_settle"`
	ReadySettle      Duration `yaml:"ready_settle"`
}

// CalendarConfig configures Google Calendar ingestion
type CalendarConfig struct {
	CalendarID  string `yaml:"calendar_id"`
	DaysAhead   int    `yaml:"days_ahead"`
	Credentials string `yaml:"credentials"`
	Token       string `yaml:"token"`
}

// PathsConfig holds the file locations used by a run
type PathsConfig struct {
	Contacts string `yaml:"contacts"`
	Ledger   string `yaml:"ledger"`
	Journal  string `yaml:"journal"`
	Log      string `yaml:"log"`
}

// Config is the full run configuration
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Pace     PaceConfig     `yaml:"pace"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp"`
	Calendar CalendarConfig `yaml:"calendar"`
	Paths    PathsConfig    `yaml:"paths"`
}

// DefaultConfig returns the configuration used when no config file exists,
// with all paths resolved under dataDir
func DefaultConfig(dataDir string) Config {
	return Config{
		Window: WindowConfig{
			Start: ClockTime{Hour: 18, Minute: 40},
			End:   ClockTime{Hour: 19, Minute: 20},
		},
		Pace: PaceConfig{
			Min: Duration(2 * time.Second),
			Max: Duration(8 * time.Second),
		},
		WhatsApp: WhatsAppConfig{
			URL:              "https://web.whatsapp.com",
			UserDataDir:      filepath.Join(dataDir, "whatsapp-session"),
			SelfChat:         "Me",
			Headless:         false,
			SurfaceTimeout:   Duration(10 * time.Second),
			HandshakeTimeout: Duration(60 * time.Second),
			OpTimeout:        Duration(5 * time.Second),
			SearchSettle:     Duration(2 * time.Second),
			ReadySettle:      Duration(3 * time.Second),
		},
		Calendar: CalendarConfig{
			CalendarID:  "primary",
			DaysAhead:   1,
			Credentials: filepath.Join(dataDir, "credentials", "credentials.json"),
			Token:       filepath.Join(dataDir, "credentials", "token.json"),
		},
		Paths: PathsConfig{
			Contacts: filepath.Join(dataDir, "contacts.json"),
			Ledger:   filepath.Join(dataDir, "state.json"),
			Journal:  filepath.Join(dataDir, "journal.db"),
			Log:      filepath.Join(dataDir, "logs", "app.log"),
		},
	}
}

// LoadConfig reads the YAML config at path, applying defaults for anything
// left unset. A missing file yields the defaults; an unreadable or invalid
// file is a ConfigError.
func LoadConfig(path, dataDir string) (Config, error) {
	cfg := DefaultConfig(dataDir)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		LogDebug("no config file at %s, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, &ConfigError{Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Path: path, Err: err}
	}

	if err := cfg.validate(); err != nil {
		return cfg, &ConfigError{Path: path, Err: err}
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Pace.Min.Std() < 0 || c.Pace.Max.Std() < c.Pace.Min.Std() {
		return fmt.Errorf("pace bounds invalid: min=%s max=%s", c.Pace.Min.Std(), c.Pace.Max.Std())
	}
	if c.Calendar.DaysAhead < 0 {
		return fmt.Errorf("calendar days_ahead must not be negative: %d", c.Calendar.DaysAhead)
	}
	if c.WhatsApp.SelfChat == "" {
		return fmt.Errorf("whatsapp self_chat must not be empty")
	}
	return nil
}
