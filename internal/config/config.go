package config

import (
	"bytes"
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// FileName is the name of the configuration file looked up in the
	// working directory and in the user's home directory.
	FileName = ".wed.hcl"

	// EnvVar may be set to the path of a configuration file. It takes
	// precedence over the default locations.
	EnvVar = "WED_CONFIG_FILE"

	DefaultWedServer     = "http://localhost:8888/build/kitchen-sink.html"
	DefaultWebDriverURL  = "http://localhost:4444/wd/hub"
	DefaultBrowser       = "chrome"
	DefaultEditorTimeout = "2s"
	DefaultWaitTimeout   = "10s"
	DefaultPollInterval  = "100ms"
	DefaultHistoryDB     = ".wed/history.db"
)

// Config holds the settings shared by every scenario of a run.
type Config struct {
	WedServer        string `hcl:"wed_server" json:"wed_server"`
	WebDriverURL     string `hcl:"webdriver_url" json:"webdriver_url"`
	Browser          string `hcl:"browser" json:"browser"`
	Headless         bool   `hcl:"headless" json:"headless"`
	EditorTimeout    string `hcl:"editor_timeout" json:"editor_timeout"`
	WaitTimeout      string `hcl:"wait_timeout" json:"wait_timeout"`
	PollInterval     string `hcl:"poll_interval" json:"poll_interval"`
	HistoryDB        string `hcl:"history_db" json:"history_db"`
	CleanupOnFailure bool   `hcl:"cleanup_on_failure" json:"cleanup_on_failure"`
}

// Timeouts are the parsed durations of a Config.
type Timeouts struct {
	// Editor bounds the wait for the editor's placeholder to show up.
	Editor time.Duration
	// Wait is the default bound of every other wait, including
	// asynchronous scripts.
	Wait time.Duration
	// Poll is the delay between two evaluations of a wait condition.
	Poll time.Duration
}

// NewConfig returns a Config populated with default values.
func NewConfig() *Config {
	return &Config{
		WedServer:     DefaultWedServer,
		WebDriverURL:  DefaultWebDriverURL,
		Browser:       DefaultBrowser,
		EditorTimeout: DefaultEditorTimeout,
		WaitTimeout:   DefaultWaitTimeout,
		PollInterval:  DefaultPollInterval,
		HistoryDB:     DefaultHistoryDB,
	}
}

// Merge combines this config's values with the other config's values.
// Non-empty strings of other win; booleans of other always win.
func (c *Config) Merge(other *Config) *Config {
	result := *c

	if other.WedServer != "" {
		result.WedServer = other.WedServer
	}
	if other.WebDriverURL != "" {
		result.WebDriverURL = other.WebDriverURL
	}
	if other.Browser != "" {
		result.Browser = other.Browser
	}
	if other.EditorTimeout != "" {
		result.EditorTimeout = other.EditorTimeout
	}
	if other.WaitTimeout != "" {
		result.WaitTimeout = other.WaitTimeout
	}
	if other.PollInterval != "" {
		result.PollInterval = other.PollInterval
	}
	if other.HistoryDB != "" {
		result.HistoryDB = other.HistoryDB
	}

	result.Headless = other.Headless
	result.CleanupOnFailure = other.CleanupOnFailure

	return &result
}

// Timeouts parses the duration settings.
func (c *Config) Timeouts() (Timeouts, error) {
	var t Timeouts
	for _, d := range []struct {
		name  string
		value string
		out   *time.Duration
	}{
		{"editor_timeout", c.EditorTimeout, &t.Editor},
		{"wait_timeout", c.WaitTimeout, &t.Wait},
		{"poll_interval", c.PollInterval, &t.Poll},
	} {
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return Timeouts{}, errors.Wrapf(err, "invalid %s", d.name)
		}
		if parsed <= 0 {
			return Timeouts{}, errors.Errorf("%s must be positive, got %s", d.name, d.value)
		}
		*d.out = parsed
	}
	return t, nil
}

// Validate reports the first setting that cannot be used for a run.
func (c *Config) Validate() error {
	if c.WedServer == "" {
		return errors.New("wed_server is not set")
	}
	if c.WebDriverURL == "" {
		return errors.New("webdriver_url is not set")
	}
	switch c.Browser {
	case "chrome", "firefox":
	default:
		return errors.Errorf("unsupported browser %q", c.Browser)
	}
	_, err := c.Timeouts()
	return err
}

func (c *Config) String() string {
	data, err := json.Marshal(c)
	if err != nil {
		return "<unprintable config>"
	}

	var out bytes.Buffer
	json.Indent(&out, data, "", "\t")
	return out.String()
}

// Locations returns the candidate config file paths in decreasing
// precedence. Empty entries are skipped by LoadConfig.
func Locations() []string {
	locations := []string{os.Getenv(EnvVar)}
	if cwd, err := os.Getwd(); err == nil {
		locations = append(locations, filepath.Join(cwd, FileName))
	}
	if u, err := user.Current(); err == nil {
		locations = append(locations, filepath.Join(u.HomeDir, FileName))
	}
	return locations
}

// LoadConfig loads path when it is not empty, and otherwise the first
// readable file of Locations. A missing file is not an error; a file
// that exists but does not decode is.
func LoadConfig(path string, log *zap.Logger) (*Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := NewConfig()

	if path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "loading config %s", path)
		}
		return cfg.Merge(loaded), nil
	}

	for _, location := range Locations() {
		if location == "" {
			continue
		}
		log.Debug("trying config location", zap.String("path", location))
		loaded, err := loadConfigFile(location)
		if os.IsNotExist(errors.Cause(err)) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "loading config %s", location)
		}
		cfg = cfg.Merge(loaded)
		break
	}

	log.Debug("harness config", zap.String("config", cfg.String()))
	return cfg, nil
}

func loadConfigFile(cfgPath string) (*Config, error) {
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := hcl.Decode(cfg, string(data)); err != nil {
		return nil, errors.Wrap(err, "decoding hcl")
	}
	return cfg, nil
}

// Default is the config file written by `wed init`.
const Default = `# wed acceptance test configuration
wed_server    = "` + DefaultWedServer + `"
webdriver_url = "` + DefaultWebDriverURL + `"
browser       = "` + DefaultBrowser + `"
headless      = true

editor_timeout = "` + DefaultEditorTimeout + `"
wait_timeout   = "` + DefaultWaitTimeout + `"
poll_interval  = "` + DefaultPollInterval + `"

history_db         = "` + DefaultHistoryDB + `"
cleanup_on_failure = true
`
