package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mailprov/pkg/serrors"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains the control panel credentials, the batch to provision, the
// remote browser endpoint, wait timeouts and diagnostics output.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Panel contains the control panel location and credentials
	Panel struct {
		// URL is the login page of the control panel
		URL string `env:"CPANEL_URL" env-default:"https://cpanel.example.com" yaml:"url"`
		// Username is the control panel account
		Username string `env:"CPANEL_USER" yaml:"username"`
		// Password is the control panel password
		Password string `env:"CPANEL_PASS" yaml:"password"`
		// Theme is the path segment of the UI theme used in deep links
		Theme string `env:"CPANEL_THEME" env-default:"jupiter" yaml:"theme"`
	} `yaml:"panel"`

	// Accounts describes the batch of mailboxes to create
	Accounts struct {
		// Domain overrides the default mail domain when set
		Domain string `env:"DOMAIN" yaml:"domain"`
		// Prefix is prepended to the zero-padded sequence number
		Prefix string `env:"EMAIL_PREFIX" env-default:"user" yaml:"prefix"`
		// Count is the number of accounts to create
		Count int `env:"COUNT" env-default:"3" yaml:"count"`
		// StaticPassword is used for every account when set, otherwise passwords are generated
		StaticPassword string `env:"PASSWORD_STATIC" yaml:"staticPassword"`
		// PasswordLength is the length of generated passwords
		PasswordLength int `env:"PASSWORD_LENGTH" env-default:"14" yaml:"passwordLength"`
		// UnlimitedQuota selects the unlimited storage option
		UnlimitedQuota bool `env:"UNLIMITED_QUOTA" env-default:"true" yaml:"unlimitedQuota"`
		// SendWelcomeEmail asks the panel to send the welcome message
		SendWelcomeEmail bool `env:"SEND_WELCOME_EMAIL" env-default:"true" yaml:"sendWelcomeEmail"`
		// StayOnPage keeps the create form open after each submission
		StayOnPage bool `env:"STAY_ON_PAGE" env-default:"true" yaml:"stayOnPage"`
		// Interval is the minimum time between two account attempts
		Interval time.Duration `env:"ACCOUNT_INTERVAL" env-default:"0s" yaml:"interval"`
	} `yaml:"accounts"`

	// Browser contains the remote DevTools endpoint settings
	Browser struct {
		// URL is the DevTools endpoint of the already running browser
		URL string `env:"BROWSER_URL" env-default:"http://s-chromium:9222" yaml:"url"`
		// ConnectRetries is how many times the endpoint is probed before giving up
		ConnectRetries int `env:"BROWSER_CONNECT_RETRIES" env-default:"10" yaml:"connectRetries"`
		// ConnectRetryWait is the pause between two probes
		ConnectRetryWait time.Duration `env:"BROWSER_CONNECT_RETRY_WAIT" env-default:"1s" yaml:"connectRetryWait"`
		// WindowWidth and WindowHeight set the tab viewport, zero keeps the browser default
		WindowWidth  int64 `env:"BROWSER_WINDOW_WIDTH" env-default:"1366" yaml:"windowWidth"`
		WindowHeight int64 `env:"BROWSER_WINDOW_HEIGHT" env-default:"900" yaml:"windowHeight"`
	} `yaml:"browser"`

	// Timeouts bounds every wait performed against the page
	Timeouts struct {
		// Wait is the general element wait used by login and navigation
		Wait time.Duration `env:"WAIT_TIMEOUT" env-default:"25s" yaml:"wait"`
		// AngularReady bounds the wait for the single page app to settle
		AngularReady time.Duration `env:"ANGULAR_READY_TIMEOUT" env-default:"30s" yaml:"angularReady"`
		// ButtonReady bounds the create button readiness probe
		ButtonReady time.Duration `env:"BUTTON_READY_TIMEOUT" env-default:"30s" yaml:"buttonReady"`
		// ButtonDwell is how long the button must stay ready before clicking
		ButtonDwell time.Duration `env:"BUTTON_READY_DWELL" env-default:"500ms" yaml:"buttonDwell"`
		// PollInterval is the delay between two readiness probes
		PollInterval time.Duration `env:"POLL_INTERVAL" env-default:"100ms" yaml:"pollInterval"`
		// CreateCycle bounds the wait for the loading panel after a submission
		CreateCycle time.Duration `env:"CREATE_CYCLE_TIMEOUT" env-default:"35s" yaml:"createCycle"`
		// AfterSubmit bounds each check performed after a confirmed submission
		AfterSubmit time.Duration `env:"AFTER_SUBMIT_TIMEOUT" env-default:"10s" yaml:"afterSubmit"`
		// Verify bounds the search for the new row in the accounts table
		Verify time.Duration `env:"VERIFY_TIMEOUT" env-default:"15s" yaml:"verify"`
		// Settle is the pause between filling the form and submitting it
		Settle time.Duration `env:"SETTLE_DELAY" env-default:"300ms" yaml:"settle"`
	} `yaml:"timeouts"`

	// Status configures the optional HTTP endpoint exposing progress, metrics and pprof while a batch runs
	Status struct {
		// Addr is the listen address, e.g. ":9090". Empty disables the endpoint
		Addr string `env:"STATUS_ADDR" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request
		ReadTimeout time.Duration `env:"STATUS_READ_TIMEOUT" env-default:"5s" yaml:"readTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"STATUS_WRITE_TIMEOUT" env-default:"60s" yaml:"writeTimeout"`
		// ShutdownTimeout bounds the graceful shutdown of the endpoint
		ShutdownTimeout time.Duration `env:"STATUS_SHUTDOWN_TIMEOUT" env-default:"5s" yaml:"shutdownTimeout"`
	} `yaml:"status"`

	// Diagnostics contains the output locations for logs, screenshots and metrics
	Diagnostics struct {
		// LogDir receives the log file, screenshots and the metrics textfile
		LogDir string `env:"LOG_DIR" env-default:"/app/debug" yaml:"logDir"`
		// LogFile is the log file name inside LogDir
		LogFile string `env:"LOG_FILE" env-default:"mailprov.log" yaml:"logFile"`
		// LogMaxSizeMB is the size at which the log file is rotated
		LogMaxSizeMB int `env:"LOG_MAX_SIZE_MB" env-default:"20" yaml:"logMaxSizeMB"`
		// LogMaxBackups is the number of rotated log files kept
		LogMaxBackups int `env:"LOG_MAX_BACKUPS" env-default:"5" yaml:"logMaxBackups"`
		// MetricsFile is the Prometheus textfile name inside LogDir, empty disables it
		MetricsFile string `env:"METRICS_FILE" env-default:"mailprov.prom" yaml:"metricsFile"`
	} `yaml:"diagnostics"`
}

// Load receives the path for yaml config file and returns a filled Config struct.
// A missing file is not an error: the configuration is then read from the
// environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(configPath)
	switch {
	case configPath != "" && statErr == nil:
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	case configPath == "" || errors.Is(statErr, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("could not stat config file: %w", statErr)
	}

	return &cfg, nil
}

// Validate reports missing credentials and nonsensical batch settings with an
// ErrInvalidConfig error. The panel URL is normalized in place.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Panel.URL) == "" {
		missing = append(missing, "CPANEL_URL")
	}
	if strings.TrimSpace(c.Panel.Username) == "" {
		missing = append(missing, "CPANEL_USER")
	}
	if c.Panel.Password == "" {
		missing = append(missing, "CPANEL_PASS")
	}
	if len(missing) > 0 {
		return serrors.With(serrors.ErrInvalidConfig, "%s must be set", strings.Join(missing, ", "))
	}

	panelURL, err := NormalizePanelURL(c.Panel.URL)
	if err != nil {
		return serrors.Wrap(serrors.ErrInvalidConfig, err, "CPANEL_URL is invalid")
	}
	c.Panel.URL = panelURL

	if c.Accounts.Count < 0 {
		return serrors.With(serrors.ErrInvalidConfig, "COUNT must not be negative, got %d", c.Accounts.Count)
	}
	if c.Accounts.StaticPassword == "" && c.Accounts.PasswordLength < 8 {
		return serrors.With(serrors.ErrInvalidConfig, "PASSWORD_LENGTH must be at least 8, got %d",
			c.Accounts.PasswordLength)
	}

	return nil
}

// LogPath returns the log file location, or an empty string when disabled.
func (c *Config) LogPath() string {
	return joinDir(c.Diagnostics.LogDir, c.Diagnostics.LogFile)
}

// MetricsPath returns the metrics textfile location, or an empty string when disabled.
func (c *Config) MetricsPath() string {
	return joinDir(c.Diagnostics.LogDir, c.Diagnostics.MetricsFile)
}

func joinDir(dir, name string) string {
	if name == "" {
		return ""
	}
	if dir == "" || filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(dir, name)
}
