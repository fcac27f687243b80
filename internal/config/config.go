package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/imishinist/logger-dev/internal/logging"
)

// Defaults mirror the layout of the robot project checkout.
const (
	DefaultRoot    = "TeamCode/src/main/assets/logger"
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 8000
	DefaultRobot   = "http://192.168.43.1:8080"
	DefaultRunsDir = "dev-tools"
)

// URL namespaces served by the dev server.
const (
	UIPrefix  = "/logger"
	APIPrefix = "/logger/api/"
)

var validRobotSchemes = map[string]bool{
	"http": true, "https": true,
}

// Config is read once at startup and never modified afterwards.
type Config struct {
	Root         string
	Host         string
	Port         int
	Robot        string
	Fake         bool
	RunsDir      string
	ProxyTimeout time.Duration
	LogLevel     string
	LogFormat    string
}

func New() *Config {
	return &Config{
		Root:         viper.GetString("root"),
		Host:         viper.GetString("host"),
		Port:         viper.GetInt("port"),
		Robot:        viper.GetString("robot"),
		Fake:         viper.GetBool("fake"),
		RunsDir:      viper.GetString("runs_dir"),
		ProxyTimeout: viper.GetDuration("proxy_timeout"),
		LogLevel:     viper.GetString("log_level"),
		LogFormat:    viper.GetString("log_format"),
	}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("robot", DefaultRobot)
	v.SetDefault("fake", false)
	v.SetDefault("runs_dir", DefaultRunsDir)
	v.SetDefault("proxy_timeout", time.Duration(0))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", logging.FormatText)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("asset root is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (valid: 1-65535)", c.Port)
	}

	if err := c.validateRobot(); err != nil {
		return err
	}

	if strings.TrimSpace(c.RunsDir) == "" {
		return fmt.Errorf("runs directory is required")
	}

	if c.ProxyTimeout < 0 {
		return fmt.Errorf("invalid proxy timeout: %s (must not be negative)", c.ProxyTimeout)
	}

	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.LogFormat)
	}

	return nil
}

// validateRobot checks the controller base URL. It is only dialed when fake
// mode is off, but a malformed value is rejected either way.
func (c *Config) validateRobot() error {
	u, err := url.Parse(c.Robot)
	if err != nil {
		return fmt.Errorf("invalid robot URL %q: %w", c.Robot, err)
	}
	if !validRobotSchemes[u.Scheme] || u.Host == "" {
		return fmt.Errorf("invalid robot URL %q (expected scheme://host:port)", c.Robot)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LoggingConfig returns the logging settings.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}
