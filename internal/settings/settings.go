// Package settings layers the orchestrator's configuration from
// defaults, an optional config file, environment variables, and CLI
// flags (highest precedence), using github.com/spf13/viper. The result
// is unmarshaled into an engine.Config plus the handful of CLI-only
// options (host file path, color mode, the remote command) that sit
// outside the core.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sshp-go/sshp/engine"
)

// Settings is the fully-resolved configuration: an engine.Config plus
// the CLI-only fields the core never sees.
type Settings struct {
	engine.Config `mapstructure:",squash"`

	HostFile     string `mapstructure:"file"`
	Color        string `mapstructure:"color"`
	SSHBinary    string `mapstructure:"ssh-binary"`
	IdentityFile string `mapstructure:"identity"`
	Login        string `mapstructure:"login"`
	Port         int    `mapstructure:"port"`
	KnownHosts   string `mapstructure:"known-hosts"`
	Quiet        bool   `mapstructure:"quiet"`
	NoStrict     bool   `mapstructure:"no-strict"`
	TTY          bool   `mapstructure:"tty"`
	Stats        bool   `mapstructure:"stats"`
	DryRun       bool   `mapstructure:"dry-run"`
	ProgName     string `mapstructure:"prog-name"`

	// Command is the remote command and its arguments. It comes from
	// positional CLI arguments, never from the layered config sources, so
	// cmd/sshp sets it directly on the resolved Settings after Load.
	Command []string `mapstructure:"-"`
}

// Manager resolves Settings from defaults, a config file, environment
// variables, and bound CLI flags, in ascending precedence.
type Manager struct {
	v *viper.Viper
}

// NewManager constructs a Manager with the orchestrator's defaults
// applied.
func NewManager() *Manager {
	m := &Manager{v: viper.New()}
	m.setDefaults()
	return m
}

func (m *Manager) setDefaults() {
	m.v.SetDefault("anonymous", false)
	m.v.SetDefault("exit-codes", false)
	m.v.SetDefault("silent", false)
	m.v.SetDefault("trim", false)
	m.v.SetDefault("debug", false)
	m.v.SetDefault("max-jobs", engine.DefaultMaxJobs)
	m.v.SetDefault("max-line-length", engine.DefaultMaxLineLength)
	m.v.SetDefault("max-output-length", engine.DefaultMaxOutputLength)
	m.v.SetDefault("mode", "line")
	m.v.SetDefault("color", "auto")
	m.v.SetDefault("file", "-")
	m.v.SetDefault("ssh-binary", "ssh")
	m.v.SetDefault("port", 0)
	m.v.SetDefault("quiet", false)
	m.v.SetDefault("no-strict", false)
	m.v.SetDefault("tty", false)
	m.v.SetDefault("stats", false)
	m.v.SetDefault("dry-run", false)
	m.v.SetDefault("prog-name", "sshp")
}

// Load reads layered configuration (defaults < config file < environment)
// and unmarshals it into a Settings value. CLI flag binding happens
// separately in cmd/sshp via BindPFlags, before Load is called, so that
// viper's own precedence rules (flag > env > file > default) apply.
func (m *Manager) Load(configPath string) (*Settings, error) {
	m.v.SetEnvPrefix("SSHP")
	m.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	m.v.AutomaticEnv()

	if configPath != "" {
		m.v.SetConfigFile(configPath)
	} else {
		m.v.SetConfigName("sshp")
		m.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			m.v.AddConfigPath(filepath.Join(home, ".config", "sshp"))
		}
		m.v.AddConfigPath("/etc/sshp")
	}

	if err := m.v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := m.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	s.Mode = parseMode(m.v.GetString("mode"))
	return &s, nil
}

// Viper exposes the underlying *viper.Viper for cmd/sshp to bind pflags
// to before calling Load.
func (m *Manager) Viper() *viper.Viper {
	return m.v
}

func parseMode(s string) engine.Mode {
	switch strings.ToLower(s) {
	case "group":
		return engine.ModeGroup
	case "join":
		return engine.ModeJoin
	default:
		return engine.ModeLine
	}
}
