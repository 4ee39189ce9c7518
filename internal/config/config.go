package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Mail holds SMTP delivery settings for the optional report email.
type Mail struct {
	To       string `mapstructure:"to"`
	From     string `mapstructure:"from"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Config holds the report collector configuration.
type Config struct {
	LogDir          string        `mapstructure:"log_dir"`
	Hostname        string        `mapstructure:"hostname"`
	DatabasePath    string        `mapstructure:"database"`
	Mail            Mail          `mapstructure:"mail"`
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout"`
	PublicIPURL     string        `mapstructure:"public_ip_url"`
	PublicIPTimeout time.Duration `mapstructure:"public_ip_timeout"`
	ExcludeDevices  []string      `mapstructure:"exclude_devices"`
}

// Load reads configuration from file and environment.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("sysstatus")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sysstatus")
	}

	v.SetDefault("log_dir", "/var/log/system_status")
	v.SetDefault("hostname", "")
	v.SetDefault("database", "")
	v.SetDefault("mail.to", "root@localhost")
	v.SetDefault("mail.from", "sysstatus@localhost")
	v.SetDefault("mail.smtp_host", "localhost")
	v.SetDefault("mail.smtp_port", 25)
	v.SetDefault("probe_timeout", "30s")
	v.SetDefault("public_ip_url", "https://ifconfig.me/ip")
	v.SetDefault("public_ip_timeout", "10s")
	v.SetDefault("exclude_devices", []string{"loop", "ram", "zram", "sr"})

	v.SetEnvPrefix("SYSSTATUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one must exist.
		if cfgFile != "" {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Hostname == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("resolve hostname: %w", err)
		}
		cfg.Hostname = hostname
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.LogDir, "reports.db")
	}

	return &cfg, nil
}
