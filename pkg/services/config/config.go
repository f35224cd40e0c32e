package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type ExportConfig struct {
	Bucket     string `mapstructure:"bucket"`
	Prefix     string `mapstructure:"prefix"`
	AWSProfile string `mapstructure:"aws_profile"`
	AWSRegion  string `mapstructure:"aws_region"`
}

type ScannerConfig struct {
	ExpiryHorizonDays int    `mapstructure:"expiry_horizon_days"`
	IssuePenalty      int    `mapstructure:"issue_penalty"`
	NextCheckDays     int    `mapstructure:"next_check_days"`
	Auditor           string `mapstructure:"auditor"`
}

type Config struct {
	DbPath  string        `mapstructure:"db_path"`
	Server  ServerConfig  `mapstructure:"server"`
	Export  ExportConfig  `mapstructure:"export"`
	Scanner ScannerConfig `mapstructure:"scanner"`
}

// LoadConfig reads the application config file. Missing scanner values
// fall back to the scan defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("db_path", "asset-atlas.db")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("export.aws_region", "us-east-1")
	v.SetDefault("scanner.expiry_horizon_days", 30)
	v.SetDefault("scanner.issue_penalty", 10)
	v.SetDefault("scanner.next_check_days", 90)
	v.SetDefault("scanner.auditor", "system")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
