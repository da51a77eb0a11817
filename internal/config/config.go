package config

import (
	"time"

	"github.com/blues/chainstats/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Task     TaskConfig     `mapstructure:"task"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Auth     AuthConfig     `mapstructure:"auth"`
	API      APIConfig      `mapstructure:"api"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// TaskConfig controls the ingestion schedule.
type TaskConfig struct {
	Interval int `mapstructure:"interval"` // seconds between ingestion runs
}

// UpstreamConfig points at the external chain statistics endpoint.
type UpstreamConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"` // request timeout, seconds
}

func (u UpstreamConfig) TimeoutDuration() time.Duration {
	return time.Duration(u.Timeout) * time.Second
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type APIConfig struct {
	PageSizeMax int `mapstructure:"page_size_max"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // stdout, stderr, file
	File   string `mapstructure:"file"`   // log file path when output is file
}

// GetLevel implements the logger.LogConfig interface.
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput implements the logger.LogConfig interface.
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile implements the logger.LogConfig interface.
func (l LogConfig) GetFile() string {
	return l.File
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/chainstats")

	setDefaults()

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "chainstats")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("upstream.url", "https://api.blockchair.com/ethereum/stats")
	viper.SetDefault("upstream.timeout", 10)
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("api.page_size_max", 100)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")
}
