package config

import (
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
}

type JwtConfig struct {
	Key         string `toml:"key"`
	ExpireHours int    `toml:"expireHours"`
	Issuer      string `toml:"issuer"`
}

type BackboneConfig struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"apiKey"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	// CatalogCacheSeconds controls how long the supported assistance type
	// catalog is cached in redis. 0 disables caching.
	CatalogCacheSeconds int `toml:"catalogCacheSeconds"`
}

type LrsConfig struct {
	URL            string `toml:"url"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
}

type SchedulerConfig struct {
	DisconnectSweepSeconds    int `toml:"disconnectSweepSeconds"`
	DisconnectGraceSeconds    int `toml:"disconnectGraceSeconds"`
	MessageExpirySweepMinutes int `toml:"messageExpirySweepMinutes"`
	MessageRetentionMinutes   int `toml:"messageRetentionMinutes"`
	CatalogSyncHours          int `toml:"catalogSyncHours"`
	CourseSyncHours           int `toml:"courseSyncHours"`
}

type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	JwtConfig       `toml:"jwtConfig"`
	LogConfig       `toml:"logConfig"`
	BackboneConfig  `toml:"backboneConfig"`
	LrsConfig       `toml:"lrsConfig"`
	SchedulerConfig `toml:"schedulerConfig"`
}

var config *Config

func LoadConfig() error {
	if config == nil {
		config = new(Config)
	}
	configPath := os.Getenv("ASSISTHUB_CONFIG")
	if configPath == "" {
		configPath = "configs/config_local.toml"
	}
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Printf("failed to load config file: %v, falling back to defaults", err)
		return err
	}
	return nil
}

func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
		config.applyDefaults()
	}
	return config
}

func (c *Config) applyDefaults() {
	if c.BackboneConfig.TimeoutSeconds <= 0 {
		c.BackboneConfig.TimeoutSeconds = 8
	}
	if c.LrsConfig.TimeoutSeconds <= 0 {
		c.LrsConfig.TimeoutSeconds = 8
	}
	if c.SchedulerConfig.DisconnectSweepSeconds <= 0 {
		c.SchedulerConfig.DisconnectSweepSeconds = 15
	}
	if c.SchedulerConfig.DisconnectGraceSeconds <= 0 {
		c.SchedulerConfig.DisconnectGraceSeconds = 10
	}
	if c.SchedulerConfig.MessageExpirySweepMinutes <= 0 {
		c.SchedulerConfig.MessageExpirySweepMinutes = 60
	}
	if c.SchedulerConfig.MessageRetentionMinutes <= 0 {
		c.SchedulerConfig.MessageRetentionMinutes = 60
	}
	if c.SchedulerConfig.CatalogSyncHours <= 0 {
		c.SchedulerConfig.CatalogSyncHours = 24
	}
	if c.SchedulerConfig.CourseSyncHours <= 0 {
		c.SchedulerConfig.CourseSyncHours = 24
	}
}
