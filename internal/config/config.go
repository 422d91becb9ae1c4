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

type LogConfig struct {
	LogPath string `toml:"logPath"`
}

type JwtConfig struct {
	Key         string `toml:"key"`
	ExpireHours int    `toml:"expireHours"`
	Issuer      string `toml:"issuer"`
}

type MilvusConfig struct {
	Address        string `toml:"address"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	DBName         string `toml:"dbName"`
	CollectionName string `toml:"collectionName"`
	VectorDim      int    `toml:"vectorDim"`
	MetricType     string `toml:"metricType"`
}

type RedisConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	PoolSize     int    `toml:"poolSize"`
	MinIdleConns int    `toml:"minIdleConns"`
}

// FeedConfig holds the parameters of the similarity feed.
type FeedConfig struct {
	DefaultPageSize int `toml:"defaultPageSize"`
	MaxPageSize     int `toml:"maxPageSize"`
	MaxSimilarLimit int `toml:"maxSimilarLimit"`
	CacheTTLSeconds int `toml:"cacheTTLSeconds"`
	EmbeddingDim    int `toml:"embeddingDim"`
}

type Config struct {
	MainConfig   `toml:"mainConfig"`
	MysqlConfig  `toml:"mysqlConfig"`
	JwtConfig    `toml:"jwtConfig"`
	MilvusConfig `toml:"milvusConfig"`
	RedisConfig  `toml:"redisConfig"`
	LogConfig    `toml:"logConfig"`
	FeedConfig   `toml:"feedConfig"`
}

var config *Config

func LoadConfig() error {
	configPath := os.Getenv("EXPERTBRIDGE_CONFIG")
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
		applyDefaults(config)
	}
	return config
}

func applyDefaults(c *Config) {
	if c.FeedConfig.DefaultPageSize <= 0 {
		c.FeedConfig.DefaultPageSize = 20
	}
	if c.FeedConfig.MaxPageSize <= 0 {
		c.FeedConfig.MaxPageSize = 100
	}
	if c.FeedConfig.MaxSimilarLimit <= 0 {
		c.FeedConfig.MaxSimilarLimit = 50
	}
	if c.FeedConfig.CacheTTLSeconds <= 0 {
		c.FeedConfig.CacheTTLSeconds = 300
	}
	if c.FeedConfig.EmbeddingDim <= 0 {
		c.FeedConfig.EmbeddingDim = 1024
	}
}
