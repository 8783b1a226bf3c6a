package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database      DatabaseConfigs `toml:"database"`
	ApiServer     ServerConfigs   `toml:"api_server"`
	WsProxyServer ServerConfigs   `toml:"ws_proxy_server"`
	Auth          AuthConfigs     `toml:"auth"`
	Session       SessionConfigs  `toml:"session"`
	Redis         RedisConfigs    `toml:"redis"`
	Kafka         KafkaConfigs    `toml:"kafka"`
	Storage       S3Configs       `toml:"storage"`
	File          FileConfigs     `toml:"file"`
	Search        SearchConfigs   `toml:"search"`
	Cache         CacheConfigs    `toml:"cache"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host      string   `toml:"host"`
	Port      string   `toml:"port"`
	Cert      string   `toml:"cert"`
	Key       string   `toml:"key"`
	AllowCORS []string `toml:"allow_cors"`
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr              string `toml:"addr"`
	NotificationTopic string `toml:"notification_topic"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	Bucket         string `toml:"bucket"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type FileConfigs struct {
	MaxSize     int64 `toml:"max_size"`
	AvatarWidth uint  `toml:"avatar_width"`
}

type SearchConfigs struct {
	IndexDir string `toml:"index_dir"`
}

type CacheConfigs struct {
	FeedTTL      time.Duration `toml:"feed_ttl"`
	SiteStatsTTL time.Duration `toml:"site_stats_ttl"`
}

// Load reads configurations from the toml file pointed by the CONFIG
// environment variable. Zero-valued fields fall back to defaults.
func Load() (Configs, error) {
	cfg := defaultConfigs()

	path := os.Getenv("CONFIG")
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

func defaultConfigs() Configs {
	return Configs{
		Env: "dev",
		Database: DatabaseConfigs{
			Host: "localhost", Port: "3306",
			Database: "sosyal", User: "root",
		},
		ApiServer:     ServerConfigs{Host: "0.0.0.0", Port: "8080"},
		WsProxyServer: ServerConfigs{Host: "0.0.0.0", Port: "8081"},
		Auth: AuthConfigs{
			TokenSecret: "token-secret",
			AccessToken: TokenConfigs{Name: "access_token", Expiration: 24 * time.Hour},
		},
		Session: SessionConfigs{Secret: "session-secret", Name: "sosyal_session"},
		Redis:   RedisConfigs{Addr: "localhost:6379"},
		Kafka:   KafkaConfigs{Addr: "localhost:9092", NotificationTopic: "notifications"},
		File:    FileConfigs{MaxSize: 5 * 1024 * 1024, AvatarWidth: 512},
		Search:  SearchConfigs{IndexDir: "searchindex"},
		Cache: CacheConfigs{
			FeedTTL:      time.Minute,
			SiteStatsTTL: 5 * time.Minute,
		},
	}
}
