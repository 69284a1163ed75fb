package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"werewolf-be/internal/service/game"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// seat 或 shuffle
	SpeechOrder string `mapstructure:"speech_order"`
	// 0 表示每局使用随机种子
	RandomSeed      uint64 `mapstructure:"random_seed"`
	RoomIdleMinutes int    `mapstructure:"room_idle_minutes"`
}

func (c *AppConfig) IdleTimeout() time.Duration {
	return time.Duration(c.RoomIdleMinutes) * time.Minute
}

func (c *AppConfig) ParsedSpeechOrder() game.SpeechOrder {
	// Load 已经校验过，这里不会出错
	order, _ := game.ParseSpeechOrder(c.SpeechOrder)
	return order
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

// InitConfig 读取工作目录下的 app_config.json，失败时直接 panic
func InitConfig() *AppConfig {
	config, err := Load(".")
	if err != nil {
		panic(err)
	}

	return config
}

// Load 从 dir 读取配置，文件不存在时使用默认值，环境变量 WEREWOLF_* 优先
func Load(dir string) (*AppConfig, error) {
	v := viper.New()

	v.SetConfigName("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("speech_order", string(game.SpeechBySeat))
	v.SetDefault("random_seed", 0)
	v.SetDefault("room_idle_minutes", 60)

	v.SetEnvPrefix("WEREWOLF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if _, err := game.ParseSpeechOrder(config.SpeechOrder); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if config.RoomIdleMinutes <= 0 {
		return nil, fmt.Errorf("解析配置失败: room_idle_minutes 必须大于 0，当前为 %d", config.RoomIdleMinutes)
	}

	return &config, nil
}
