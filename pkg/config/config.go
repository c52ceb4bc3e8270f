// Package config 提供 TOML 配置加载、环境变量覆盖与 schema 校验
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wyfcoding/ecomsynth/pkg/logger"
)

// Preset 预设规模
const (
	PresetTest       = "test"
	PresetSubmission = "submission"
	PresetCustom     = "custom"
)

// Config 基础配置结构
type Config struct {
	// 服务名称
	ServiceName string `mapstructure:"service_name"`
	// 数据集生成配置
	Generator GeneratorConfig `mapstructure:"generator"`
	// Kafka 配置（可选 sink）
	Kafka KafkaConfig `mapstructure:"kafka"`
	// 数据库配置（可选 sink）
	Database DatabaseConfig `mapstructure:"database"`
	// 日志配置
	Logger logger.Config `mapstructure:"logger"`
}

// GeneratorConfig 数据集生成配置
type GeneratorConfig struct {
	// 预设规模：test, submission, custom
	Preset string `mapstructure:"preset"`
	// 随机种子
	Seed int64 `mapstructure:"seed"`
	// 数据时间跨度（天）
	TimespanDays int `mapstructure:"timespan_days"`
	// 输出目录
	OutputDir string `mapstructure:"output_dir"`
	// 会话文件分块大小
	ChunkSize int `mapstructure:"chunk_size"`
	// 独立交易概率
	StandaloneProbability float64 `mapstructure:"standalone_probability"`
	// 折扣概率
	DiscountProbability float64 `mapstructure:"discount_probability"`
	// 自定义规模（preset = custom 时生效）
	Custom Targets `mapstructure:"custom"`
}

// Targets 各实体的目标数量
type Targets struct {
	Users        int `mapstructure:"users"`
	Products     int `mapstructure:"products"`
	Categories   int `mapstructure:"categories"`
	Sessions     int `mapstructure:"sessions"`
	Transactions int `mapstructure:"transactions"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	Brokers          []string `mapstructure:"brokers"`
	SessionTopic     string   `mapstructure:"session_topic"`
	TransactionTopic string   `mapstructure:"transaction_topic"`
	MaxRetries       int      `mapstructure:"max_retries"`
	RetryBackoff     int      `mapstructure:"retry_backoff"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Driver          string `mapstructure:"driver"`
	DSN             string `mapstructure:"dsn"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	BatchSize       int    `mapstructure:"batch_size"`
}

// Load 从 TOML 文件加载配置，支持环境变量覆盖
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	switch c.Generator.Preset {
	case PresetTest, PresetSubmission:
	case PresetCustom:
		t := c.Generator.Custom
		if t.Users <= 0 || t.Products <= 0 || t.Categories <= 0 || t.Sessions <= 0 || t.Transactions <= 0 {
			return fmt.Errorf("custom preset requires positive user/product/category/session/transaction counts")
		}
	default:
		return fmt.Errorf("unknown preset %q: must be one of test, submission, custom", c.Generator.Preset)
	}
	if c.Generator.TimespanDays <= 0 {
		return fmt.Errorf("timespan_days must be positive")
	}
	if c.Generator.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if c.Database.Enabled && c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required when the database sink is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when the kafka sink is enabled")
	}
	return nil
}

// Targets 返回当前预设对应的目标数量
func (g *GeneratorConfig) Targets() Targets {
	switch g.Preset {
	case PresetSubmission:
		return Targets{Users: 5000, Products: 3000, Categories: 20, Sessions: 300000, Transactions: 80000}
	case PresetCustom:
		return g.Custom
	default:
		return Targets{Users: 1000, Products: 800, Categories: 15, Sessions: 50000, Transactions: 10000}
	}
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.preset", PresetTest)
	v.SetDefault("generator.seed", 42)
	v.SetDefault("generator.timespan_days", 90)
	v.SetDefault("generator.output_dir", "data_raw")
	v.SetDefault("generator.chunk_size", 100000)
	v.SetDefault("generator.standalone_probability", 0.2)
	v.SetDefault("generator.discount_probability", 0.2)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.session_topic", "dataset.sessions")
	v.SetDefault("kafka.transaction_topic", "dataset.transactions")
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", 100)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.batch_size", 1000)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.file_path", "logs/app.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
}
