package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 FOODGRAM_JWT_SECRET_KEY
const EnvPrefix = "FOODGRAM"

var (
	globalConfig *Config
	once         sync.Once
	configPath   string
)

// LoadConfig 加载配置文件（进程内只加载一次）
func LoadConfig(configFile string) (*Config, error) {
	var err error
	var cfg *Config

	once.Do(func() {
		cfg, err = Load(configFile)
		if err == nil {
			globalConfig = cfg
		}
		configPath = configFile
	})

	return globalConfig, err
}

// Load 从文件和环境变量加载配置，不写入全局配置
func Load(configFile string) (*Config, error) {
	// .env 文件可选
	_ = godotenv.Load()

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	setDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys 绑定敏感配置，使其在配置文件缺省时也能从环境变量读取
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"database.driver",
		"database.dsn",
		"jwt.secret_key",
		"admin.email",
		"admin.password",
		"redis_service.password",
		"media.s3.access_key_id",
		"media.s3.secret_access_key",
	} {
		_ = v.BindEnv(key)
	}
}

// setDefaults 设置默认值
func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./database/foodgram.db"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.MaxConcurrency == 0 {
		cfg.Redis.MaxConcurrency = 2
	}
	if cfg.Redis.MaxWaitTime == 0 {
		cfg.Redis.MaxWaitTime = 30
	}
	if cfg.JWT.Algorithm == "" {
		cfg.JWT.Algorithm = "HS256"
	}
	if cfg.JWT.ExpireMinutes == 0 {
		cfg.JWT.ExpireMinutes = 43200 // 30天
	}
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@foodgram.local"
	}
	if cfg.CORS.AllowMethods == nil {
		cfg.CORS.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if cfg.CORS.AllowHeaders == nil {
		cfg.CORS.AllowHeaders = []string{"*"}
	}
	if cfg.Media.Backend == "" {
		cfg.Media.Backend = "local"
	}
	if cfg.Media.Root == "" {
		cfg.Media.Root = "./media"
	}
	if cfg.Media.URLPrefix == "" {
		cfg.Media.URLPrefix = "/media/"
	}
	if cfg.Media.MinWidth == 0 {
		cfg.Media.MinWidth = 480
	}
	if cfg.Media.MinHeight == 0 {
		cfg.Media.MinHeight = 169
	}
	if cfg.Pagination.PageSize == 0 {
		cfg.Pagination.PageSize = 6
	}
	if cfg.Pagination.MaxPageSize == 0 {
		cfg.Pagination.MaxPageSize = 100
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// validateConfig 验证配置
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务器端口: %d", cfg.Server.Port)
	}

	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("JWT密钥不能为空")
	}

	switch cfg.Database.Driver {
	case "sqlite":
		// 检查数据库目录是否存在
		dbDir := filepath.Dir(cfg.Database.Path)
		if _, err := os.Stat(dbDir); os.IsNotExist(err) {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return fmt.Errorf("创建数据库目录失败: %w", err)
			}
		}
	case "postgres":
		if cfg.Database.DSN == "" {
			return fmt.Errorf("postgres 需要配置 database.dsn")
		}
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	switch cfg.Media.Backend {
	case "local":
	case "s3":
		if cfg.Media.S3.Bucket == "" {
			return fmt.Errorf("s3 存储需要配置 media.s3.bucket")
		}
	default:
		return fmt.Errorf("不支持的图片存储: %s", cfg.Media.Backend)
	}

	if cfg.Pagination.PageSize > cfg.Pagination.MaxPageSize {
		return fmt.Errorf("分页大小 %d 超过上限 %d", cfg.Pagination.PageSize, cfg.Pagination.MaxPageSize)
	}

	return nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return globalConfig
}

// ReloadConfig 重新加载配置
func ReloadConfig() (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("未设置配置文件路径")
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	globalConfig = cfg
	return cfg, nil
}
