package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"foodgram/internal/config"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/router"
	"foodgram/internal/service"
	"foodgram/internal/storage"
	"foodgram/internal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logger     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:           "foodgram",
	Short:         "Foodgram 菜谱服务",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "迁移数据库表结构",
	RunE:  runMigrate,
}

var loadIngredientsCmd = &cobra.Command{
	Use:   "load-ingredients <file>",
	Short: "从JSON或CSV文件导入食材",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoadIngredients,
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "按配置创建管理员账户",
	RunE:  runCreateAdmin,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "配置文件路径")
	rootCmd.AddCommand(serveCmd, migrateCmd, loadIngredientsCmd, createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Error("命令执行失败")
		os.Exit(1)
	}
}

// setup 加载配置、初始化日志并打开数据库
func setup() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("无效的日志级别 %q，使用 info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if err := models.InitDB(cfg); err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}
	if err := models.AutoMigrate(models.GetDB()); err != nil {
		return nil, fmt.Errorf("迁移数据库失败: %w", err)
	}
	return cfg, nil
}

// newRedisClient 未启用Redis时返回nil
func newRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddress(),
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}
	return client, nil
}

func newAuthService(cfg *config.Config, redisClient *redis.Client) (*service.AuthService, *utils.JWTManager) {
	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
	)
	db := models.GetDB()
	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(redisClient),
		jwtManager,
		cfg,
		logger,
	)
	return authService, jwtManager
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	redisClient, err := newRedisClient(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		logger.Info("未启用Redis: Token注销不生效，下载限流为进程内")
	}

	images, err := storage.New(ctx, &cfg.Media)
	if err != nil {
		return fmt.Errorf("初始化图片存储失败: %w", err)
	}

	authService, jwtManager := newAuthService(cfg, redisClient)

	// 初始化管理员账户
	if cfg.Admin.Password != "" {
		if err := authService.InitAdmin(); err != nil {
			logger.Warnf("初始化管理员失败: %v", err)
		}
	}

	r := router.SetupRouter(cfg, jwtManager, logger, models.GetDB(), redisClient, images)

	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)
	if cfg.Server.ProductionMode {
		logger.Info("生产模式")
	} else {
		logger.Infof("开发模式: 管理员账号 %s", cfg.Admin.Username)
	}

	if err := r.Run(addr); err != nil {
		return fmt.Errorf("启动服务器失败: %w", err)
	}
	return nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	if _, err := setup(); err != nil {
		return err
	}
	logger.Info("数据库迁移完成")
	return nil
}

func runLoadIngredients(_ *cobra.Command, args []string) error {
	if _, err := setup(); err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}

	ingredientService := service.NewIngredientService(repository.NewIngredientRepository(models.GetDB()), logger)
	created, err := ingredientService.Import(args[0], data)
	if err != nil {
		return err
	}
	fmt.Printf("新增食材 %d 条\n", created)
	return nil
}

func runCreateAdmin(_ *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	authService, _ := newAuthService(cfg, nil)
	return authService.InitAdmin()
}
