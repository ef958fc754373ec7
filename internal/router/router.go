package router

import (
	"time"

	"foodgram/internal/config"
	"foodgram/internal/handler"
	"foodgram/internal/middleware"
	"foodgram/internal/repository"
	"foodgram/internal/service"
	"foodgram/internal/storage"
	"foodgram/internal/utils"
	"foodgram/pkg/redis_limiter"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// shoppingListLimitKey 购物清单下载的并发计数key
	shoppingListLimitKey = "download_shopping_cart"
	limiterKeyPrefix     = "foodgram:limit:"
	// shoppingListMaxWait 等待并发槽位的最长时间
	shoppingListMaxWait = 5 * time.Second
)

// SetupRouter 设置路由，redisClient 为nil时使用进程内限流且不支持Token注销
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	images storage.ImageStore,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.InitValidator()

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(&cfg.CORS))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Foodgram API",
			"version": "1.0.0",
		})
	})

	if local, ok := images.(*storage.LocalStore); ok {
		r.Static(cfg.Media.URLPrefix, local.Root())
	}

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tokenRepo := repository.NewTokenRepository(redisClient)

	// 初始化Service
	authService := service.NewAuthService(userRepo, tokenRepo, jwtManager, cfg, logger)
	userService := service.NewUserService(userRepo, followRepo)
	followService := service.NewFollowService(followRepo, userRepo, recipeRepo, images)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo, logger)
	recipeService := service.NewRecipeService(service.RecipeDeps{
		Recipes:   recipeRepo,
		Users:     userRepo,
		Favorites: favoriteRepo,
		Carts:     cartRepo,
		Follows:   followRepo,
		Images:    images,
	}, &cfg.Media, logger)
	favoriteService := service.NewToggleService(favoriteRepo, recipeRepo, images)
	cartService := service.NewToggleService(cartRepo, recipeRepo, images)
	shoppingService := service.NewShoppingService(recipeRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService, userService, followService, cfg.Pagination)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	recipeHandler := handler.NewRecipeHandler(recipeService, favoriteService, cartService, shoppingService, cfg.Pagination)
	adminHandler := handler.NewAdminHandler(ingredientService)

	requireAuth := middleware.AuthMiddleware(jwtManager, tokenRepo)
	optionalAuth := middleware.OptionalAuthMiddleware(jwtManager, tokenRepo)
	requireAdmin := middleware.AdminMiddleware()
	downloadLimit := middleware.ConcurrencyLimit(
		newLimiter(cfg, redisClient, logger), shoppingListLimitKey, shoppingListMaxWait, logger)

	// API路由组
	api := r.Group("/api")
	{
		// 认证
		api.POST("/auth/token/login", authHandler.Login)
		api.POST("/auth/token/logout", requireAuth, authHandler.Logout)

		// 用户与订阅
		users := api.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.GET("", optionalAuth, userHandler.List)
			users.GET("/me", requireAuth, userHandler.Me)
			users.POST("/set_password", requireAuth, userHandler.SetPassword)
			users.GET("/subscriptions", requireAuth, userHandler.Subscriptions)
			users.GET("/:id", optionalAuth, userHandler.Get)
			users.POST("/:id/subscribe", requireAuth, userHandler.Subscribe)
			users.DELETE("/:id/subscribe", requireAuth, userHandler.Unsubscribe)
		}

		// 标签
		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.List)
			tags.GET("/:id", tagHandler.Get)
			tags.POST("", requireAuth, requireAdmin, tagHandler.Create)
			tags.PATCH("/:id", requireAuth, requireAdmin, tagHandler.Update)
			tags.DELETE("/:id", requireAuth, requireAdmin, tagHandler.Delete)
		}

		// 食材
		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", ingredientHandler.List)
			ingredients.GET("/:id", ingredientHandler.Get)
			ingredients.POST("", requireAuth, requireAdmin, ingredientHandler.Create)
			ingredients.PATCH("/:id", requireAuth, requireAdmin, ingredientHandler.Update)
			ingredients.DELETE("/:id", requireAuth, requireAdmin, ingredientHandler.Delete)
		}

		// 菜谱
		recipes := api.Group("/recipes")
		{
			recipes.GET("", optionalAuth, recipeHandler.List)
			recipes.POST("", requireAuth, recipeHandler.Create)
			recipes.GET("/download_shopping_cart", requireAuth, downloadLimit, recipeHandler.DownloadShoppingCart)
			recipes.GET("/:id", optionalAuth, recipeHandler.Get)
			recipes.PATCH("/:id", requireAuth, recipeHandler.Update)
			recipes.PUT("/:id", requireAuth, recipeHandler.Update)
			recipes.DELETE("/:id", requireAuth, recipeHandler.Delete)
			recipes.POST("/:id/favorite", requireAuth, recipeHandler.AddFavorite)
			recipes.DELETE("/:id/favorite", requireAuth, recipeHandler.RemoveFavorite)
			recipes.POST("/:id/shopping_cart", requireAuth, recipeHandler.AddToShoppingCart)
			recipes.DELETE("/:id/shopping_cart", requireAuth, recipeHandler.RemoveFromShoppingCart)
		}

		// 管理员接口
		adminGroup := api.Group("/admin")
		adminGroup.Use(requireAuth, requireAdmin)
		{
			adminGroup.POST("/ingredients/import", adminHandler.ImportIngredients)
		}
	}

	return r
}

// newLimiter 启用Redis时多实例共享并发计数，否则使用进程内限流
func newLimiter(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) redis_limiter.Limiter {
	if redisClient == nil {
		return redis_limiter.NewLocalLimiter(cfg.Redis.MaxConcurrency)
	}
	return redis_limiter.NewRedisLimiter(
		redisClient,
		cfg.Redis.MaxConcurrency,
		limiterKeyPrefix,
		cfg.Redis.GetMaxWaitDuration(),
		logger,
	)
}
