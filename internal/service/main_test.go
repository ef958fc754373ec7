package service

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"foodgram/internal/config"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/storage"
	"foodgram/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.PasswordCost = bcrypt.MinCost
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

// serviceSuite 每个测试使用独立的SQLite数据库和图片目录
type serviceSuite struct {
	suite.Suite

	db        *gorm.DB
	mediaRoot string
	images    *storage.LocalStore
	cfg       *config.Config
	logger    *logrus.Logger

	users       *repository.UserRepository
	tags        *repository.TagRepository
	ingredients *repository.IngredientRepository
	recipes     *repository.RecipeRepository
	favorites   *repository.MarkRepository
	carts       *repository.MarkRepository
	follows     *repository.FollowRepository
}

func (s *serviceSuite) SetupTest() {
	t := s.T()
	dir := t.TempDir()

	db, err := models.Open(&config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(dir, "test.db")})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	s.db = db
	s.mediaRoot = filepath.Join(dir, "media")
	s.images, err = storage.NewLocalStore(s.mediaRoot, "/media/")
	require.NoError(t, err)

	s.cfg = &config.Config{}
	s.cfg.JWT.SecretKey = "test-secret"
	s.cfg.JWT.Algorithm = "HS256"
	s.cfg.JWT.ExpireMinutes = 60
	s.cfg.Media.MinWidth = 48
	s.cfg.Media.MinHeight = 16
	s.cfg.Admin.Username = "admin"
	s.cfg.Admin.Email = "admin@example.com"
	s.cfg.Admin.Password = "admin-pass"

	s.logger = logrus.New()
	s.logger.SetOutput(io.Discard)

	s.users = repository.NewUserRepository(db)
	s.tags = repository.NewTagRepository(db)
	s.ingredients = repository.NewIngredientRepository(db)
	s.recipes = repository.NewRecipeRepository(db)
	s.favorites = repository.NewFavoriteRepository(db)
	s.carts = repository.NewShoppingCartRepository(db)
	s.follows = repository.NewFollowRepository(db)
}

func (s *serviceSuite) recipeService() *RecipeService {
	return NewRecipeService(RecipeDeps{
		Recipes:   s.recipes,
		Users:     s.users,
		Favorites: s.favorites,
		Carts:     s.carts,
		Follows:   s.follows,
		Images:    s.images,
	}, &s.cfg.Media, s.logger)
}

func (s *serviceSuite) createUser(username string, role string) *models.User {
	u := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    username,
		LastName:     "Test",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	s.Require().NoError(s.users.Create(u))
	return u
}

func (s *serviceSuite) createTag(slug string) *models.Tag {
	tag := &models.Tag{Name: slug, Color: "#49B64E", Slug: slug}
	s.Require().NoError(s.tags.Create(tag))
	return tag
}

func (s *serviceSuite) createIngredient(name, unit string) *models.Ingredient {
	i := &models.Ingredient{Name: name, MeasurementUnit: unit}
	s.Require().NoError(s.ingredients.Create(i))
	return i
}

// imageFiles 图片目录下的全部文件
func (s *serviceSuite) imageFiles() []string {
	var files []string
	_ = filepath.Walk(s.mediaRoot, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
