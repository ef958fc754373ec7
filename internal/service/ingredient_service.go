package service

import (
	"fmt"

	"foodgram/internal/dto"
	"foodgram/internal/errs"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/utils"

	"github.com/sirupsen/logrus"
)

const ingredientImportBatchSize = 500

// IngredientService 食材服务
type IngredientService struct {
	ingredientRepo *repository.IngredientRepository
	logger         *logrus.Logger
}

// NewIngredientService 创建食材服务
func NewIngredientService(ingredientRepo *repository.IngredientRepository, logger *logrus.Logger) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo, logger: logger}
}

// List 获取食材，name 按前缀匹配（不区分大小写）
func (s *IngredientService) List(name string) ([]dto.IngredientInfo, error) {
	ingredients, err := s.ingredientRepo.List(name)
	if err != nil {
		return nil, fmt.Errorf("获取食材列表失败: %w", err)
	}

	infos := make([]dto.IngredientInfo, len(ingredients))
	for i := range ingredients {
		infos[i] = toIngredientInfo(&ingredients[i])
	}
	return infos, nil
}

// Get 获取食材
func (s *IngredientService) Get(id uint) (*dto.IngredientInfo, error) {
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "食材")
	}
	info := toIngredientInfo(ingredient)
	return &info, nil
}

// Create 创建食材
func (s *IngredientService) Create(req *dto.IngredientRequest) (*dto.IngredientInfo, error) {
	if err := s.checkUnique(req, 0); err != nil {
		return nil, err
	}

	ingredient := &models.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := s.ingredientRepo.Create(ingredient); err != nil {
		if isDuplicate(err) {
			return nil, errs.Validation("name", "该食材及计量单位已存在")
		}
		return nil, fmt.Errorf("创建食材失败: %w", err)
	}
	info := toIngredientInfo(ingredient)
	return &info, nil
}

// Update 更新食材
func (s *IngredientService) Update(id uint, req *dto.IngredientRequest) (*dto.IngredientInfo, error) {
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "食材")
	}

	if err := s.checkUnique(req, id); err != nil {
		return nil, err
	}

	ingredient.Name = req.Name
	ingredient.MeasurementUnit = req.MeasurementUnit
	if err := s.ingredientRepo.Update(ingredient); err != nil {
		if isDuplicate(err) {
			return nil, errs.Validation("name", "该食材及计量单位已存在")
		}
		return nil, fmt.Errorf("更新食材失败: %w", err)
	}
	info := toIngredientInfo(ingredient)
	return &info, nil
}

// Delete 删除食材，同时删除菜谱中的用量
func (s *IngredientService) Delete(id uint) error {
	if _, err := s.ingredientRepo.GetByID(id); err != nil {
		return lookupError(err, "食材")
	}
	if err := s.ingredientRepo.Delete(id); err != nil {
		return fmt.Errorf("删除食材失败: %w", err)
	}
	return nil
}

// Import 批量导入食材文件，已存在的 (名称, 单位) 跳过，返回新增条数
func (s *IngredientService) Import(filename string, data []byte) (int64, error) {
	records, err := utils.ParseIngredientFile(filename, data)
	if err != nil {
		return 0, err
	}

	type key struct{ name, unit string }
	seen := make(map[key]bool, len(records))
	ingredients := make([]models.Ingredient, 0, len(records))
	for _, r := range records {
		k := key{r.Name, r.MeasurementUnit}
		if seen[k] {
			continue
		}
		seen[k] = true
		ingredients = append(ingredients, models.Ingredient{Name: r.Name, MeasurementUnit: r.MeasurementUnit})
	}

	created, err := s.ingredientRepo.CreateBatchIgnoreExisting(ingredients, ingredientImportBatchSize)
	if err != nil {
		return 0, fmt.Errorf("导入食材失败: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"file":    filename,
		"records": len(records),
		"created": created,
	}).Info("食材导入完成")
	return created, nil
}

func (s *IngredientService) checkUnique(req *dto.IngredientRequest, excludeID uint) error {
	exists, err := s.ingredientRepo.Exists(req.Name, req.MeasurementUnit, excludeID)
	if err != nil {
		return fmt.Errorf("检查食材失败: %w", err)
	}
	if exists {
		return errs.Validation("name", "该食材及计量单位已存在")
	}
	return nil
}

func toIngredientInfo(i *models.Ingredient) dto.IngredientInfo {
	return dto.IngredientInfo{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}
