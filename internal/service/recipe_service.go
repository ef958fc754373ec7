package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"foodgram/internal/config"
	"foodgram/internal/dto"
	"foodgram/internal/errs"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/storage"
	"foodgram/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const recipeImageDir = "recipes/images/"

// RecipeService 菜谱服务
type RecipeService struct {
	recipeRepo   *repository.RecipeRepository
	userRepo     *repository.UserRepository
	favoriteRepo *repository.MarkRepository
	cartRepo     *repository.MarkRepository
	followRepo   *repository.FollowRepository
	images       storage.ImageStore
	mediaCfg     *config.MediaConfig
	logger       *logrus.Logger
}

// RecipeDeps 菜谱服务依赖
type RecipeDeps struct {
	Recipes   *repository.RecipeRepository
	Users     *repository.UserRepository
	Favorites *repository.MarkRepository
	Carts     *repository.MarkRepository
	Follows   *repository.FollowRepository
	Images    storage.ImageStore
}

// NewRecipeService 创建菜谱服务
func NewRecipeService(deps RecipeDeps, mediaCfg *config.MediaConfig, logger *logrus.Logger) *RecipeService {
	return &RecipeService{
		recipeRepo:   deps.Recipes,
		userRepo:     deps.Users,
		favoriteRepo: deps.Favorites,
		cartRepo:     deps.Carts,
		followRepo:   deps.Follows,
		images:       deps.Images,
		mediaCfg:     mediaCfg,
		logger:       logger,
	}
}

// recipeInput 校验并解析后的菜谱请求
type recipeInput struct {
	tagIDs        []uint
	ingredientIDs []uint
	amounts       []repository.AmountKey
	image         *utils.DecodedImage
}

// Create 创建菜谱。图片先于事务写入存储，事务失败时删除
func (s *RecipeService) Create(ctx context.Context, actor *Actor, req *dto.RecipeRequest) (*dto.RecipeInfo, error) {
	if actor == nil {
		return nil, errs.Unauthorized("需要登录")
	}

	input, err := s.prepare(req, 0, true)
	if err != nil {
		return nil, err
	}

	imageKey, err := s.storeImage(ctx, input.image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    actor.UserID,
		Name:        req.Name,
		Image:       imageKey,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	err = s.recipeRepo.Transaction(func(repo *repository.RecipeRepository) error {
		if err := resolveReferences(repo, input); err != nil {
			return err
		}
		if err := repo.Create(recipe); err != nil {
			return err
		}
		if err := repo.AddTags(recipe.ID, input.tagIDs); err != nil {
			return err
		}
		return repo.AddAmounts(recipe.ID, input.amounts)
	})
	if err != nil {
		s.discardImage(ctx, imageKey)
		return nil, s.writeError(err, req.Name, 0, "创建菜谱失败")
	}

	s.logger.WithFields(logrus.Fields{"recipe_id": recipe.ID, "author_id": actor.UserID}).Info("菜谱已创建")
	return s.Get(actor, recipe.ID)
}

// Update 更新菜谱，标签和用量按差异增删，未变化的行保持不变
func (s *RecipeService) Update(ctx context.Context, actor *Actor, recipeID uint, req *dto.RecipeRequest) (*dto.RecipeInfo, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, lookupError(err, "菜谱")
	}
	if !CanModify(actor, recipe) {
		return nil, errs.Forbidden("只有作者或管理员可以修改菜谱")
	}

	input, err := s.prepare(req, recipeID, false)
	if err != nil {
		return nil, err
	}

	oldImage := recipe.Image
	newImage := ""
	if input.image != nil {
		if newImage, err = s.storeImage(ctx, input.image); err != nil {
			return nil, err
		}
		recipe.Image = newImage
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime

	err = s.recipeRepo.Transaction(func(repo *repository.RecipeRepository) error {
		if err := resolveReferences(repo, input); err != nil {
			return err
		}
		if err := repo.UpdateFields(recipe); err != nil {
			return err
		}
		return reconcileRelations(repo, recipeID, input)
	})
	if err != nil {
		s.discardImage(ctx, newImage)
		return nil, s.writeError(err, req.Name, recipeID, "更新菜谱失败")
	}

	if newImage != "" {
		s.discardImage(ctx, oldImage)
	}

	return s.Get(actor, recipeID)
}

// reconcileRelations 同步标签与用量，先删后增以免触发唯一索引
func reconcileRelations(repo *repository.RecipeRepository, recipeID uint, input *recipeInput) error {
	currentTags, err := repo.TagIDs(recipeID)
	if err != nil {
		return err
	}
	tagsToAdd, tagsToRemove := Diff(currentTags, input.tagIDs)
	if err := repo.RemoveTags(recipeID, tagsToRemove); err != nil {
		return err
	}
	if err := repo.AddTags(recipeID, tagsToAdd); err != nil {
		return err
	}

	currentAmounts, err := repo.AmountKeys(recipeID)
	if err != nil {
		return err
	}
	amountsToAdd, amountsToRemove := Diff(currentAmounts, input.amounts)
	if err := repo.RemoveAmounts(recipeID, amountsToRemove); err != nil {
		return err
	}
	return repo.AddAmounts(recipeID, amountsToAdd)
}

// Delete 删除菜谱及其关联，提交后删除图片
func (s *RecipeService) Delete(ctx context.Context, actor *Actor, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return lookupError(err, "菜谱")
	}
	if !CanModify(actor, recipe) {
		return errs.Forbidden("只有作者或管理员可以删除菜谱")
	}

	if err := s.recipeRepo.Delete(recipeID); err != nil {
		return fmt.Errorf("删除菜谱失败: %w", err)
	}

	s.discardImage(ctx, recipe.Image)
	s.logger.WithFields(logrus.Fields{"recipe_id": recipeID, "user_id": actor.UserID}).Info("菜谱已删除")
	return nil
}

// Get 获取菜谱详情，viewer 为 nil 表示匿名
func (s *RecipeService) Get(viewer *Actor, recipeID uint) (*dto.RecipeInfo, error) {
	recipe, err := s.recipeRepo.GetDetail(recipeID)
	if err != nil {
		return nil, lookupError(err, "菜谱")
	}

	infos, err := s.toRecipeInfos(viewer, []models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &infos[0], nil
}

// List 按条件分页获取菜谱
func (s *RecipeService) List(viewer *Actor, query dto.RecipeFilterQuery, page utils.Page) (*dto.PageResult[dto.RecipeInfo], error) {
	filter := repository.RecipeFilter{
		ViewerID:         viewer.ViewerID(),
		IsFavorited:      query.IsFavorited,
		IsInShoppingCart: query.IsInShoppingCart,
		TagSlugs:         query.Tags,
	}

	if query.Author != "" {
		authorID, err := s.resolveAuthor(query.Author)
		if err != nil {
			return nil, err
		}
		filter.AuthorID = &authorID
	}

	recipes, total, err := s.recipeRepo.List(filter, page.Offset(), page.Limit)
	if err != nil {
		return nil, fmt.Errorf("获取菜谱列表失败: %w", err)
	}

	infos, err := s.toRecipeInfos(viewer, recipes)
	if err != nil {
		return nil, err
	}
	return &dto.PageResult[dto.RecipeInfo]{Items: infos, Total: total}, nil
}

// resolveAuthor author 参数为数字时按ID查找，否则按用户名
func (s *RecipeService) resolveAuthor(author string) (uint, error) {
	var (
		user *models.User
		err  error
	)
	if id, convErr := strconv.ParseUint(author, 10, 64); convErr == nil {
		user, err = s.userRepo.GetByID(uint(id))
	} else {
		user, err = s.userRepo.GetByUsername(author)
	}
	if err != nil {
		return 0, lookupError(err, "作者")
	}
	return user.ID, nil
}

// prepare 校验请求，解析标签、食材和图片
func (s *RecipeService) prepare(req *dto.RecipeRequest, recipeID uint, requireImage bool) (*recipeInput, error) {
	if err := validateRecipeRequest(req, requireImage); err != nil {
		return nil, err
	}

	exists, err := s.recipeRepo.ExistsByName(req.Name, recipeID)
	if err != nil {
		return nil, fmt.Errorf("检查菜谱名称失败: %w", err)
	}
	if exists {
		return nil, errs.Validation("name", "菜谱名称已存在")
	}

	input := &recipeInput{
		tagIDs:        req.Tags,
		ingredientIDs: make([]uint, len(req.Ingredients)),
		amounts:       make([]repository.AmountKey, len(req.Ingredients)),
	}
	for i, item := range req.Ingredients {
		input.ingredientIDs[i] = item.ID
		input.amounts[i] = repository.AmountKey{IngredientID: item.ID, Amount: item.Amount}
	}

	if req.Image != "" {
		img, err := utils.DecodeBase64Image(req.Image)
		if err != nil {
			return nil, errs.Validation("image", err.Error())
		}
		if err := img.CheckMinSize(s.mediaCfg.MinWidth, s.mediaCfg.MinHeight); err != nil {
			return nil, errs.Validation("image", err.Error())
		}
		input.image = img
	}

	return input, nil
}

// resolveReferences 在写入事务内确认标签和食材存在
func resolveReferences(repo *repository.RecipeRepository, input *recipeInput) error {
	count, err := repo.CountTags(input.tagIDs)
	if err != nil {
		return fmt.Errorf("查询标签失败: %w", err)
	}
	if count != int64(len(input.tagIDs)) {
		return errs.NotFound("标签")
	}

	count, err = repo.CountIngredients(input.ingredientIDs)
	if err != nil {
		return fmt.Errorf("查询食材失败: %w", err)
	}
	if count != int64(len(input.ingredientIDs)) {
		return errs.NotFound("食材")
	}
	return nil
}

// writeError 转换写入事务的错误。唯一约束冲突只有在名称确实被占用时才报名称重复
func (s *RecipeService) writeError(err error, name string, recipeID uint, action string) error {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if !isDuplicate(err) {
		return fmt.Errorf("%s: %w", action, err)
	}

	taken, checkErr := s.recipeRepo.ExistsByName(name, recipeID)
	if checkErr != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if taken {
		return errs.Validation("name", "菜谱名称已存在")
	}
	return errs.AlreadyExists("菜谱的标签或食材已被同时修改，请重试")
}

// validateRecipeRequest 与存储无关的字段校验
func validateRecipeRequest(req *dto.RecipeRequest, requireImage bool) error {
	fields := make(map[string]string)

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		fields["name"] = "必填字段"
	case len([]rune(name)) > 200:
		fields["name"] = "不能超过200个字符"
	}
	if strings.TrimSpace(req.Text) == "" {
		fields["text"] = "必填字段"
	}
	if req.CookingTime < 1 {
		fields["cooking_time"] = "必须大于等于1"
	}
	if requireImage && strings.TrimSpace(req.Image) == "" {
		fields["image"] = "必填字段"
	}

	if len(req.Tags) == 0 {
		fields["tags"] = "至少需要一个标签"
	} else if hasDuplicates(req.Tags) {
		fields["tags"] = "标签不能重复"
	}

	if len(req.Ingredients) == 0 {
		fields["ingredients"] = "至少需要一种食材"
	} else {
		ids := make([]uint, len(req.Ingredients))
		for i, item := range req.Ingredients {
			ids[i] = item.ID
			if item.Amount <= 0 {
				fields["ingredients"] = "用量必须大于0"
			}
		}
		if _, ok := fields["ingredients"]; !ok && hasDuplicates(ids) {
			fields["ingredients"] = "食材不能重复"
		}
	}

	if len(fields) > 0 {
		return errs.ValidationFields(fields)
	}
	return nil
}

func hasDuplicates[K comparable](items []K) bool {
	seen := make(map[K]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			return true
		}
		seen[item] = struct{}{}
	}
	return false
}

func (s *RecipeService) storeImage(ctx context.Context, img *utils.DecodedImage) (string, error) {
	if img == nil {
		return "", nil
	}
	key := recipeImageDir + uuid.NewString() + img.Ext()
	if err := s.images.Save(ctx, key, img.Data, img.ContentType()); err != nil {
		return "", fmt.Errorf("保存图片失败: %w", err)
	}
	return key, nil
}

// discardImage 删除不再使用的图片，失败只记录日志
func (s *RecipeService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.WithError(err).WithField("image", key).Warn("删除图片失败")
	}
}

// toRecipeInfos 组装菜谱响应，批量查询当前用户的收藏、购物车与订阅状态
func (s *RecipeService) toRecipeInfos(viewer *Actor, recipes []models.Recipe) ([]dto.RecipeInfo, error) {
	viewerID := viewer.ViewerID()
	recipeIDs := make([]uint, len(recipes))
	authorIDs := make([]uint, len(recipes))
	for i := range recipes {
		recipeIDs[i] = recipes[i].ID
		authorIDs[i] = recipes[i].AuthorID
	}

	favorited, err := s.favoriteRepo.MarkedRecipeIDs(viewerID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("查询收藏状态失败: %w", err)
	}
	inCart, err := s.cartRepo.MarkedRecipeIDs(viewerID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("查询购物车状态失败: %w", err)
	}
	followed, err := s.followRepo.FollowedAuthorIDs(viewerID, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("查询订阅状态失败: %w", err)
	}

	infos := make([]dto.RecipeInfo, len(recipes))
	for i := range recipes {
		r := &recipes[i]

		tags := make([]dto.TagInfo, len(r.TagRecipes))
		for j := range r.TagRecipes {
			tags[j] = toTagInfo(&r.TagRecipes[j].Tag)
		}

		ingredients := make([]dto.RecipeIngredientInfo, len(r.Amounts))
		for j, a := range r.Amounts {
			ingredients[j] = dto.RecipeIngredientInfo{
				ID:              a.IngredientID,
				Name:            a.Ingredient.Name,
				MeasurementUnit: a.Ingredient.MeasurementUnit,
				Amount:          a.Amount,
			}
		}

		infos[i] = dto.RecipeInfo{
			ID:               r.ID,
			Tags:             tags,
			Author:           toUserInfo(&r.Author, followed[r.AuthorID]),
			Ingredients:      ingredients,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            imageURL(s.images, r.Image),
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			PubDate:          r.CreatedAt,
		}
	}
	return infos, nil
}

