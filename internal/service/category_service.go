// internal/service/category_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/repository"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	// MigrateLegacy は旧形式のフラットなファイルを default カテゴリへ移行します。
	MigrateLegacy(ctx context.Context) (*model.MigrateResult, error)
}

type categoryService struct {
	catRepo  repository.CategoryRepository
	cardRepo repository.CardRepository
}

func NewCategoryService(catRepo repository.CategoryRepository, cardRepo repository.CardRepository) CategoryService {
	return &categoryService{catRepo: catRepo, cardRepo: cardRepo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	logger := middleware.GetLogger(ctx)

	names, err := s.catRepo.List(ctx)
	if err != nil {
		logger.Error("Failed to list categories", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ一覧の取得に失敗しました。", "", model.ErrInternalServer)
	}

	categories := make([]*model.Category, 0, len(names))
	for _, name := range names {
		cards, err := s.cardRepo.Load(ctx, name)
		if err != nil {
			// 壊れたカテゴリファイルは0件として表示し、一覧自体は失敗させない
			logger.Warn("Failed to load cards for category count", "category", name, "error", err)
		}
		categories = append(categories, &model.Category{Name: name, Cards: len(cards)})
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	logger := middleware.GetLogger(ctx)

	name := strings.TrimSpace(req.Name)
	if !model.ValidCategoryName(name) {
		return nil, model.NewAppError("INVALID_INPUT", "カテゴリ名が不正です。", "name", model.ErrInvalidInput)
	}

	if err := s.catRepo.Create(ctx, name); err != nil {
		switch {
		case errors.Is(err, model.ErrConflict):
			return nil, model.NewAppError("CONFLICT", "このカテゴリは既に存在します。", "name", model.ErrConflict)
		case errors.Is(err, model.ErrInvalidInput):
			return nil, model.NewAppError("INVALID_INPUT", "カテゴリ名が不正です。", "name", model.ErrInvalidInput)
		default:
			logger.Error("Failed to create category", "category", name, "error", err)
			return nil, model.NewAppError("STORAGE_WRITE_ERROR", "カテゴリの作成に失敗しました。", "", model.ErrStorageWrite)
		}
	}

	logger.Info("Category created", "category", name)
	return &model.Category{Name: name, Cards: 0}, nil
}

func (s *categoryService) MigrateLegacy(ctx context.Context) (*model.MigrateResult, error) {
	logger := middleware.GetLogger(ctx)

	migrated, err := s.catRepo.MigrateLegacy(ctx)
	if err != nil {
		logger.Error("Legacy migration failed", "error", err)
		return nil, model.NewAppError("STORAGE_WRITE_ERROR", "旧データの移行に失敗しました。", "", model.ErrStorageWrite)
	}

	if migrated {
		logger.Info("Legacy file migrated to default category")
	}
	return &model.MigrateResult{Migrated: migrated}, nil
}
