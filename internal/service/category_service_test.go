// internal/service/category_service_test.go
package service

import (
	"context"
	"testing"

	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_ListCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: カード数付きで一覧を返す", func(t *testing.T) {
		mockCatRepo := mocks.NewCategoryRepository(t)
		mockCardRepo := mocks.NewCardRepository(t)
		mockCatRepo.On("List", ctx).Return([]string{"algebra", "biology"}, nil).Once()
		mockCardRepo.On("Load", ctx, "algebra").Return([]*model.Card{model.NewCard("q", "a")}, nil).Once()
		mockCardRepo.On("Load", ctx, "biology").Return([]*model.Card{}, nil).Once()

		svc := NewCategoryService(mockCatRepo, mockCardRepo)
		got, err := svc.ListCategories(ctx)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, &model.Category{Name: "algebra", Cards: 1}, got[0])
		assert.Equal(t, &model.Category{Name: "biology", Cards: 0}, got[1])
	})

	t.Run("壊れたカテゴリは0件扱いで一覧は成功する", func(t *testing.T) {
		mockCatRepo := mocks.NewCategoryRepository(t)
		mockCardRepo := mocks.NewCardRepository(t)
		mockCatRepo.On("List", ctx).Return([]string{"broken"}, nil).Once()
		mockCardRepo.On("Load", ctx, "broken").Return([]*model.Card{}, assert.AnError).Once()

		svc := NewCategoryService(mockCatRepo, mockCardRepo)
		got, err := svc.ListCategories(ctx)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].Cards)
	})
}

func TestCategoryService_CreateCategory(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		reqName   string
		setupMock func(m *mocks.CategoryRepository)
		wantErr   error
	}{
		{
			name:    "正常系: 作成成功",
			reqName: "history",
			setupMock: func(m *mocks.CategoryRepository) {
				m.On("Create", ctx, "history").Return(nil).Once()
			},
		},
		{
			name:    "正常系: 前後の空白はtrimされる",
			reqName: "  physics  ",
			setupMock: func(m *mocks.CategoryRepository) {
				m.On("Create", ctx, "physics").Return(nil).Once()
			},
		},
		{
			name:    "異常系: 重複はErrConflict",
			reqName: "dup",
			setupMock: func(m *mocks.CategoryRepository) {
				m.On("Create", ctx, "dup").Return(model.ErrConflict).Once()
			},
			wantErr: model.ErrConflict,
		},
		{
			name:    "異常系: パス区切りを含む名前はErrInvalidInput",
			reqName: "a/b",
			wantErr: model.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatRepo := mocks.NewCategoryRepository(t)
			mockCardRepo := mocks.NewCardRepository(t)
			if tt.setupMock != nil {
				tt.setupMock(mockCatRepo)
			}

			svc := NewCategoryService(mockCatRepo, mockCardRepo)
			got, err := svc.CreateCategory(ctx, &model.CreateCategoryRequest{Name: tt.reqName})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 0, got.Cards)
			}
		})
	}
}

func TestCategoryService_MigrateLegacy(t *testing.T) {
	ctx := context.Background()

	t.Run("移行が実行されたことを報告する", func(t *testing.T) {
		mockCatRepo := mocks.NewCategoryRepository(t)
		mockCatRepo.On("MigrateLegacy", ctx).Return(true, nil).Once()

		svc := NewCategoryService(mockCatRepo, mocks.NewCardRepository(t))
		got, err := svc.MigrateLegacy(ctx)

		require.NoError(t, err)
		assert.True(t, got.Migrated)
	})

	t.Run("移行失敗はStorageWriteError", func(t *testing.T) {
		mockCatRepo := mocks.NewCategoryRepository(t)
		mockCatRepo.On("MigrateLegacy", ctx).Return(false, assert.AnError).Once()

		svc := NewCategoryService(mockCatRepo, mocks.NewCardRepository(t))
		_, err := svc.MigrateLegacy(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrStorageWrite)
	})
}
