// internal/repository/category_repository.go
package repository

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"go_5_flashcard_keep/internal/model"
)

// CategoryRepository はカテゴリ（名前 ↔ 保存ファイル）の管理の契約です。
type CategoryRepository interface {
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	// MigrateLegacy はカテゴリが1つも無く、旧形式のフラットなファイルが
	// 存在する場合に、その内容を "default" カテゴリへそのままコピーします。
	// 実行したかどうかを返します。
	MigrateLegacy(ctx context.Context) (bool, error)
}

type fileCategoryRepository struct {
	dataDir    string
	legacyFile string
}

func NewFileCategoryRepository(dataDir, legacyFile string) CategoryRepository {
	return &fileCategoryRepository{dataDir: dataDir, legacyFile: legacyFile}
}

func (r *fileCategoryRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil // データディレクトリ未作成はカテゴリ0件
		}
		return nil, fmt.Errorf("fileCategoryRepository.List: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (r *fileCategoryRepository) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(StorageFile(r.dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("fileCategoryRepository.Exists: %w", err)
	}
	return true, nil
}

func (r *fileCategoryRepository) Create(ctx context.Context, name string) error {
	if !model.ValidCategoryName(name) {
		return model.ErrInvalidInput
	}
	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return fmt.Errorf("fileCategoryRepository.Create: mkdir: %w", err)
	}

	exists, err := r.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return model.ErrConflict
	}

	if err := os.WriteFile(StorageFile(r.dataDir, name), []byte("[]"), 0o644); err != nil {
		return fmt.Errorf("fileCategoryRepository.Create: write: %w", err)
	}
	return nil
}

func (r *fileCategoryRepository) MigrateLegacy(ctx context.Context) (bool, error) {
	names, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	if len(names) > 0 {
		return false, nil // 既にカテゴリがあるなら何もしない
	}

	data, err := os.ReadFile(r.legacyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("fileCategoryRepository.MigrateLegacy: read: %w", err)
	}

	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return false, fmt.Errorf("fileCategoryRepository.MigrateLegacy: mkdir: %w", err)
	}
	// 内容の解釈はしない。そのまま default カテゴリへコピーする。
	if err := os.WriteFile(StorageFile(r.dataDir, "default"), data, 0o644); err != nil {
		return false, fmt.Errorf("fileCategoryRepository.MigrateLegacy: write: %w", err)
	}
	return true, nil
}
