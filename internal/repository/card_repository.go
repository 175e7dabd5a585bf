// internal/repository/card_repository.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go_5_flashcard_keep/internal/model"
)

// CardRepository はカテゴリ単位のカード永続化の契約です。
// 1カテゴリ = 1つのJSON配列ファイル。Loadは欠損フィールドに寛容で、
// Saveはリスト全体を1回の書き込みで置き換えます。
type CardRepository interface {
	Load(ctx context.Context, category string) ([]*model.Card, error)
	Save(ctx context.Context, category string, cards []*model.Card) error
}

type fileCardRepository struct {
	dataDir string
}

func NewFileCardRepository(dataDir string) CardRepository {
	return &fileCardRepository{dataDir: dataDir}
}

// StorageFile はカテゴリ名から保存ファイルパスを組み立てます。
func StorageFile(dataDir, category string) string {
	return filepath.Join(dataDir, category+".json")
}

// Load はカテゴリのカード一覧を読み込みます。
//   - ファイルが存在しない → 空リスト（エラーではない）
//   - ファイルが壊れている / 読めない → 空リストとエラーの両方を返す。
//     呼び出し側は報告して空ストアとして継続する（復習をクラッシュさせない）。
//   - レコード単位の欠損フィールドは CardFromRecord がデフォルトで埋める。
func (r *fileCardRepository) Load(ctx context.Context, category string) ([]*model.Card, error) {
	path := StorageFile(r.dataDir, category)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*model.Card{}, nil
		}
		return []*model.Card{}, fmt.Errorf("fileCardRepository.Load: read %s: %w", path, err)
	}

	var records []model.CardRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return []*model.Card{}, fmt.Errorf("fileCardRepository.Load: parse %s: %w", path, err)
	}

	cards := make([]*model.Card, 0, len(records))
	for _, rec := range records {
		cards = append(cards, model.CardFromRecord(rec))
	}
	return cards, nil
}

// Save はリスト全体をシリアライズして書き込みます。
// 一時ファイルに全量を書いてから rename するので、読む側が
// 中途半端なリストを見ることはありません（トランザクション保証まではしない）。
func (r *fileCardRepository) Save(ctx context.Context, category string, cards []*model.Card) error {
	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return fmt.Errorf("fileCardRepository.Save: mkdir %s: %w", r.dataDir, err)
	}

	if cards == nil {
		cards = []*model.Card{}
	}
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("fileCardRepository.Save: marshal %s: %w", category, err)
	}

	path := StorageFile(r.dataDir, category)
	tmp, err := os.CreateTemp(r.dataDir, category+"-*.tmp")
	if err != nil {
		return fmt.Errorf("fileCardRepository.Save: temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("fileCardRepository.Save: write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("fileCardRepository.Save: close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("fileCardRepository.Save: rename to %s: %w", path, err)
	}
	return nil
}
