// internal/service/generator_service.go
package service

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"go_5_flashcard_keep/internal/config"
	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/repository"
)

const (
	blankMarker = "_____"
	// 文断片として採用する最小文字数（trim後）
	minSentenceLen = 15
	// Q/Aシードとして認める「:」より前の最大文字数。
	// 長すぎる「質問」は、コロンを含む散文の誤検出とみなして弾く。
	maxQuestionPrefixLen = 100
	// 継続行として答えに連結する最大文字数
	maxContinuationLen = 200
	// シード行の後ろを見に行く最大行数
	qaLookahead = 3
)

// 単語トークン＝英数字（文字・数字）の連なり
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

type GeneratorService interface {
	Generate(ctx context.Context, category string, req *model.GenerateRequest) (*model.GenerateResult, error)
}

type generatorService struct {
	cardRepo repository.CardRepository
	cfg      *config.Config
}

func NewGeneratorService(cardRepo repository.CardRepository, cfg *config.Config) GeneratorService {
	return &generatorService{cardRepo: cardRepo, cfg: cfg}
}

// Generate は貼り付けテキストから候補カードを作り、カテゴリに追記保存します。
// 0件生成は正常系で、件数として報告する。
func (s *generatorService) Generate(ctx context.Context, category string, req *model.GenerateRequest) (*model.GenerateResult, error) {
	logger := middleware.GetLogger(ctx).With("category", category)

	method := req.Method
	if method == "" {
		method = model.MethodCloze
	}
	maxCards := req.MaxCards
	if maxCards <= 0 {
		maxCards = s.cfg.Generation.MaxCards
	}

	newCards := GenerateCards(req.Text, method, maxCards, s.cfg.Generation.QAFallback)

	if len(newCards) > 0 {
		cards, err := s.cardRepo.Load(ctx, category)
		if err != nil {
			logger.Error("Failed to load cards before generation, continuing with empty store", "error", err)
		}
		cards = append(cards, newCards...)
		if err := s.cardRepo.Save(ctx, category, cards); err != nil {
			logger.Error("Failed to save generated cards", "error", err)
			return nil, model.NewAppError("STORAGE_WRITE_ERROR", "生成したカードの保存に失敗しました。", "", model.ErrStorageWrite)
		}
	}

	logger.Info("Cards generated", "method", method, "generated", len(newCards))
	return &model.GenerateResult{Generated: len(newCards), Cards: newCards}, nil
}

// GenerateCards は戦略を選んでテキストからカードを生成します。
// method が "qa" で行ベース生成が maxCards に満たない場合、qaFallback が
// 有効なら同じテキストへのcloze生成で残りを埋める。
func GenerateCards(text, method string, maxCards int, qaFallback bool) []*model.Card {
	cards := make([]*model.Card, 0)

	if method == model.MethodQA {
		for _, qa := range qaFromLines(text) {
			cards = append(cards, model.NewCard(qa.question, qa.answer))
			if len(cards) >= maxCards {
				return cards
			}
		}
		if !qaFallback {
			return cards
		}
	}

	for _, sentence := range splitSentences(text) {
		question, answer, ok := clozeFromSentence(sentence)
		if !ok {
			continue
		}
		cards = append(cards, model.NewCard(question, answer))
		if len(cards) >= maxCards {
			break
		}
	}
	return cards
}

// splitSentences は句読点境界（. ? ! ;）でテキストを文に分割します。
// trim後 minSentenceLen 文字を超えない断片は捨てる。
func splitSentences(text string) []string {
	flat := []rune(strings.ReplaceAll(text, "\n", " "))

	var sentences []string
	appendSentence := func(runes []rune) {
		s := strings.TrimSpace(string(runes))
		if len([]rune(s)) > minSentenceLen {
			sentences = append(sentences, s)
		}
	}

	start := 0
	for i := 0; i < len(flat); i++ {
		switch flat[i] {
		case '.', '?', '!', ';':
			// 境界は句読点の直後に空白が続く位置
			if i+1 < len(flat) && unicode.IsSpace(flat[i+1]) {
				appendSentence(flat[start : i+1])
				start = i + 1
			}
		}
	}
	if start < len(flat) {
		appendSentence(flat[start:])
	}
	return sentences
}

// clozeFromSentence は1文から穴埋めカードを作ります。
// 空白化する単語は「6文字より長い候補（無ければ4文字より長い候補）」のうち
// 最長のもの。同長の場合は文中で先に現れたものを選ぶ（決定的）。
func clozeFromSentence(sentence string) (question, answer string, ok bool) {
	words := wordPattern.FindAllString(sentence, -1)
	if len(words) == 0 {
		return "", "", false
	}

	candidates := filterByRuneLen(words, 6)
	if len(candidates) == 0 {
		candidates = filterByRuneLen(words, 4)
	}
	if len(candidates) == 0 {
		return "", "", false
	}

	blank := candidates[0]
	for _, w := range candidates[1:] {
		if len([]rune(w)) > len([]rune(blank)) {
			blank = w
		}
	}

	// 最初に現れる単語境界つきの出現を大文字小文字を無視して置換する
	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(blank) + `\b`)
	if err == nil {
		if loc := pattern.FindStringIndex(sentence); loc != nil {
			return sentence[:loc[0]] + blankMarker + sentence[loc[1]:], blank, true
		}
	}
	// 境界マッチが成立しないときは素朴な先頭置換にフォールバック
	replaced := strings.Replace(sentence, blank, blankMarker, 1)
	if replaced == sentence {
		return "", "", false
	}
	return replaced, blank, true
}

func filterByRuneLen(words []string, min int) []string {
	var out []string
	for _, w := range words {
		if len([]rune(w)) > min {
			out = append(out, w)
		}
	}
	return out
}

type qaPair struct {
	question string
	answer   string
}

// qaFromLines は「Term: Definition」形式の行からQ/Aカードを作ります。
// シード行の後ろ最大3行は、それ自体が新しいシードでなく短い行であれば
// 答えの続きとしてスペース連結する。
func qaFromLines(text string) []qaPair {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}

	var results []qaPair
	for i, line := range lines {
		if !isQASeed(line) {
			continue
		}
		left, right, _ := strings.Cut(line, ":")
		question := strings.TrimSpace(left)
		answer := strings.TrimSpace(right)

		for j := i + 1; j < len(lines) && j <= i+qaLookahead; j++ {
			if isQASeed(lines[j]) {
				break
			}
			if len([]rune(lines[j])) < maxContinuationLen {
				answer += " " + lines[j]
			}
		}
		results = append(results, qaPair{question: question, answer: answer})
	}
	return results
}

func isQASeed(line string) bool {
	before, _, found := strings.Cut(line, ":")
	return found && len([]rune(before)) < maxQuestionPrefixLen
}
