// internal/sm2/sm2.go
// 簡易版SM-2スケジューラ。カードのスケジューリング状態と履歴だけを更新する
// 純粋な関数で、永続化は呼び出し側（サービス層）の責務。
package sm2

import (
	"math"
	"time"

	"go_5_flashcard_keep/internal/model"
)

// ユーザー評価(1-3)をSM-2の内部品質(0-5)に対応付ける。
// 0/1/3 はこのUIからは到達しないが、式としてはサポートする。
var qualityMap = map[int]int{
	model.GradeFailed:  2,
	model.GradePartial: 4,
	model.GradeGood:    5,
}

// Quality はユーザー評価を内部品質に変換します。
// 未知の評価はエラーにせず品質3として扱う（この関数は失敗しない）。
func Quality(userGrade int) int {
	if q, ok := qualityMap[userGrade]; ok {
		return q
	}
	return 3
}

// Grade はカードに1回の採点イベントを適用します。
//
//   - 品質 < 3 はラプス：repetitions=0, interval=1
//   - それ以外：repetitions++ 、intervalは 1 → 6 → ceil(前回interval × EF)
//   - EF += 0.1 - (5-q)*(0.08 + (5-q)*0.02)、下限1.3（上限なし）
//   - due_date = today + interval日、履歴に1件追記
//
// 採点後は必ず interval >= 1 になる。
func Grade(card *model.Card, userGrade int, today time.Time) {
	q := Quality(userGrade)

	if q < 3 {
		card.Repetitions = 0
		card.Interval = 1
	} else {
		card.Repetitions++
		switch card.Repetitions {
		case 1:
			card.Interval = 1
		case 2:
			card.Interval = 6
		default:
			card.Interval = int(math.Ceil(float64(card.Interval) * card.EaseFactor))
		}
	}

	ef := card.EaseFactor + (0.1 - float64(5-q)*(0.08+float64(5-q)*0.02))
	if ef < model.MinEaseFactor {
		ef = model.MinEaseFactor
	}
	card.EaseFactor = ef

	card.DueDate = today.AddDate(0, 0, card.Interval).Format(model.DateLayout)
	card.History = append(card.History, model.ReviewRecord{
		Date:      today.Format(model.DateLayout),
		Quality:   q,
		UserGrade: userGrade,
	})
}
