// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "FlashcardKeep"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort  = ":8080"
	DefaultLogLevel    = "info"
	DefaultDataDir     = "data"
	DefaultLegacyFile  = "flashcards.json"
	DefaultMaxGenerate = 80
)

// カード選択ポリシー名
const (
	PolicyWeighted = "weighted" // ease_factor で重み付けした連続復習
	PolicyDue      = "due"      // due_date でゲートするカレンダー復習
)
