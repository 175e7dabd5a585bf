// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Data struct {
		Dir        string `mapstructure:"dir"`         // カテゴリJSONの置き場所
		LegacyFile string `mapstructure:"legacy_file"` // 移行元のフラットな旧ファイル
	} `mapstructure:"data"`
	Review struct {
		Policy string `mapstructure:"policy"` // "weighted" or "due"
	} `mapstructure:"review"`
	Generation struct {
		MaxCards   int  `mapstructure:"max_cards"`   // 1回の生成で作る上限
		QAFallback bool `mapstructure:"qa_fallback"` // qa生成が不足したらclozeで補う
	} `mapstructure:"generation"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数でも上書きできるようにする (例: APP_REVIEW_POLICY)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("review.policy", "APP_REVIEW_POLICY")
	viper.BindEnv("data.dir", "APP_DATA_DIR")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.Data.Dir == "" {
		Cfg.Data.Dir = DefaultDataDir
	}
	if Cfg.Data.LegacyFile == "" {
		Cfg.Data.LegacyFile = DefaultLegacyFile
	}
	if Cfg.Review.Policy != PolicyWeighted && Cfg.Review.Policy != PolicyDue {
		if Cfg.Review.Policy != "" {
			log.Printf("Unknown review policy %q, falling back to %q", Cfg.Review.Policy, PolicyWeighted)
		}
		Cfg.Review.Policy = PolicyWeighted
	}
	if Cfg.Generation.MaxCards <= 0 {
		Cfg.Generation.MaxCards = DefaultMaxGenerate
	}
	if !viper.IsSet("generation.qa_fallback") {
		// 旧アプリの挙動に合わせてデフォルトは有効
		Cfg.Generation.QAFallback = true
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Data Dir: %s", Cfg.Data.Dir)
	log.Printf("Review Policy: %s", Cfg.Review.Policy)

	return nil
}
