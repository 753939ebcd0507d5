package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// setDefaults 阈值和权重是手调参数而不是定律，配置缺失时回退到经验默认值
func setDefaults() {
	viper.SetDefault("freshness.window", 50)
	viper.SetDefault("freshness.min_samples", 10)
	viper.SetDefault("freshness.similarity_threshold", 0.8)
	viper.SetDefault("freshness.stop_phrases", []string{"gm from", "from the", "the data", "data labeling"})
	viper.SetDefault("freshness.history_dir", "./data")

	viper.SetDefault("freshness.thresholds.exact_duplicate_rate", 0.10)
	viper.SetDefault("freshness.thresholds.similar_duplicate_rate", 0.25)
	viper.SetDefault("freshness.thresholds.phrase_reuse_rate", 0.40)
	viper.SetDefault("freshness.thresholds.days_since_training", 30)
	viper.SetDefault("freshness.thresholds.staleness_score", 0.50)

	viper.SetDefault("freshness.weights.exact_duplicate", 0.4)
	viper.SetDefault("freshness.weights.similar_duplicate", 0.3)
	viper.SetDefault("freshness.weights.phrase_reuse", 0.2)
	viper.SetDefault("freshness.weights.training_staleness", 0.1)

	viper.SetDefault("compose.canvas_width", 1000)
	viper.SetDefault("compose.canvas_height", 1250)
	viper.SetDefault("compose.output_dir", "./output/memes")
}
