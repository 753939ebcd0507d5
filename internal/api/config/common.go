package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Freshness FreshnessConfig `mapstructure:"freshness"`
	Alert     AlertConfig     `mapstructure:"alert"`
	Compose   ComposeConfig   `mapstructure:"compose"`
	Caption   CaptionConfig   `mapstructure:"caption"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置（图层素材与成品图的对象存储）
type MinIOConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	LayerPrefix    string `mapstructure:"layer_prefix"`
	OutputPrefix   string `mapstructure:"output_prefix"`
	UseSSL         bool   `mapstructure:"use_ssl"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
}

type LLMConfig struct {
	URL         string           `mapstructure:"url"`
	Model       string           `mapstructure:"model"`
	ApiKey      string           `mapstructure:"api_key"`
	Temperature float64          `mapstructure:"temperature"`
	PromptsPath PromptPathConfig `mapstructure:"prompts_path"`
}

type PromptPathConfig struct {
	GM     string `mapstructure:"gm"`
	Main   string `mapstructure:"main"`
	Casual string `mapstructure:"casual"`
	Reply  string `mapstructure:"reply"`
}

type KafkaConfig struct {
	Enabled    bool       `mapstructure:"enabled"`
	Brokers    []string   `mapstructure:"brokers"`
	AlertTopic string     `mapstructure:"alert_topic"`
	Sasl       SaslConfig `mapstructure:"sasl"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// FreshnessConfig 新鲜度监控配置
type FreshnessConfig struct {
	HistoryDir          string                `mapstructure:"history_dir"`
	Window              int                   `mapstructure:"window"`
	MinSamples          int                   `mapstructure:"min_samples"`
	SimilarityThreshold float64               `mapstructure:"similarity_threshold"`
	StopPhrases         []string              `mapstructure:"stop_phrases"`
	Thresholds          ThresholdConfig       `mapstructure:"thresholds"`
	Weights             WeightConfig          `mapstructure:"weights"`
	Types               []FreshnessTypeConfig `mapstructure:"types"`
}

// ThresholdConfig 各项子指标的报警阈值
type ThresholdConfig struct {
	ExactDuplicateRate   float64 `mapstructure:"exact_duplicate_rate"`
	SimilarDuplicateRate float64 `mapstructure:"similar_duplicate_rate"`
	PhraseReuseRate      float64 `mapstructure:"phrase_reuse_rate"`
	DaysSinceTraining    int     `mapstructure:"days_since_training"`
	StalenessScore       float64 `mapstructure:"staleness_score"`
}

// WeightConfig 综合分的加权配置（四项之和应为 1.0）
type WeightConfig struct {
	ExactDuplicate    float64 `mapstructure:"exact_duplicate"`
	SimilarDuplicate  float64 `mapstructure:"similar_duplicate"`
	PhraseReuse       float64 `mapstructure:"phrase_reuse"`
	TrainingStaleness float64 `mapstructure:"training_staleness"`
}

// FreshnessTypeConfig 每种内容类型的独立监控配置
type FreshnessTypeConfig struct {
	Type          string         `mapstructure:"type"`
	Name          string         `mapstructure:"name"`
	Description   string         `mapstructure:"description"`
	Enabled       bool           `mapstructure:"enabled"`
	CheckInterval int            `mapstructure:"check_interval"`
	Severity      SeverityConfig `mapstructure:"severity"`
}

// SeverityConfig 报警严重程度的分数分界
type SeverityConfig struct {
	High   float64 `mapstructure:"high"`
	Medium float64 `mapstructure:"medium"`
	Low    float64 `mapstructure:"low"`
}

// AlertConfig 报警渠道配置
type AlertConfig struct {
	LogFile          string `mapstructure:"log_file"`
	LatestFile       string `mapstructure:"latest_file"`
	LarkWebhookURL   string `mapstructure:"lark_webhook_url"`
	TrainingGuideURL string `mapstructure:"training_guide_url"`
	Console          bool   `mapstructure:"console"`
}

// ComposeConfig 图层合成配置
type ComposeConfig struct {
	LayerDir     string `mapstructure:"layer_dir"`
	BaseDir      string `mapstructure:"base_dir"`
	CanvasWidth  int    `mapstructure:"canvas_width"`
	CanvasHeight int    `mapstructure:"canvas_height"`
	OutputDir    string `mapstructure:"output_dir"`
}

// CaptionConfig 梗图文字配置
type CaptionConfig struct {
	ImpactFonts []string `mapstructure:"impact_fonts"`
	GlowFonts   []string `mapstructure:"glow_fonts"`
	CJKFonts    []string `mapstructure:"cjk_fonts"`
}
