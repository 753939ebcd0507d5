package dto

// RecordPostReq 记录一条生成文案
type RecordPostReq struct {
	Text        string            `json:"text" binding:"required"`
	ContentType string            `json:"content_type" binding:"required"`
	Metadata    map[string]string `json:"metadata"`
}

// RecordPostDTO 记录结果
type RecordPostDTO struct {
	ID          int64  `json:"id"`
	ContentType string `json:"content_type"`
	Timestamp   string `json:"timestamp"`
	// Checked 本次写入是否触发了周期性检查
	Checked bool          `json:"checked"`
	Report  *FreshnessDTO `json:"report,omitempty"`
}

// RecordTrainingReq 记录一次训练数据更新
type RecordTrainingReq struct {
	ContentType  string `json:"content_type" binding:"required"`
	Type         string `json:"type" binding:"required"`
	SamplesAdded int    `json:"samples_added" binding:"gte=0"`
	Notes        string `json:"notes"`
}

// FreshnessStatsDTO 单次检查的统计指标
type FreshnessStatsDTO struct {
	ExactDuplicateRate   float64 `json:"exact_duplicate_rate"`
	SimilarDuplicateRate float64 `json:"similar_duplicate_rate"`
	PhraseReuseRate      float64 `json:"phrase_reuse_rate"`
	DaysSinceTraining    int     `json:"days_since_training"`
	TotalPostsAnalyzed   int     `json:"total_posts_analyzed"`
}

// FreshnessAlertDTO 单条报警
type FreshnessAlertDTO struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// FreshnessDTO 一次新鲜度检查结果
type FreshnessDTO struct {
	ContentType      string              `json:"content_type"`
	IsFresh          bool                `json:"is_fresh"`
	InsufficientData bool                `json:"insufficient_data"`
	FreshnessScore   float64             `json:"freshness_score"`
	Alerts           []FreshnessAlertDTO `json:"alerts"`
	Stats            FreshnessStatsDTO   `json:"stats"`
	Recommendations  []string            `json:"recommendations"`
}

// AlertRecordDTO 一次已触发的报警记录
type AlertRecordDTO struct {
	Timestamp      string              `json:"timestamp"`
	ContentType    string              `json:"content_type"`
	Alerts         []FreshnessAlertDTO `json:"alerts"`
	FreshnessScore float64             `json:"freshness_score"`
}

// MonitorStatusDTO 单个类型的监控状态
type MonitorStatusDTO struct {
	ContentType   string  `json:"content_type"`
	Name          string  `json:"name"`
	Enabled       bool    `json:"enabled"`
	CheckInterval int     `json:"check_interval"`
	PostCount     int     `json:"post_count"`
	SinceCheck    int64   `json:"since_check"`
	LastScore     float64 `json:"last_score"`
}

// DashboardDTO 全类型总览
type DashboardDTO struct {
	Monitors []MonitorStatusDTO `json:"monitors"`
	// WorstType 得分最低的类型，没有数据时为空
	WorstType  string  `json:"worst_type,omitempty"`
	WorstScore float64 `json:"worst_score,omitempty"`
}
