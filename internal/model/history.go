package model

import "time"

// GeneratedPost 已生成内容的历史记录（追加后不可变）
type GeneratedPost struct {
	ID          int64             `json:"id"`
	Text        string            `json:"text"`
	ContentType string            `json:"content_type"`
	Timestamp   time.Time         `json:"timestamp"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// TrainingUpdate 训练数据更新记录
// Date 存 RFC3339 或 2006-01-02 格式的字符串，与历史文件一致
type TrainingUpdate struct {
	Type         string `json:"type"`
	SamplesAdded int    `json:"samples_added"`
	Date         string `json:"date"`
	Notes        string `json:"notes,omitempty"`
}

// AlertItem 单条新鲜度问题
type AlertItem struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// AlertRecord 一次检查产生的报警快照
type AlertRecord struct {
	Timestamp      time.Time   `json:"timestamp"`
	ContentType    string      `json:"content_type"`
	Alerts         []AlertItem `json:"alerts"`
	FreshnessScore float64     `json:"freshness_score"`
}
