package dto

// GenerateReq 文案生成请求
type GenerateReq struct {
	ContentType string `json:"content_type" binding:"required"`
	Topic       string `json:"topic"`
}

// GenerateDTO 生成结果，附带写入历史后的周期检查结论
type GenerateDTO struct {
	ID          int64         `json:"id"`
	Text        string        `json:"text"`
	ContentType string        `json:"content_type"`
	Checked     bool          `json:"checked"`
	Report      *FreshnessDTO `json:"report,omitempty"`
}
