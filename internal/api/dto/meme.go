package dto

// MemeReq 合成请求
type MemeReq struct {
	// BaseID 底图编号，空则随机
	BaseID *int `json:"base_id" binding:"omitempty,gte=0,lt=10000"`
	// Attributes 底图属性，重组模式需要
	Attributes map[string]string `json:"attributes"`
	// Layers 类别 -> 图层文件名列表
	Layers map[string][]string `json:"layers"`
	// RandomLayers 随机叠加的装饰图层数量，与 Layers 互斥
	RandomLayers int    `json:"random_layers" binding:"gte=0,lte=6"`
	TopText      string `json:"top_text"`
	BottomText   string `json:"bottom_text"`
	// Template 预设文字模板名，非空时覆盖 TopText/BottomText
	Template  string `json:"template"`
	FontStyle string `json:"font_style" binding:"omitempty,oneof=impact glow chinese"`
	AllCaps   *bool  `json:"all_caps"`
	Width     int    `json:"width" binding:"gte=0"`
	Height    int    `json:"height" binding:"gte=0"`
}

// SkippedLayerDTO 因素材缺失被跳过的图层
type SkippedLayerDTO struct {
	Category string `json:"category"`
	File     string `json:"file"`
}

// MemeDTO 合成结果
type MemeDTO struct {
	URL     string            `json:"url"`
	Mode    string            `json:"mode"`
	BaseID  int               `json:"base_id"`
	Cached  bool              `json:"cached"`
	Skipped []SkippedLayerDTO `json:"skipped,omitempty"`
}

// LayersDTO 可用图层列表
type LayersDTO struct {
	Categories map[string][]string `json:"categories"`
}

// TemplatesDTO 可用文字模板
type TemplatesDTO struct {
	Templates map[string][][2]string `json:"templates"`
}
