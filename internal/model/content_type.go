package model

// ContentType 内容类型（封闭枚举，禁止随意扩散字符串）
type ContentType string

const (
	ContentTypeGM     ContentType = "gm"
	ContentTypeMain   ContentType = "main"
	ContentTypeCasual ContentType = "casual"
	ContentTypeReply  ContentType = "reply"
)

// AllContentTypes 所有支持的内容类型（固定顺序，用于状态展示）
func AllContentTypes() []ContentType {
	return []ContentType{ContentTypeGM, ContentTypeMain, ContentTypeCasual, ContentTypeReply}
}

// ParseContentType 解析内容类型，未知类型返回 false
func ParseContentType(s string) (ContentType, bool) {
	switch ContentType(s) {
	case ContentTypeGM, ContentTypeMain, ContentTypeCasual, ContentTypeReply:
		return ContentType(s), true
	}
	return "", false
}

func (t ContentType) String() string {
	return string(t)
}
