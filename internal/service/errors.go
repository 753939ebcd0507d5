package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrContentTypeInvalid  = errors.New("内容类型不存在")
	ErrMonitorDisabled     = errors.New("该类型监控已停用")
	ErrInsufficientData    = errors.New("样本数量不足")
	ErrCategoryUnknown     = errors.New("未知图层类别")
	ErrBaseNotFound        = errors.New("底图不存在")
	ErrLayerNotFound       = errors.New("图层素材不存在")
	ErrTemplateNotFound    = errors.New("梗图模板不存在")
	ErrCaptionFontMissing  = errors.New("字体文件缺失")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	ErrGenerateUnavailable = errors.New("文案生成服务不可用")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrContentTypeInvalid:  BadRequest,
	ErrMonitorDisabled:     BadRequest,
	ErrInsufficientData:    BadRequest,
	ErrCategoryUnknown:     BadRequest,
	ErrBaseNotFound:        NotFound,
	ErrLayerNotFound:       NotFound,
	ErrTemplateNotFound:    NotFound,
	ErrCaptionFontMissing:  InternalServerError,
	ErrFileNotSupported:    BadRequest,
	ErrGenerateUnavailable: InternalServerError,
	UnExpectedError:        InternalServerError,
}
