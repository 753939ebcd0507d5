package api

import "ContentStudio/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	FreshnessHandler *handler.FreshnessHandler
	MemeHandler      *handler.MemeHandler
	GenerateHandler  *handler.GenerateHandler
	WsHandler        *handler.WsHandler
}
