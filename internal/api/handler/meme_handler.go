package handler

import (
	"ContentStudio/internal/api/dto"
	"ContentStudio/internal/pkg/response"
	"ContentStudio/internal/service"

	"github.com/gin-gonic/gin"
)

type MemeHandler struct {
	memeService service.MemeService
}

func NewMemeHandler(s service.MemeService) *MemeHandler {
	return &MemeHandler{memeService: s}
}

// Generate 合成一张梗图
func (h *MemeHandler) Generate(c *gin.Context) {
	var req dto.MemeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := h.memeService.Generate(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Layers 可用图层列表
func (h *MemeHandler) Layers(c *gin.Context) {
	res, err := h.memeService.Layers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Templates 预设文字模板
func (h *MemeHandler) Templates(c *gin.Context) {
	res, err := h.memeService.Templates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
