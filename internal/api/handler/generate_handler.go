package handler

import (
	"ContentStudio/internal/api/dto"
	"ContentStudio/internal/pkg/response"
	"ContentStudio/internal/service"

	"github.com/gin-gonic/gin"
)

type GenerateHandler struct {
	generateService service.GenerateService
}

func NewGenerateHandler(s service.GenerateService) *GenerateHandler {
	return &GenerateHandler{generateService: s}
}

// Generate 生成一条文案并自动记录
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req dto.GenerateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := h.generateService.Generate(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
