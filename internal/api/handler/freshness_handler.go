package handler

import (
	"ContentStudio/internal/api/dto"
	"ContentStudio/internal/pkg/response"
	"ContentStudio/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FreshnessHandler struct {
	freshnessService service.FreshnessService
}

func NewFreshnessHandler(s service.FreshnessService) *FreshnessHandler {
	return &FreshnessHandler{freshnessService: s}
}

// RecordPost 记录一条生成文案
func (h *FreshnessHandler) RecordPost(c *gin.Context) {
	var req dto.RecordPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := h.freshnessService.RecordPost(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// RecordTraining 记录一次训练数据更新
func (h *FreshnessHandler) RecordTraining(c *gin.Context) {
	var req dto.RecordTrainingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.freshnessService.RecordTraining(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Check 立即检查指定类型的新鲜度
func (h *FreshnessHandler) Check(c *gin.Context) {
	report, err := h.freshnessService.Check(c.Request.Context(), c.Param("content_type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

// Statuses 各类型监控状态
func (h *FreshnessHandler) Statuses(c *gin.Context) {
	statuses, err := h.freshnessService.AllStatuses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, statuses)
}

// Dashboard 总览
func (h *FreshnessHandler) Dashboard(c *gin.Context) {
	d, err := h.freshnessService.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, d)
}

// Alerts 某类型最近的报警记录
func (h *FreshnessHandler) Alerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	records, err := h.freshnessService.Alerts(c.Request.Context(), c.Param("content_type"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, records)
}

// Enable 启用某类型监控
func (h *FreshnessHandler) Enable(c *gin.Context) {
	if err := h.freshnessService.SetEnabled(c.Request.Context(), c.Param("content_type"), true); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Disable 停用某类型监控
func (h *FreshnessHandler) Disable(c *gin.Context) {
	if err := h.freshnessService.SetEnabled(c.Request.Context(), c.Param("content_type"), false); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
