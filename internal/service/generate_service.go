package service

import (
	"ContentStudio/internal/api/dto"
	"ContentStudio/internal/model"
	"ContentStudio/internal/pkg/llm"
	"context"
	log "log/slog"
)

type GenerateService interface {
	// Generate 生成一条文案并记录到历史，触发周期性新鲜度检查
	Generate(ctx context.Context, req *dto.GenerateReq) (*dto.GenerateDTO, error)
}

type generateServiceImpl struct {
	freshnessService FreshnessService
}

func NewGenerateService(freshnessService FreshnessService) GenerateService {
	return &generateServiceImpl{freshnessService: freshnessService}
}

func (s *generateServiceImpl) Generate(ctx context.Context, req *dto.GenerateReq) (*dto.GenerateDTO, error) {
	ct, ok := model.ParseContentType(req.ContentType)
	if !ok {
		return nil, ErrContentTypeInvalid
	}

	text, err := llm.GenerateText(ctx, ct, req.Topic)
	if err != nil {
		log.ErrorContext(ctx, "文案生成失败", "type", ct, "err", err)
		return nil, ErrGenerateUnavailable
	}

	recorded, err := s.freshnessService.RecordPost(ctx, &dto.RecordPostReq{
		Text:        text,
		ContentType: string(ct),
		Metadata:    map[string]string{"source": "llm", "topic": req.Topic},
	})
	if err != nil {
		return nil, err
	}

	return &dto.GenerateDTO{
		ID:          recorded.ID,
		Text:        text,
		ContentType: string(ct),
		Checked:     recorded.Checked,
		Report:      recorded.Report,
	}, nil
}
