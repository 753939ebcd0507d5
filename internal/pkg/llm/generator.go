package llm

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/model"
	"context"
	log "log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
)

// GenerateText 为指定内容类型生成一条文案
func GenerateText(ctx context.Context, ct model.ContentType, topic string) (string, error) {
	if llmClient == nil {
		return "", errors.New("大模型客户端未初始化")
	}

	if err := TextSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer TextSem.Release(1)

	userPrompt := topic
	if userPrompt == "" {
		userPrompt = "生成一条新的内容"
	}

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(prompts[ct]),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	log.InfoContext(ctx, "正在请求AI大模型", "content_type", ct)
	resp, err := llmClient.GenerateContent(ctx, messages,
		llms.WithModel(config.Cfg.LLM.Model),
		llms.WithTemperature(config.Cfg.LLM.Temperature),
	)
	if err != nil {
		return "", errors.Wrap(err, "大模型请求失败")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("大模型返回为空")
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
