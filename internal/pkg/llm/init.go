package llm

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/model"
	log "log/slog"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var llmClient llms.Model

// prompts 各内容类型的系统提示词
var prompts = map[model.ContentType]string{}

func InitLLM() error {
	cfg := config.Cfg.LLM

	llm, err := openai.New(
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)

	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return err
	}

	llmClient = llm

	// 从prompt txt文件中读取prompt
	prompts[model.ContentTypeGM] = readPrompt(cfg.PromptsPath.GM)
	prompts[model.ContentTypeMain] = readPrompt(cfg.PromptsPath.Main)
	prompts[model.ContentTypeCasual] = readPrompt(cfg.PromptsPath.Casual)
	prompts[model.ContentTypeReply] = readPrompt(cfg.PromptsPath.Reply)

	return nil
}

func readPrompt(file string) string {
	data, err := os.ReadFile(file)
	if err != nil {
		log.Error("读取prompt文件失败", "file", file, "err", err)
		return ""
	}
	return string(data)
}
