package wire

import (
	"ContentStudio/internal/api"
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/api/handler"
	"ContentStudio/internal/job"
	"ContentStudio/internal/pkg/alert"
	"ContentStudio/internal/pkg/compose"
	"ContentStudio/internal/pkg/cron"
	"ContentStudio/internal/pkg/history"
	"ContentStudio/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	CronMgr *cron.Manager
	Hub     *alert.Hub
}

func BuildApplication(cfg *config.Config) (*ApplicationContainer, error) {
	// 历史存储
	store, err := history.NewStore(cfg.Freshness.HistoryDir)
	if err != nil {
		return nil, err
	}

	// 提醒渠道
	hub := alert.NewHub()
	dispatcher := alert.NewDispatcher()

	fileChannel, err := alert.NewFileChannel(cfg.Alert)
	if err != nil {
		return nil, err
	}
	dispatcher.Register(fileChannel)

	if cfg.Alert.Console {
		dispatcher.Register(&alert.ConsoleChannel{})
	}
	if cfg.Alert.LarkWebhookURL != "" {
		dispatcher.Register(alert.NewLarkChannel(cfg.Alert))
	}
	if cfg.Kafka.Enabled {
		kafkaChannel, err := alert.NewKafkaChannel(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		dispatcher.Register(kafkaChannel)
	}
	dispatcher.Register(hub)

	// 素材库与合成引擎
	var assetStore compose.AssetStore
	if cfg.MinIO.Enabled {
		assetStore = compose.NewObjectStore(cfg.MinIO)
	} else {
		assetStore = compose.NewDirStore(cfg.Compose)
	}
	composer := compose.NewComposer(assetStore, cfg.Compose)

	captioner, err := compose.NewCaptioner(cfg.Caption)
	if err != nil {
		// 没有字体时仍可出无字梗图
		log.Warn("字体加载失败，文字功能不可用", "err", err)
		captioner = nil
	}

	// 服务
	freshnessService := service.NewFreshnessService(store, dispatcher, cfg.Freshness)
	memeService := service.NewMemeService(composer, captioner)
	generateService := service.NewGenerateService(freshnessService)

	handlers := &api.HandlersGroup{
		FreshnessHandler: handler.NewFreshnessHandler(freshnessService),
		MemeHandler:      handler.NewMemeHandler(memeService),
		GenerateHandler:  handler.NewGenerateHandler(generateService),
		WsHandler:        handler.NewWsHandler(hub),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewFreshnessSweepJob(freshnessService))

	return &ApplicationContainer{
		Router:  router,
		CronMgr: cronMgr,
		Hub:     hub,
	}, nil
}
