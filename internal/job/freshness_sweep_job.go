package job

import (
	"ContentStudio/internal/pkg/consts"
	"ContentStudio/internal/pkg/redis"
	"ContentStudio/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// FreshnessSweepJob 每日对全部启用类型强制检查一轮
// 多实例部署时用 redis 锁保证只跑一份
type FreshnessSweepJob struct {
	freshnessService service.FreshnessService
}

func NewFreshnessSweepJob(s service.FreshnessService) *FreshnessSweepJob {
	return &FreshnessSweepJob{freshnessService: s}
}

func (s *FreshnessSweepJob) Run() {
	ctx := context.Background()
	log.Info("start freshness sweep job")

	lockValue := uuid.NewString()
	if redis.Rdb != nil {
		ok, err := redis.TryLock(ctx, consts.SweepLockKey, lockValue, 10*time.Minute, 1)
		if err != nil {
			log.Error("freshness sweep lock error", "err", err)
			return
		}
		if !ok {
			log.Info("freshness sweep already running elsewhere, skip")
			return
		}
		defer redis.UnLock(ctx, consts.SweepLockKey, lockValue)
	}

	alerted := s.freshnessService.Sweep(ctx)
	log.Info("freshness sweep job finished", "alerted_types", alerted)
}
