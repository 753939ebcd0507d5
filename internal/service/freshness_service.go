package service

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/api/dto"
	"ContentStudio/internal/model"
	"ContentStudio/internal/pkg/alert"
	"ContentStudio/internal/pkg/consts"
	"ContentStudio/internal/pkg/freshness"
	"ContentStudio/internal/pkg/history"
	"ContentStudio/internal/pkg/redis"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/jinzhu/copier"
)

type FreshnessService interface {
	// RecordPost 记录一条生成文案，并按间隔触发周期检查
	RecordPost(ctx context.Context, req *dto.RecordPostReq) (*dto.RecordPostDTO, error)
	// RecordTraining 记录一次训练数据更新
	RecordTraining(ctx context.Context, req *dto.RecordTrainingReq) error
	// Check 立即执行一次检查并返回报告
	Check(ctx context.Context, contentType string) (*dto.FreshnessDTO, error)
	// Sweep 对全部启用类型强制检查一轮，返回触发报警的类型数
	Sweep(ctx context.Context) int
	// AllStatuses 各类型监控状态
	AllStatuses(ctx context.Context) ([]dto.MonitorStatusDTO, error)
	// Dashboard 总览
	Dashboard(ctx context.Context) (*dto.DashboardDTO, error)
	// Alerts 某类型最近触发过的报警记录
	Alerts(ctx context.Context, contentType string, limit int) ([]dto.AlertRecordDTO, error)
	// SetEnabled 启停某个类型的监控
	SetEnabled(ctx context.Context, contentType string, enabled bool) error
}

// typeState 单个内容类型的监控状态
type typeState struct {
	cfg       config.FreshnessTypeConfig
	monitor   *freshness.Monitor
	counter   int64
	lastScore float64
}

type freshnessServiceImpl struct {
	mu         sync.Mutex
	store      *history.Store
	dispatcher *alert.Dispatcher
	types      map[model.ContentType]*typeState
}

func NewFreshnessService(store *history.Store, dispatcher *alert.Dispatcher, cfg config.FreshnessConfig) FreshnessService {
	s := &freshnessServiceImpl{
		store:      store,
		dispatcher: dispatcher,
		types:      make(map[model.ContentType]*typeState),
	}

	for _, tc := range cfg.Types {
		ct, ok := model.ParseContentType(tc.Type)
		if !ok {
			log.Warn("忽略未知的监控类型配置", "type", tc.Type)
			continue
		}
		if tc.CheckInterval <= 0 {
			tc.CheckInterval = 20
		}
		s.types[ct] = &typeState{
			cfg:       tc,
			monitor:   freshness.NewMonitor(ct, store, cfg),
			counter:   int64(store.PostCount(ct)),
			lastScore: 1,
		}
	}
	return s
}

func (s *freshnessServiceImpl) state(contentType string) (model.ContentType, *typeState, error) {
	ct, ok := model.ParseContentType(contentType)
	if !ok {
		return "", nil, ErrContentTypeInvalid
	}
	st, ok := s.types[ct]
	if !ok {
		return "", nil, ErrContentTypeInvalid
	}
	return ct, st, nil
}

func (s *freshnessServiceImpl) RecordPost(ctx context.Context, req *dto.RecordPostReq) (*dto.RecordPostDTO, error) {
	ct, st, err := s.state(req.ContentType)
	if err != nil {
		return nil, err
	}
	if !s.isEnabled(st) {
		return nil, ErrMonitorDisabled
	}

	post, err := s.store.AppendPost(ct, req.Text, req.Metadata)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	st.counter++
	count := st.counter
	s.mu.Unlock()

	// 计数同步到 redis，多实例共享，失败不影响主流程
	if redis.Rdb != nil {
		if _, err := redis.Incr(ctx, consts.GenCounterKey+string(ct)); err != nil {
			log.WarnContext(ctx, "生成计数同步失败", "type", ct, "err", err)
		}
	}

	res := &dto.RecordPostDTO{
		ID:          post.ID,
		ContentType: string(ct),
		Timestamp:   post.Timestamp.Format(time.RFC3339),
	}

	// 每 N 条触发一次周期检查
	if count > 0 && count%int64(st.cfg.CheckInterval) == 0 {
		report := s.runCheck(ctx, ct, st)
		res.Checked = true
		res.Report = toFreshnessDTO(report)
	}
	return res, nil
}

func (s *freshnessServiceImpl) RecordTraining(ctx context.Context, req *dto.RecordTrainingReq) error {
	ct, _, err := s.state(req.ContentType)
	if err != nil {
		return err
	}
	return s.store.AppendTraining(ct, &model.TrainingUpdate{
		Type:         req.Type,
		SamplesAdded: req.SamplesAdded,
		Date:         time.Now().Format(time.RFC3339),
		Notes:        req.Notes,
	})
}

func (s *freshnessServiceImpl) Check(ctx context.Context, contentType string) (*dto.FreshnessDTO, error) {
	ct, st, err := s.state(contentType)
	if err != nil {
		return nil, err
	}
	if !s.isEnabled(st) {
		return nil, ErrMonitorDisabled
	}
	return toFreshnessDTO(s.runCheck(ctx, ct, st)), nil
}

// isEnabled 和 SetEnabled 同锁，避免并发读写
func (s *freshnessServiceImpl) isEnabled(st *typeState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return st.cfg.Enabled
}

// runCheck 执行检查，得分低于类型的报警线时分发提醒并落历史
func (s *freshnessServiceImpl) runCheck(ctx context.Context, ct model.ContentType, st *typeState) *freshness.Report {
	report := st.monitor.Check()

	s.mu.Lock()
	st.lastScore = report.FreshnessScore
	s.mu.Unlock()

	if report.InsufficientData {
		return report
	}

	if len(report.Alerts) > 0 {
		items := make([]model.AlertItem, len(report.Alerts))
		copy(items, report.Alerts)
		if err := s.store.AppendAlert(ct, &model.AlertRecord{
			Timestamp:      time.Now(),
			ContentType:    string(ct),
			Alerts:         items,
			FreshnessScore: report.FreshnessScore,
		}); err != nil {
			log.WarnContext(ctx, "报警记录写入失败", "type", ct, "err", err)
		}
	}

	sev := st.cfg.Severity
	if report.FreshnessScore < sev.Low && s.dispatcher != nil {
		a := alert.BuildFreshnessAlert(report, sev.High, sev.Medium)
		s.dispatcher.Dispatch(ctx, a)
	} else {
		log.InfoContext(ctx, "freshness check ok", "type", ct, "score", report.FreshnessScore)
	}
	return report
}

func (s *freshnessServiceImpl) Sweep(ctx context.Context) int {
	alerted := 0
	for _, ct := range model.AllContentTypes() {
		st, ok := s.types[ct]
		if !ok || !s.isEnabled(st) {
			continue
		}
		report := s.runCheck(ctx, ct, st)
		if !report.InsufficientData && report.FreshnessScore < st.cfg.Severity.Low {
			alerted++
		}
	}
	return alerted
}

func (s *freshnessServiceImpl) AllStatuses(_ context.Context) ([]dto.MonitorStatusDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []dto.MonitorStatusDTO
	for _, ct := range model.AllContentTypes() {
		st, ok := s.types[ct]
		if !ok {
			continue
		}
		interval := int64(st.cfg.CheckInterval)
		out = append(out, dto.MonitorStatusDTO{
			ContentType:   string(ct),
			Name:          st.cfg.Name,
			Enabled:       st.cfg.Enabled,
			CheckInterval: st.cfg.CheckInterval,
			PostCount:     s.store.PostCount(ct),
			SinceCheck:    st.counter % interval,
			LastScore:     st.lastScore,
		})
	}
	return out, nil
}

func (s *freshnessServiceImpl) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	statuses, err := s.AllStatuses(ctx)
	if err != nil {
		return nil, err
	}

	d := &dto.DashboardDTO{Monitors: statuses}
	worst := 2.0
	for _, m := range statuses {
		if m.Enabled && m.LastScore < worst {
			worst = m.LastScore
			d.WorstType = m.ContentType
			d.WorstScore = m.LastScore
		}
	}
	return d, nil
}

func (s *freshnessServiceImpl) Alerts(_ context.Context, contentType string, limit int) ([]dto.AlertRecordDTO, error) {
	ct, _, err := s.state(contentType)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	records := s.store.RecentAlerts(ct, limit)
	out := make([]dto.AlertRecordDTO, 0, len(records))
	for _, r := range records {
		d := dto.AlertRecordDTO{
			Timestamp:      r.Timestamp.Format(time.RFC3339),
			ContentType:    r.ContentType,
			FreshnessScore: r.FreshnessScore,
			Alerts:         []dto.FreshnessAlertDTO{},
		}
		_ = copier.Copy(&d.Alerts, r.Alerts)
		out = append(out, d)
	}
	return out, nil
}

func (s *freshnessServiceImpl) SetEnabled(_ context.Context, contentType string, enabled bool) error {
	_, st, err := s.state(contentType)
	if err != nil {
		return err
	}
	s.mu.Lock()
	st.cfg.Enabled = enabled
	s.mu.Unlock()
	return nil
}

func toFreshnessDTO(report *freshness.Report) *dto.FreshnessDTO {
	d := &dto.FreshnessDTO{}
	_ = copier.Copy(d, report)
	d.ContentType = string(report.ContentType)
	if d.Alerts == nil {
		d.Alerts = []dto.FreshnessAlertDTO{}
	}
	if d.Recommendations == nil {
		d.Recommendations = []string{}
	}
	return d
}
