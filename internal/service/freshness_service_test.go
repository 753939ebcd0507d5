package service

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/api/dto"
	"ContentStudio/internal/pkg/alert"
	"ContentStudio/internal/pkg/history"
	"context"
	"sync"
	"testing"
)

func newTestService(t *testing.T) FreshnessService {
	t.Helper()

	store, err := history.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.FreshnessConfig{
		Window:              50,
		MinSamples:          10,
		SimilarityThreshold: 0.8,
		Thresholds: config.ThresholdConfig{
			ExactDuplicateRate:   0.10,
			SimilarDuplicateRate: 0.25,
			PhraseReuseRate:      0.40,
			DaysSinceTraining:    30,
			StalenessScore:       0.50,
		},
		Weights: config.WeightConfig{
			ExactDuplicate:    0.4,
			SimilarDuplicate:  0.3,
			PhraseReuse:       0.2,
			TrainingStaleness: 0.1,
		},
		Types: []config.FreshnessTypeConfig{
			{Type: "gm", Name: "GM帖子", Enabled: true, CheckInterval: 5,
				Severity: config.SeverityConfig{High: 0.35, Medium: 0.50, Low: 0.70}},
			{Type: "reply", Name: "回复", Enabled: false, CheckInterval: 30,
				Severity: config.SeverityConfig{High: 0.30, Medium: 0.45, Low: 0.65}},
		},
	}

	return NewFreshnessService(store, alert.NewDispatcher(), cfg)
}

func TestRecordPostIntervalGating(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// 前 4 条不触发检查，第 5 条触发
	for i := 0; i < 4; i++ {
		res, err := s.RecordPost(ctx, &dto.RecordPostReq{Text: "gm", ContentType: "gm"})
		if err != nil {
			t.Fatal(err)
		}
		if res.Checked {
			t.Fatalf("第 %d 条不应触发检查", i+1)
		}
	}

	res, err := s.RecordPost(ctx, &dto.RecordPostReq{Text: "gm", ContentType: "gm"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Checked {
		t.Fatal("第 5 条应触发检查")
	}
	// 样本不足时报告应标记 insufficient_data
	if res.Report == nil || !res.Report.InsufficientData {
		t.Fatalf("样本不足未标记: %+v", res.Report)
	}
}

func TestRecordPostDisabledType(t *testing.T) {
	s := newTestService(t)
	_, err := s.RecordPost(context.Background(), &dto.RecordPostReq{Text: "x", ContentType: "reply"})
	if err != ErrMonitorDisabled {
		t.Fatalf("err = %v", err)
	}

	if err := s.SetEnabled(context.Background(), "reply", true); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RecordPost(context.Background(), &dto.RecordPostReq{Text: "x", ContentType: "reply"}); err != nil {
		t.Fatalf("启用后仍失败: %v", err)
	}
}

func TestRecordPostUnknownType(t *testing.T) {
	s := newTestService(t)
	_, err := s.RecordPost(context.Background(), &dto.RecordPostReq{Text: "x", ContentType: "spam"})
	if err != ErrContentTypeInvalid {
		t.Fatalf("err = %v", err)
	}
	// main 在内容类型枚举里，但没有监控配置
	_, err = s.RecordPost(context.Background(), &dto.RecordPostReq{Text: "x", ContentType: "main"})
	if err != ErrContentTypeInvalid {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckProducesAlerts(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// 写入 12 条完全相同的内容，超过最小样本数
	for i := 0; i < 12; i++ {
		if _, err := s.RecordPost(ctx, &dto.RecordPostReq{Text: "gm from the trenches", ContentType: "gm"}); err != nil {
			t.Fatal(err)
		}
	}

	report, err := s.Check(ctx, "gm")
	if err != nil {
		t.Fatal(err)
	}
	if report.IsFresh {
		t.Fatal("全重复内容不应判新鲜")
	}
	if len(report.Alerts) == 0 {
		t.Fatal("应产生报警")
	}

	// 报警应落到历史，可按类型查回
	records, err := s.Alerts(ctx, "gm", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) == 0 {
		t.Fatal("报警记录未落历史")
	}
	if records[len(records)-1].FreshnessScore >= 0.5 {
		t.Fatalf("报警得分 = %v", records[len(records)-1].FreshnessScore)
	}
}

func TestDashboardAndStatuses(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	statuses, err := s.AllStatuses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 2 {
		t.Fatalf("监控数量 = %d", len(statuses))
	}

	for i := 0; i < 12; i++ {
		if _, err := s.RecordPost(ctx, &dto.RecordPostReq{Text: "gm from the trenches", ContentType: "gm"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Check(ctx, "gm"); err != nil {
		t.Fatal(err)
	}

	d, err := s.Dashboard(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if d.WorstType != "gm" {
		t.Fatalf("WorstType = %s", d.WorstType)
	}
	if d.WorstScore >= 0.5 {
		t.Fatalf("WorstScore = %v", d.WorstScore)
	}
}

func TestRecordTraining(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	if err := s.RecordTraining(ctx, &dto.RecordTrainingReq{
		ContentType:  "gm",
		Type:         "incremental",
		SamplesAdded: 50,
	}); err != nil {
		t.Fatal(err)
	}

	// 训练后陈旧度应归零
	for i := 0; i < 12; i++ {
		if _, err := s.RecordPost(ctx, &dto.RecordPostReq{Text: "gm", ContentType: "gm"}); err != nil {
			t.Fatal(err)
		}
	}
	report, err := s.Check(ctx, "gm")
	if err != nil {
		t.Fatal(err)
	}
	if report.Stats.DaysSinceTraining != 0 {
		t.Fatalf("训练天数 = %d", report.Stats.DaysSinceTraining)
	}
}

func TestSetEnabledConcurrent(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// 写入与启停并发执行，-race 下不应有数据竞争
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, _ = s.RecordPost(ctx, &dto.RecordPostReq{Text: "gm", ContentType: "gm"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = s.SetEnabled(ctx, "gm", i%2 == 0)
		}
	}()
	wg.Wait()

	if err := s.SetEnabled(ctx, "gm", true); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RecordPost(ctx, &dto.RecordPostReq{Text: "gm", ContentType: "gm"}); err != nil {
		t.Fatalf("启用后写入失败: %v", err)
	}
}

func TestSweep(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := s.RecordPost(ctx, &dto.RecordPostReq{Text: "gm from the trenches", ContentType: "gm"}); err != nil {
			t.Fatal(err)
		}
	}

	if alerted := s.Sweep(ctx); alerted != 1 {
		t.Fatalf("触发报警的类型数 = %d, 期望 1", alerted)
	}
}
