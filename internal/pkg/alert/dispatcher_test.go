package alert

import (
	"ContentStudio/internal/model"
	"ContentStudio/internal/pkg/freshness"
	"context"
	"errors"
	"testing"
)

type stubChannel struct {
	name string
	fail bool
	got  []*Alert
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) Send(_ context.Context, a *Alert) error {
	if s.fail {
		return errors.New("boom")
	}
	s.got = append(s.got, a)
	return nil
}

func TestDispatchBestEffort(t *testing.T) {
	ok1 := &stubChannel{name: "ok1"}
	bad := &stubChannel{name: "bad", fail: true}
	ok2 := &stubChannel{name: "ok2"}

	d := NewDispatcher(ok1, bad, ok2)
	a := &Alert{Type: "content_freshness_low", Severity: "HIGH", Message: "test"}

	if sent := d.Dispatch(context.Background(), a); sent != 2 {
		t.Fatalf("成功渠道数 = %d, 期望 2", sent)
	}
	if len(ok1.got) != 1 || len(ok2.got) != 1 {
		t.Fatal("正常渠道未收到提醒")
	}
}

func TestSeverityForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.20, "HIGH"},
		{0.34, "HIGH"},
		{0.35, "MEDIUM"},
		{0.49, "MEDIUM"},
		{0.50, "LOW"},
		{0.90, "LOW"},
	}
	for _, c := range cases {
		if got := SeverityForScore(c.score, 0.35, 0.50); got != c.want {
			t.Errorf("SeverityForScore(%v) = %s, 期望 %s", c.score, got, c.want)
		}
	}
}

func TestBuildFreshnessAlert(t *testing.T) {
	report := &freshness.Report{
		ContentType:    model.ContentTypeGM,
		FreshnessScore: 0.42,
		Alerts: []model.AlertItem{
			{Severity: "HIGH", Kind: "exact_duplicate", Message: "完全重复率过高"},
		},
		Stats: freshness.Stats{
			ExactDuplicateRate: 0.15,
			DaysSinceTraining:  35,
		},
		Recommendations: []string{"立即添加新的训练样本", "r2", "r3", "r4"},
	}

	a := BuildFreshnessAlert(report, 0.35, 0.50)
	if a.Severity != "MEDIUM" {
		t.Fatalf("severity = %s", a.Severity)
	}
	if a.Type != "content_freshness_low" {
		t.Fatalf("type = %s", a.Type)
	}
	if a.Details["content_type"] != "gm" {
		t.Fatalf("details = %v", a.Details)
	}
	if a.Details["days_since_training"] != "35" {
		t.Fatalf("details = %v", a.Details)
	}
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	if h.ClientCount() != 1 {
		t.Fatal("订阅后连接数应为 1")
	}

	if err := h.Send(context.Background(), &Alert{Type: "t", Message: "m"}); err != nil {
		t.Fatal(err)
	}

	select {
	case data := <-ch:
		if len(data) == 0 {
			t.Fatal("广播数据为空")
		}
	default:
		t.Fatal("客户端未收到广播")
	}

	cancel()
	if h.ClientCount() != 0 {
		t.Fatal("注销后连接数应为 0")
	}
}
