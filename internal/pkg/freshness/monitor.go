package freshness

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/model"
	"fmt"
	"strings"
	"time"
)

// Stats 一次检查的各项指标
type Stats struct {
	ExactDuplicateRate   float64 `json:"exact_duplicate_rate"`
	SimilarDuplicateRate float64 `json:"similar_duplicate_rate"`
	PhraseReuseRate      float64 `json:"phrase_reuse_rate"`
	DaysSinceTraining    int     `json:"days_since_training"`
	TotalPostsAnalyzed   int     `json:"total_posts_analyzed"`
}

// Report 一次新鲜度检查的完整结论
type Report struct {
	ContentType      model.ContentType `json:"content_type"`
	IsFresh          bool              `json:"is_fresh"`
	InsufficientData bool              `json:"insufficient_data"`
	FreshnessScore   float64           `json:"freshness_score"`
	Alerts           []model.AlertItem `json:"alerts"`
	Stats            Stats             `json:"stats"`
	Recommendations  []string          `json:"recommendations"`
}

// historyReader Monitor 需要的历史查询能力
type historyReader interface {
	RecentPosts(ct model.ContentType, n int) []model.GeneratedPost
	LastTraining(ct model.ContentType) *model.TrainingUpdate
}

// Monitor 单一内容类型的新鲜度监控器
type Monitor struct {
	contentType model.ContentType
	store       historyReader
	cfg         config.FreshnessConfig
	now         func() time.Time
}

func NewMonitor(ct model.ContentType, store historyReader, cfg config.FreshnessConfig) *Monitor {
	return &Monitor{
		contentType: ct,
		store:       store,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Check 对最近窗口内的内容做一次新鲜度检查
func (m *Monitor) Check() *Report {
	posts := m.store.RecentPosts(m.contentType, m.cfg.Window)

	if len(posts) < m.cfg.MinSamples {
		return &Report{
			ContentType:      m.contentType,
			IsFresh:          true,
			InsufficientData: true,
			FreshnessScore:   1,
		}
	}

	exact := ExactDuplicates(posts)
	similar := SimilarDuplicates(posts, m.cfg.SimilarityThreshold)
	phrase := PhraseReuse(posts, m.cfg.StopPhrases)
	stale := TrainingStaleness(m.store.LastTraining(m.contentType), m.now())

	score := Score(exact, similar, phrase, stale, m.cfg.Thresholds, m.cfg.Weights)

	th := m.cfg.Thresholds
	var alerts []model.AlertItem
	var recommendations []string

	if exact.Rate > th.ExactDuplicateRate {
		alerts = append(alerts, model.AlertItem{
			Severity: "HIGH",
			Kind:     "exact_duplicate",
			Message:  fmt.Sprintf("完全重复率过高: %.1f%% (阈值: %.0f%%)", exact.Rate*100, th.ExactDuplicateRate*100),
		})
		recommendations = append(recommendations, "立即添加新的训练样本，避免生成重复内容")
	}

	if similar.Rate > th.SimilarDuplicateRate {
		alerts = append(alerts, model.AlertItem{
			Severity: "MEDIUM",
			Kind:     "similar_duplicate",
			Message:  fmt.Sprintf("相似重复率过高: %.1f%% (阈值: %.0f%%)", similar.Rate*100, th.SimilarDuplicateRate*100),
		})
		recommendations = append(recommendations, "内容开始套路化，建议丰富词汇库和表达方式")
	}

	if phrase.Rate > th.PhraseReuseRate {
		alerts = append(alerts, model.AlertItem{
			Severity: "MEDIUM",
			Kind:     "phrase_reuse",
			Message:  fmt.Sprintf("短语重复率过高: %.1f%% (阈值: %.0f%%)", phrase.Rate*100, th.PhraseReuseRate*100),
		})
		if len(phrase.TopPhrases) > 0 {
			n := len(phrase.TopPhrases)
			if n > 5 {
				n = 5
			}
			recommendations = append(recommendations, "高频短语: "+strings.Join(phrase.TopPhrases[:n], ", "))
		}
	}

	if stale.DaysSinceTraining > th.DaysSinceTraining {
		alerts = append(alerts, model.AlertItem{
			Severity: "LOW",
			Kind:     "training_staleness",
			Message:  fmt.Sprintf("距离上次训练已过 %d 天", stale.DaysSinceTraining),
		})
		recommendations = append(recommendations, "定期补充新素材可以保持内容新鲜度")
	}

	if score < th.StalenessScore {
		alerts = append(alerts, model.AlertItem{
			Severity: "HIGH",
			Kind:     "content_staleness",
			Message:  fmt.Sprintf("内容新鲜度过低: %.2f (阈值: %.2f)", score, th.StalenessScore),
		})
		recommendations = append(recommendations, "紧急：需要立即补充新训练素材！")
	}

	return &Report{
		ContentType:    m.contentType,
		IsFresh:        score >= th.StalenessScore && len(alerts) == 0,
		FreshnessScore: score,
		Alerts:         alerts,
		Stats: Stats{
			ExactDuplicateRate:   exact.Rate,
			SimilarDuplicateRate: similar.Rate,
			PhraseReuseRate:      phrase.Rate,
			DaysSinceTraining:    stale.DaysSinceTraining,
			TotalPostsAnalyzed:   len(posts),
		},
		Recommendations: recommendations,
	}
}

// ReportText 生成适合直接推送的文字版报告
func (r *Report) ReportText() string {
	upper := strings.ToUpper(string(r.ContentType))

	if r.InsufficientData {
		return fmt.Sprintf("%s 样本不足，暂不评估新鲜度", upper)
	}
	if r.IsFresh {
		return fmt.Sprintf("%s 内容新鲜度良好 (得分: %.2f)", upper, r.FreshnessScore)
	}

	lines := []string{
		fmt.Sprintf("%s 内容新鲜度报告", upper),
		fmt.Sprintf("得分: %.2f / 1.00", r.FreshnessScore),
		"",
		"问题：",
	}
	for _, a := range r.Alerts {
		lines = append(lines, fmt.Sprintf("[%s] %s", a.Severity, a.Message))
	}

	if len(r.Recommendations) > 0 {
		lines = append(lines, "", "建议：")
		for _, rec := range r.Recommendations {
			lines = append(lines, "  - "+rec)
		}
	}

	lines = append(lines, "", "统计：")
	lines = append(lines,
		fmt.Sprintf("  - 完全重复率: %.1f%%", r.Stats.ExactDuplicateRate*100),
		fmt.Sprintf("  - 相似重复率: %.1f%%", r.Stats.SimilarDuplicateRate*100),
		fmt.Sprintf("  - 短语重复率: %.1f%%", r.Stats.PhraseReuseRate*100),
		fmt.Sprintf("  - 距上次训练: %d 天", r.Stats.DaysSinceTraining),
	)

	return strings.Join(lines, "\n")
}
