package alert

import (
	"ContentStudio/internal/pkg/consts"
	"ContentStudio/internal/pkg/freshness"
	"fmt"
	"strings"
	"time"
)

// Alert 一条待分发的提醒
type Alert struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      string            `json:"type"`
	Severity  string            `json:"severity"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
}

// SeverityForScore 按得分划定严重程度
func SeverityForScore(score, high, medium float64) string {
	switch {
	case score < high:
		return consts.SeverityHigh
	case score < medium:
		return consts.SeverityMedium
	default:
		return consts.SeverityLow
	}
}

// BuildFreshnessAlert 根据新鲜度报告构建提醒消息
func BuildFreshnessAlert(report *freshness.Report, high, medium float64) *Alert {
	upper := strings.ToUpper(string(report.ContentType))

	lines := []string{
		fmt.Sprintf("**%s 内容新鲜度报告**", upper),
		fmt.Sprintf("得分: **%.2f / 1.00**", report.FreshnessScore),
		"",
	}

	if len(report.Alerts) > 0 {
		lines = append(lines, "**检测到的问题**:")
		for _, a := range report.Alerts {
			lines = append(lines, "  - "+a.Message)
		}
		lines = append(lines, "")
	}

	if len(report.Recommendations) > 0 {
		lines = append(lines, "**建议行动**:")
		for i, rec := range report.Recommendations {
			if i >= 3 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, rec))
		}
	}

	return &Alert{
		Timestamp: time.Now(),
		Type:      "content_freshness_low",
		Severity:  SeverityForScore(report.FreshnessScore, high, medium),
		Message:   strings.Join(lines, "\n"),
		Details: map[string]string{
			"content_type":           string(report.ContentType),
			"freshness_score":        fmt.Sprintf("%.2f", report.FreshnessScore),
			"exact_duplicate_rate":   fmt.Sprintf("%.1f%%", report.Stats.ExactDuplicateRate*100),
			"similar_duplicate_rate": fmt.Sprintf("%.1f%%", report.Stats.SimilarDuplicateRate*100),
			"phrase_reuse_rate":      fmt.Sprintf("%.1f%%", report.Stats.PhraseReuseRate*100),
			"days_since_training":    fmt.Sprintf("%d", report.Stats.DaysSinceTraining),
		},
	}
}
