package freshness

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/model"
	"math"
	"testing"
	"time"
)

func mkPosts(texts ...string) []model.GeneratedPost {
	posts := make([]model.GeneratedPost, len(texts))
	for i, t := range texts {
		posts[i] = model.GeneratedPost{ID: int64(i + 1), Text: t, ContentType: "gm"}
	}
	return posts
}

func TestRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"gm", "gm", 1},
		{"", "gm", 0},
		{"abcd", "wxyz", 0},
	}
	for _, c := range cases {
		if got := Ratio(c.a, c.b); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, 期望 %v", c.a, c.b, got, c.want)
		}
	}

	// 近似文本应显著高于不相关文本
	if Ratio("gm from the trenches", "gm from the trenches!") < 0.9 {
		t.Error("近似文本相似度过低")
	}
	if Ratio("gm from the trenches", "completely different words") > 0.5 {
		t.Error("不相关文本相似度过高")
	}
}

func TestExactDuplicates(t *testing.T) {
	// 5 条里 "gm" 出现 3 次：多出 2 条，比率 2/5
	stat := ExactDuplicates(mkPosts("gm", "GM ", "gm", "wagmi", "builders"))
	if math.Abs(stat.Rate-0.4) > 1e-9 {
		t.Fatalf("完全重复率 = %v, 期望 0.4", stat.Rate)
	}
	if stat.Count != 1 {
		t.Fatalf("重复组数 = %d, 期望 1", stat.Count)
	}

	// 4 条全相同：多出 3 条，比率 3/4
	stat = ExactDuplicates(mkPosts("gm", "gm", "gm", "gm"))
	if math.Abs(stat.Rate-0.75) > 1e-9 {
		t.Fatalf("完全重复率 = %v, 期望 0.75", stat.Rate)
	}

	if stat := ExactDuplicates(nil); stat.Rate != 0 {
		t.Fatal("空输入应返回零值")
	}
}

func TestSimilarDuplicates(t *testing.T) {
	// 完全相同的两条构成 1 对，比率 1/3
	stat := SimilarDuplicates(mkPosts("gm from the trenches", "gm from the trenches", "something else entirely"), 0.8)
	if stat.Count != 1 {
		t.Fatalf("相似对数 = %d, 期望 1", stat.Count)
	}
	if math.Abs(stat.Rate-1.0/3.0) > 1e-9 {
		t.Fatalf("相似率 = %v, 期望 1/3", stat.Rate)
	}
}

func TestPhraseReuse(t *testing.T) {
	// "from the mines" 及其子短语各出现 3 次
	posts := mkPosts(
		"gm from the mines",
		"hello from the mines",
		"greetings from the mines",
	)
	stat := PhraseReuse(posts, nil)
	if stat.Count == 0 {
		t.Fatal("应检出高频短语")
	}
	found := false
	for _, p := range stat.TopPhrases {
		if p == "from the mines" {
			found = true
		}
	}
	if !found {
		t.Fatalf("TopPhrases 缺少目标短语: %v", stat.TopPhrases)
	}

	// 停用短语不参与统计
	stat2 := PhraseReuse(posts, []string{"from the", "the mines", "from the mines"})
	for _, p := range stat2.TopPhrases {
		if p == "from the mines" {
			t.Fatal("停用短语仍被统计")
		}
	}
}

func TestTrainingStaleness(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	if got := TrainingStaleness(nil, now); got.DaysSinceTraining != 999 {
		t.Fatalf("从未训练应返回哨兵值, 实际 %d", got.DaysSinceTraining)
	}

	last := &model.TrainingUpdate{Date: "2026-08-22"}
	if got := TrainingStaleness(last, now); got.DaysSinceTraining != 10 {
		t.Fatalf("天数 = %d, 期望 10", got.DaysSinceTraining)
	}

	rfc := &model.TrainingUpdate{Date: now.Add(-48 * time.Hour).Format(time.RFC3339)}
	if got := TrainingStaleness(rfc, now); got.DaysSinceTraining != 2 {
		t.Fatalf("RFC3339 天数 = %d, 期望 2", got.DaysSinceTraining)
	}
}

func testThresholds() config.ThresholdConfig {
	return config.ThresholdConfig{
		ExactDuplicateRate:   0.10,
		SimilarDuplicateRate: 0.25,
		PhraseReuseRate:      0.40,
		DaysSinceTraining:    30,
		StalenessScore:       0.50,
	}
}

func testWeights() config.WeightConfig {
	return config.WeightConfig{
		ExactDuplicate:    0.4,
		SimilarDuplicate:  0.3,
		PhraseReuse:       0.2,
		TrainingStaleness: 0.1,
	}
}

func TestScoreBounds(t *testing.T) {
	th, w := testThresholds(), testWeights()

	// 全零指标加上刚训练完，应得满分
	perfect := Score(DuplicateStat{}, DuplicateStat{}, PhraseStat{}, StalenessStat{DaysSinceTraining: 0}, th, w)
	if math.Abs(perfect-1.0) > 1e-9 {
		t.Fatalf("满分场景得分 = %v", perfect)
	}

	// 全部指标远超阈值，各子项好度归零
	worst := Score(
		DuplicateStat{Rate: 1},
		DuplicateStat{Rate: 1},
		PhraseStat{Rate: 1},
		StalenessStat{DaysSinceTraining: 999},
		th, w,
	)
	if worst != 0 {
		t.Fatalf("最差场景得分 = %v, 期望 0", worst)
	}
}
