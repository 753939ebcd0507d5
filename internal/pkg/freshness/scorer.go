package freshness

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/model"
	"ContentStudio/internal/pkg/consts"
	"math"
	"sort"
	"strings"
	"time"
)

// DuplicateStat 重复检测结果
type DuplicateStat struct {
	Rate     float64  `json:"rate"`
	Count    int      `json:"count"`
	Examples []string `json:"examples,omitempty"`
}

// PhraseStat 短语复用检测结果
type PhraseStat struct {
	Rate       float64  `json:"rate"`
	Count      int      `json:"count"`
	TopPhrases []string `json:"top_phrases,omitempty"`
}

// StalenessStat 训练陈旧度检测结果
type StalenessStat struct {
	DaysSinceTraining int    `json:"days_since_training"`
	LastTrainingDate  string `json:"last_training_date,omitempty"`
}

// ExactDuplicates 完全重复率：重复条数（每组超出 1 的部分）除以总条数
func ExactDuplicates(posts []model.GeneratedPost) DuplicateStat {
	if len(posts) == 0 {
		return DuplicateStat{}
	}

	counter := make(map[string]int)
	var order []string
	for _, p := range posts {
		key := strings.ToLower(strings.TrimSpace(p.Text))
		if counter[key] == 0 {
			order = append(order, key)
		}
		counter[key]++
	}

	extra := 0
	dupCount := 0
	var examples []string
	for _, key := range order {
		if counter[key] > 1 {
			extra += counter[key] - 1
			dupCount++
			if len(examples) < 5 {
				examples = append(examples, key)
			}
		}
	}

	return DuplicateStat{
		Rate:     float64(extra) / float64(len(posts)),
		Count:    dupCount,
		Examples: examples,
	}
}

// SimilarDuplicates 相似重复率：相似度达标的两两组合数除以总条数
func SimilarDuplicates(posts []model.GeneratedPost, threshold float64) DuplicateStat {
	if len(posts) == 0 {
		return DuplicateStat{}
	}

	texts := make([]string, len(posts))
	for i, p := range posts {
		texts[i] = strings.ToLower(strings.TrimSpace(p.Text))
	}

	pairs := 0
	var examples []string
	for i := 0; i < len(texts); i++ {
		for j := i + 1; j < len(texts); j++ {
			if Ratio(texts[i], texts[j]) >= threshold {
				pairs++
				if len(examples) < 5 {
					examples = append(examples, texts[i]+" ~ "+texts[j])
				}
			}
		}
	}

	return DuplicateStat{
		Rate:     float64(pairs) / float64(len(texts)),
		Count:    pairs,
		Examples: examples,
	}
}

// PhraseReuse 短语复用率：出现超过 2 次的 2-4 词短语占全部去重短语的比例
func PhraseReuse(posts []model.GeneratedPost, stopPhrases []string) PhraseStat {
	stops := make(map[string]struct{}, len(stopPhrases))
	for _, s := range stopPhrases {
		stops[s] = struct{}{}
	}

	counter := make(map[string]int)
	for _, p := range posts {
		words := strings.Fields(strings.ToLower(p.Text))
		for n := 2; n <= 4; n++ {
			for i := 0; i+n <= len(words); i++ {
				phrase := strings.Join(words[i:i+n], " ")
				if _, skip := stops[phrase]; skip {
					continue
				}
				counter[phrase]++
			}
		}
	}

	if len(counter) == 0 {
		return PhraseStat{}
	}

	repeated := 0
	type pc struct {
		phrase string
		count  int
	}
	var all []pc
	for phrase, count := range counter {
		if count > 2 {
			repeated++
		}
		all = append(all, pc{phrase, count})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].phrase < all[j].phrase
	})

	var top []string
	for _, e := range all {
		if e.count > 2 && len(top) < 10 {
			top = append(top, e.phrase)
		}
	}

	return PhraseStat{
		Rate:       float64(repeated) / float64(len(counter)),
		Count:      repeated,
		TopPhrases: top,
	}
}

// TrainingStaleness 距上次训练的天数，从未训练返回哨兵值
func TrainingStaleness(last *model.TrainingUpdate, now time.Time) StalenessStat {
	if last == nil || last.Date == "" {
		return StalenessStat{DaysSinceTraining: consts.NeverTrainedDays}
	}

	t, err := time.Parse(time.RFC3339, last.Date)
	if err != nil {
		if t, err = time.Parse("2006-01-02", last.Date); err != nil {
			return StalenessStat{DaysSinceTraining: consts.NeverTrainedDays, LastTrainingDate: last.Date}
		}
	}

	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return StalenessStat{DaysSinceTraining: days, LastTrainingDate: last.Date}
}

// Score 加权新鲜度总分，各子项先折算为"离阈值还有多远"的好度
func Score(exact, similar DuplicateStat, phrase PhraseStat, stale StalenessStat,
	th config.ThresholdConfig, w config.WeightConfig) float64 {

	exactScore := math.Max(0, 1-exact.Rate/th.ExactDuplicateRate)
	similarScore := math.Max(0, 1-similar.Rate/th.SimilarDuplicateRate)
	phraseScore := math.Max(0, 1-phrase.Rate/th.PhraseReuseRate)
	trainingScore := math.Max(0, 1-float64(stale.DaysSinceTraining)/float64(th.DaysSinceTraining))

	return exactScore*w.ExactDuplicate +
		similarScore*w.SimilarDuplicate +
		phraseScore*w.PhraseReuse +
		trainingScore*w.TrainingStaleness
}
