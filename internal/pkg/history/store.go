package history

import (
	"ContentStudio/internal/model"
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	KindPost     = "post"
	KindTraining = "training"
	KindAlert    = "alert"
)

// Event 历史文件中的一行，kind 决定哪个字段非空
type Event struct {
	Kind     string                `json:"kind"`
	Post     *model.GeneratedPost  `json:"post,omitempty"`
	Training *model.TrainingUpdate `json:"training,omitempty"`
	Alert    *model.AlertRecord    `json:"alert,omitempty"`
}

// Store 按内容类型分文件的追加式历史存储
// 文件只追加不改写，内存里保留全量快照供查询
type Store struct {
	dir string

	mu     sync.Mutex
	nextID int64
	events map[model.ContentType][]Event
}

// NewStore 打开历史目录并加载既有记录
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "历史目录创建失败")
	}

	s := &Store{
		dir:    dir,
		nextID: 1,
		events: make(map[model.ContentType][]Event),
	}

	for _, ct := range model.AllContentTypes() {
		if err := s.loadType(ct); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) filePath(ct model.ContentType) string {
	return filepath.Join(s.dir, fmt.Sprintf("history_%s.jsonl", ct))
}

func (s *Store) loadType(ct model.ContentType) error {
	f, err := os.Open(s.filePath(ct))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "历史文件打开失败")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			// 坏行跳过，不让单条脏数据拖垮整个加载
			continue
		}
		s.events[ct] = append(s.events[ct], ev)
		if ev.Post != nil && ev.Post.ID >= s.nextID {
			s.nextID = ev.Post.ID + 1
		}
	}
	return errors.Wrap(scanner.Err(), "历史文件读取失败")
}

func (s *Store) append(ct model.ContentType, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "历史记录序列化失败")
	}

	f, err := os.OpenFile(s.filePath(ct), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "历史文件打开失败")
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "历史文件写入失败")
	}

	s.events[ct] = append(s.events[ct], ev)
	return nil
}

// AppendPost 记录一条生成文案，返回分配的 ID
func (s *Store) AppendPost(ct model.ContentType, text string, metadata map[string]string) (*model.GeneratedPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := &model.GeneratedPost{
		ID:          s.nextID,
		Text:        text,
		ContentType: string(ct),
		Timestamp:   time.Now(),
		Metadata:    metadata,
	}
	if err := s.append(ct, Event{Kind: KindPost, Post: post}); err != nil {
		return nil, err
	}
	s.nextID++
	return post, nil
}

// AppendTraining 记录一次训练更新
func (s *Store) AppendTraining(ct model.ContentType, update *model.TrainingUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(ct, Event{Kind: KindTraining, Training: update})
}

// AppendAlert 记录一次报警
func (s *Store) AppendAlert(ct model.ContentType, record *model.AlertRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(ct, Event{Kind: KindAlert, Alert: record})
}

// RecentPosts 返回最近 n 条文案，时间正序，n<=0 返回全部
func (s *Store) RecentPosts(ct model.ContentType, n int) []model.GeneratedPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []model.GeneratedPost
	for _, ev := range s.events[ct] {
		if ev.Kind == KindPost && ev.Post != nil {
			posts = append(posts, *ev.Post)
		}
	}
	if n > 0 && len(posts) > n {
		posts = posts[len(posts)-n:]
	}
	out := make([]model.GeneratedPost, len(posts))
	copy(out, posts)
	return out
}

// PostCount 该类型的文案总数
func (s *Store) PostCount(ct model.ContentType) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, ev := range s.events[ct] {
		if ev.Kind == KindPost {
			count++
		}
	}
	return count
}

// LastTraining 最近一次训练更新，没有则返回 nil
func (s *Store) LastTraining(ct model.ContentType) *model.TrainingUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	evs := s.events[ct]
	for i := len(evs) - 1; i >= 0; i-- {
		if evs[i].Kind == KindTraining && evs[i].Training != nil {
			cp := *evs[i].Training
			return &cp
		}
	}
	return nil
}

// RecentAlerts 返回最近 n 条报警记录，时间正序
func (s *Store) RecentAlerts(ct model.ContentType, n int) []model.AlertRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []model.AlertRecord
	for _, ev := range s.events[ct] {
		if ev.Kind == KindAlert && ev.Alert != nil {
			records = append(records, *ev.Alert)
		}
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	out := make([]model.AlertRecord, len(records))
	copy(out, records)
	return out
}
