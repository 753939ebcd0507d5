package history

import (
	"ContentStudio/internal/model"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndReload(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	p1, err := s.AppendPost(model.ContentTypeGM, "gm frens", nil)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := s.AppendPost(model.ContentTypeGM, "gm again", nil)
	if err != nil {
		t.Fatal(err)
	}
	if p2.ID != p1.ID+1 {
		t.Fatalf("ID 应递增: %d -> %d", p1.ID, p2.ID)
	}

	if err := s.AppendTraining(model.ContentTypeGM, &model.TrainingUpdate{
		Type:         "incremental",
		SamplesAdded: 120,
		Date:         time.Now().Format("2006-01-02"),
	}); err != nil {
		t.Fatal(err)
	}

	// 重新打开，应从文件恢复全部状态
	s2, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	posts := s2.RecentPosts(model.ContentTypeGM, 0)
	if len(posts) != 2 {
		t.Fatalf("期望 2 条文案, 实际 %d", len(posts))
	}
	if posts[0].Text != "gm frens" || posts[1].Text != "gm again" {
		t.Fatalf("文案顺序错误: %+v", posts)
	}
	if posts[0].ContentType != "gm" {
		t.Fatalf("内容类型应以字符串落盘: %q", posts[0].ContentType)
	}
	tu := s2.LastTraining(model.ContentTypeGM)
	if tu == nil || tu.SamplesAdded != 120 {
		t.Fatalf("训练记录未恢复: %+v", tu)
	}
	// 日期按写入的字符串格式原样读回
	if _, err := time.Parse("2006-01-02", tu.Date); err != nil {
		t.Fatalf("训练日期格式错误: %q", tu.Date)
	}

	// ID 分配在重载后不回退
	p3, err := s2.AppendPost(model.ContentTypeGM, "third", nil)
	if err != nil {
		t.Fatal(err)
	}
	if p3.ID != p2.ID+1 {
		t.Fatalf("重载后 ID 回退: %d", p3.ID)
	}
}

func TestRecentPostsWindow(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if _, err := s.AppendPost(model.ContentTypeMain, "post", nil); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(s.RecentPosts(model.ContentTypeMain, 3)); got != 3 {
		t.Fatalf("窗口截取错误: %d", got)
	}
	if got := s.PostCount(model.ContentTypeMain); got != 5 {
		t.Fatalf("计数错误: %d", got)
	}
}

func TestTypesIsolated(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AppendPost(model.ContentTypeGM, "gm", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AppendPost(model.ContentTypeReply, "reply", nil); err != nil {
		t.Fatal(err)
	}

	if len(s.RecentPosts(model.ContentTypeGM, 0)) != 1 {
		t.Fatal("gm 类型记录数错误")
	}
	if len(s.RecentPosts(model.ContentTypeCasual, 0)) != 0 {
		t.Fatal("casual 类型不应有记录")
	}

	// 每个类型各自一个文件
	if _, err := os.Stat(filepath.Join(dir, "history_gm.jsonl")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "history_reply.jsonl")); err != nil {
		t.Fatal(err)
	}
}

func TestCorruptLineSkipped(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AppendPost(model.ContentTypeGM, "ok", nil); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "history_gm.jsonl"), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not json\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	s2, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(s2.RecentPosts(model.ContentTypeGM, 0)); got != 1 {
		t.Fatalf("坏行应被跳过, 实际记录数 %d", got)
	}
}
