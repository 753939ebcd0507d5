package alert

import (
	"ContentStudio/internal/api/config"
	"ContentStudio/internal/pkg/consts"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Channel 单个提醒渠道
type Channel interface {
	Name() string
	Send(ctx context.Context, a *Alert) error
}

// FileChannel 追加到 alerts.log 并覆盖写 latest_alert.json
type FileChannel struct {
	mu         sync.Mutex
	logFile    string
	latestFile string
}

func NewFileChannel(cfg config.AlertConfig) (*FileChannel, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, errors.Wrap(err, "提醒目录创建失败")
	}
	return &FileChannel{logFile: cfg.LogFile, latestFile: cfg.LatestFile}, nil
}

func (c *FileChannel) Name() string { return "file" }

func (c *FileChannel) Send(_ context.Context, a *Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, err := json.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "提醒序列化失败")
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "提醒日志打开失败")
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return errors.Wrap(err, "提醒日志写入失败")
	}
	f.Close()

	if c.latestFile == "" {
		return nil
	}
	pretty, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return errors.Wrap(err, "提醒序列化失败")
	}
	return errors.Wrap(os.WriteFile(c.latestFile, pretty, 0o644), "最新提醒写入失败")
}

// ConsoleChannel 控制台醒目输出
type ConsoleChannel struct{}

func (c *ConsoleChannel) Name() string { return "console" }

func (c *ConsoleChannel) Send(_ context.Context, a *Alert) error {
	sep := strings.Repeat("=", 70)
	fmt.Println()
	fmt.Println(sep)
	fmt.Println("【AI Content Studio 提醒】")
	fmt.Println(sep)
	fmt.Printf("时间: %s\n", a.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("类型: %s\n", a.Type)
	fmt.Printf("严重程度: %s\n", a.Severity)
	fmt.Println()
	fmt.Println(a.Message)
	fmt.Println()
	fmt.Println(sep)
	fmt.Println()
	return nil
}

// LarkChannel 飞书机器人 webhook，发交互式卡片
type LarkChannel struct {
	client     *resty.Client
	webhookURL string
	guideURL   string
}

func NewLarkChannel(cfg config.AlertConfig) *LarkChannel {
	return &LarkChannel{
		client:     resty.New().SetTimeout(5 * time.Second),
		webhookURL: cfg.LarkWebhookURL,
		guideURL:   cfg.TrainingGuideURL,
	}
}

func (c *LarkChannel) Name() string { return "lark" }

// 卡片头部颜色按严重程度区分
func larkTemplate(severity string) string {
	switch severity {
	case consts.SeverityHigh:
		return "red"
	case consts.SeverityMedium:
		return "orange"
	default:
		return "grey"
	}
}

func (c *LarkChannel) Send(ctx context.Context, a *Alert) error {
	elements := []map[string]interface{}{
		{
			"tag": "div",
			"text": map[string]string{
				"tag": "lark_md",
				"content": fmt.Sprintf("**类型**: %s\n**严重程度**: %s\n**时间**: %s",
					a.Type, a.Severity, a.Timestamp.Format("2006-01-02 15:04:05")),
			},
		},
		{"tag": "hr"},
		{
			"tag": "div",
			"text": map[string]string{
				"tag":     "lark_md",
				"content": a.Message,
			},
		},
	}

	if len(a.Details) > 0 {
		keys := make([]string, 0, len(a.Details))
		for k := range a.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString("**详细信息**:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, a.Details[k])
		}
		elements = append(elements, map[string]interface{}{
			"tag": "div",
			"text": map[string]string{
				"tag":     "lark_md",
				"content": b.String(),
			},
		})
	}

	if c.guideURL != "" {
		elements = append(elements, map[string]interface{}{
			"tag": "action",
			"actions": []map[string]interface{}{
				{
					"tag":  "button",
					"text": map[string]string{"tag": "plain_text", "content": "查看训练指南"},
					"type": "default",
					"url":  c.guideURL,
				},
			},
		})
	}

	card := map[string]interface{}{
		"msg_type": "interactive",
		"card": map[string]interface{}{
			"header": map[string]interface{}{
				"title": map[string]string{
					"tag":     "plain_text",
					"content": "AI Content Studio 内容新鲜度提醒",
				},
				"template": larkTemplate(a.Severity),
			},
			"elements": elements,
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(card).
		Post(c.webhookURL)
	if err != nil {
		return errors.Wrap(err, "lark 通知发送失败")
	}
	if resp.IsError() {
		return errors.Errorf("lark 通知返回 %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// KafkaChannel 把提醒投递到 Kafka 供下游系统消费
type KafkaChannel struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaChannel(cfg config.KafkaConfig) (*KafkaChannel, error) {
	c := sarama.NewConfig()

	if cfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = cfg.Sasl.Username
		c.Net.SASL.Password = cfg.Sasl.Password
	}

	c.Producer.Return.Successes = true
	c.Producer.RequiredAcks = sarama.WaitForLocal
	c.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(cfg.Brokers, c)
	if err != nil {
		return nil, errors.Wrap(err, "kafka 生产者创建失败")
	}
	return &KafkaChannel{producer: producer, topic: cfg.AlertTopic}, nil
}

func (c *KafkaChannel) Name() string { return "kafka" }

func (c *KafkaChannel) Send(_ context.Context, a *Alert) error {
	data, err := json.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "提醒序列化失败")
	}
	_, _, err = c.producer.SendMessage(&sarama.ProducerMessage{
		Topic: c.topic,
		Key:   sarama.StringEncoder(a.Type),
		Value: sarama.ByteEncoder(data),
	})
	return errors.Wrap(err, "kafka 投递失败")
}

func (c *KafkaChannel) Close() error {
	return c.producer.Close()
}
