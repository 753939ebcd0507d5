package alert

import (
	"context"
	log "log/slog"
)

// Dispatcher 把提醒广播到全部渠道，单渠道失败不影响其他渠道
type Dispatcher struct {
	channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

// Register 追加一个渠道
func (d *Dispatcher) Register(c Channel) {
	d.channels = append(d.channels, c)
}

// Dispatch 逐个渠道发送，返回成功渠道数
func (d *Dispatcher) Dispatch(ctx context.Context, a *Alert) int {
	sent := 0
	for _, c := range d.channels {
		if err := c.Send(ctx, a); err != nil {
			log.WarnContext(ctx, "alert channel failed", "channel", c.Name(), "err", err)
			continue
		}
		sent++
	}
	log.InfoContext(ctx, "alert dispatched", "type", a.Type, "severity", a.Severity, "sent", sent, "total", len(d.channels))
	return sent
}
