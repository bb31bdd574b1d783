package events

import (
	"Doodly/config"
	"Doodly/pkg/log"
	"context"
	"encoding/json"
	"time"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

// Moderation lifecycle events for downstream analytics. Publishing is best
// effort: a broker outage never blocks an upload.

const TopicPostModeration = "doodly_post_moderation"

type PostEvent struct {
	Event     string    `json:"event"` // post.approved | post.rejected
	PostID    uint64    `json:"post_id"`
	ChildID   uint64    `json:"child_id"`
	TimeSlot  string    `json:"time_slot"`
	PostDay   string    `json:"post_day"`
	Reasons   []string  `json:"reasons,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher interface {
	PublishPostEvent(ctx context.Context, ev PostEvent)
}

func init() {
	rlog.SetLogLevel("error")
}

type RocketPublisher struct {
	producer rocketmq.Producer
}

// NewPublisher starts a RocketMQ producer, or a no-op publisher when the
// broker is disabled in config.
func NewPublisher(cfg *config.RocketMQConfig) Publisher {
	if cfg == nil || !cfg.Enabled {
		return &nopPublisher{}
	}

	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		log.L.Error("create producer failed, events disabled", zap.Error(err))
		return &nopPublisher{}
	}
	if err := p.Start(); err != nil {
		log.L.Error("start producer failed, events disabled", zap.Error(err))
		return &nopPublisher{}
	}
	log.L.Info("init producer success")

	return &RocketPublisher{producer: p}
}

func (r *RocketPublisher) PublishPostEvent(ctx context.Context, ev PostEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		log.L.Error("marshal post event", zap.Error(err))
		return
	}
	msg := &primitive.Message{
		Topic: TopicPostModeration,
		Body:  body,
	}
	msg.WithTag(ev.Event)

	res, err := r.producer.SendSync(ctx, msg)
	if err != nil {
		log.L.Error("send post event failed", zap.Error(err), zap.String("event", ev.Event))
		return
	}
	log.L.Info("post event sent", zap.String("event", ev.Event), zap.String("msg_id", res.MsgID))
}

type nopPublisher struct{}

func (*nopPublisher) PublishPostEvent(context.Context, PostEvent) {}
