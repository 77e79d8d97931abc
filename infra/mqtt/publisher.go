package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/infra/logger"
)

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Message is the envelope of every published payload.
type Message struct {
	MessageID string `json:"message_id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Publisher sends experiment results to an MQTT broker. It implements
// metrics.MetricsSink and metrics.RunRecorder.
type Publisher struct {
	cli        pahoClient
	prefix     string
	control    string
	qos        byte
	maxRetries int
	backoff    time.Duration
	logger     logger.Logger

	mu     sync.Mutex
	onStop func()
}

// NewPublisher connects to the broker and subscribes to the control topic.
func NewPublisher(cfg Config, log logger.Logger) (*Publisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.New("mqtt_publisher")
	}
	p := &Publisher{
		prefix:     cfg.TopicPrefix,
		control:    cfg.ControlTopic,
		qos:        cfg.QoS,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		logger:     log,
	}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if token := c.Subscribe(p.control, p.qos, p.onControl); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	p.cli = c
	return p, nil
}

// OnStop registers the function called when a stop command arrives on the
// control topic.
func (p *Publisher) OnStop(f func()) {
	p.mu.Lock()
	p.onStop = f
	p.mu.Unlock()
}

func (p *Publisher) onControl(_ paho.Client, msg paho.Message) {
	var m struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		p.logger.Errorf("failed to decode control message: %v", err)
		return
	}
	if m.Command != "stop" {
		p.logger.Warnf("ignoring control command %q", m.Command)
		return
	}
	p.mu.Lock()
	f := p.onStop
	p.mu.Unlock()
	if f != nil {
		p.logger.Infof("stop requested over MQTT")
		f()
	}
}

// EpochTopic returns the topic of epoch events for a system.
func (p *Publisher) EpochTopic(runID, system string) string {
	return fmt.Sprintf("%s/%s/%s/epoch", p.prefix, topicSegment(runID), topicSegment(system))
}

// SummaryTopic returns the topic of run summaries for a system.
func (p *Publisher) SummaryTopic(runID, system string) string {
	return fmt.Sprintf("%s/%s/%s/summary", p.prefix, topicSegment(runID), topicSegment(system))
}

// RecordEpoch publishes the event.
func (p *Publisher) RecordEpoch(ev metrics.EpochEvent) error {
	_, err := p.publish(p.EpochTopic(ev.RunID, ev.System), "epoch", false, ev)
	return err
}

// RecordRun publishes the summary as a retained message.
func (p *Publisher) RecordRun(s metrics.RunSummary) error {
	_, err := p.publish(p.SummaryTopic(s.RunID, s.System), "summary", true, s)
	return err
}

// publish wraps payload in a Message and sends it with exponential backoff
// between attempts. It returns the message id.
func (p *Publisher) publish(topic, kind string, retained bool, payload any) (string, error) {
	msg := Message{
		MessageID: uuid.NewString(),
		Type:      kind,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, p.qos, retained, data)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Debugf("published %s %s to %s", kind, msg.MessageID, topic)
			return msg.MessageID, nil
		}
		p.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < p.maxRetries {
			time.Sleep(p.backoff * time.Duration(1<<attempt))
		}
	}
	return "", fmt.Errorf("publish %s: %w", topic, publishErr)
}

// Close gracefully closes the MQTT connection.
func (p *Publisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}

var topicReplacer = strings.NewReplacer("/", "_", "+", "_", "#", "_", " ", "_")

func topicSegment(s string) string {
	if s == "" {
		return "_"
	}
	return topicReplacer.Replace(s)
}
