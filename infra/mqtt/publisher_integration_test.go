package mqtt

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/infra/logger"
	"github.com/kilianp07/solar4farm/test/util"
)

// TestPublisherWithMosquitto publishes an epoch event to a real broker and
// sends a stop command back over the control topic.
func TestPublisherWithMosquitto(t *testing.T) {
	util.RequireDocker(t)
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()
	broker, cleanup, err := util.StartMosquitto(ctx)
	if err != nil {
		t.Skipf("mosquitto not available: %v", err)
	}
	defer cleanup()

	received := make(chan Message, 1)
	sub := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("observer"))
	tok := sub.Connect()
	tok.Wait()
	require.NoError(t, tok.Error())
	defer sub.Disconnect(100)
	tok = sub.Subscribe("it/#", 1, func(_ paho.Client, m paho.Message) {
		var msg Message
		if json.Unmarshal(m.Payload(), &msg) == nil && msg.Type == "epoch" {
			received <- msg
		}
	})
	tok.Wait()
	require.NoError(t, tok.Error())

	pub, err := NewPublisher(Config{Broker: broker, TopicPrefix: "it", QoS: 1}, logger.NopLogger{})
	require.NoError(t, err)
	defer pub.Close()
	stopped := make(chan struct{})
	pub.OnStop(func() { close(stopped) })

	require.NoError(t, pub.RecordEpoch(metrics.EpochEvent{RunID: "run", System: "s1", Epoch: 1}))
	select {
	case msg := <-received:
		require.NotEmpty(t, msg.MessageID)
	case <-time.After(5 * time.Second):
		t.Fatal("epoch event not received")
	}

	tok = sub.Publish("it/control", 1, false, `{"command":"stop"}`)
	tok.Wait()
	require.NoError(t, tok.Error())
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stop command not delivered")
	}
}
