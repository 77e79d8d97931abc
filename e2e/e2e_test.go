package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/solar4farm/core/experiment"
	"github.com/kilianp07/solar4farm/core/load"
	coremetrics "github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/core/power"
	"github.com/kilianp07/solar4farm/core/weather"
	"github.com/kilianp07/solar4farm/infra/logger"
	inframetrics "github.com/kilianp07/solar4farm/infra/metrics"
	"github.com/kilianp07/solar4farm/infra/mqtt"
	"github.com/kilianp07/solar4farm/test/util"
)

const (
	org    = "e2e_org"
	bucket = "e2e_bucket"
	token  = "e2e-token"
)

// countPoints runs flux against the container and counts the records.
func countPoints(ctx context.Context, db *util.Influx, flux string) (int, error) {
	cli := influxdb2.NewClient(db.URL, db.Token)
	defer cli.Close()
	res, err := cli.QueryAPI(db.Org).Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	n := 0
	for res.Next() {
		n++
	}
	return n, res.Err()
}

// summerHours returns three days of June observations.
func summerHours() []weather.Observation {
	var obs []weather.Observation
	for h := 0; h < 72; h++ {
		irr := 0.0
		if hod := h % 24; hod >= 7 && hod <= 19 {
			irr = float64(100 * (7 - abs(hod-13)))
		}
		obs = append(obs, weather.Observation{Month: 6, Temperature: 15 + float64(h%24)/2, Irradiance: irr})
	}
	return obs
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Test_E2E_ExperimentSinks runs an experiment whose epochs go to InfluxDB and
// whose summaries are published on Mosquitto.
func Test_E2E_ExperimentSinks(t *testing.T) {
	util.RequireDocker(t)
	if testing.Short() {
		t.Skip("e2e test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := util.StartInfluxDB(ctx, org, bucket, token)
	if err != nil {
		t.Skipf("unable to start influx container: %v", err)
	}
	defer db.Terminate()
	broker, stopBroker, err := util.StartMosquitto(ctx)
	if err != nil {
		t.Skipf("mosquitto not available: %v", err)
	}
	defer stopBroker()

	summaries := make(chan mqtt.Message, 4)
	sub := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("e2e-observer"))
	tok := sub.Connect()
	tok.Wait()
	require.NoError(t, tok.Error())
	defer sub.Disconnect(100)
	tok = sub.Subscribe("e2e/+/+/summary", 1, func(_ paho.Client, m paho.Message) {
		var msg mqtt.Message
		if json.Unmarshal(m.Payload(), &msg) == nil {
			summaries <- msg
		}
	})
	tok.Wait()
	require.NoError(t, tok.Error())

	influx := inframetrics.NewInfluxSink(db.URL, token, org, bucket)
	pub, err := mqtt.NewPublisher(mqtt.Config{Broker: broker, TopicPrefix: "e2e", QoS: 1}, logger.NopLogger{})
	require.NoError(t, err)
	sink := coremetrics.NewMultiSink(influx, pub)
	defer coremetrics.Close(sink)

	wp, err := weather.NewProcess(summerHours(), weather.Sample{Temperature: 20, Irradiance: 300}, rand.NewPCG(1, 2))
	require.NoError(t, err)
	lg, err := load.NewGenerator(load.DefaultConfig(), rand.NewPCG(1, 3))
	require.NoError(t, err)
	panels, err := experiment.AreaSweep(2, 3, 1, 0.2, "France", "Thin")
	require.NoError(t, err)
	candidates, err := experiment.NewCandidates(panels, power.DefaultTables(), load.DefaultConfig().ActiveCurrent)
	require.NoError(t, err)

	exp, err := experiment.New(experiment.Config{Epochs: 2, Months: []int{6}}, wp, lg, candidates,
		experiment.WithSink(sink), experiment.WithRunID("e2e-run"))
	require.NoError(t, err)
	results, err := exp.Run(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)

	count, err := countPoints(ctx, db, fmt.Sprintf(`from(bucket:"%s") |> range(start:-1h)
        |> filter(fn: (r) => r._measurement == "solar_epoch" and r._field == "efficiency")`, bucket))
	require.NoError(t, err)
	assert.Equal(t, 4, count, "two systems over two epochs")

	for i := 0; i < 2; i++ {
		select {
		case msg := <-summaries:
			assert.Equal(t, "summary", msg.Type)
		case <-time.After(5 * time.Second):
			t.Fatalf("summary %d not received", i)
		}
	}
}
