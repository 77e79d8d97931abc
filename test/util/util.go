// Package util holds helpers shared by the integration tests: disposable
// Mosquitto and InfluxDB containers and a Prometheus endpoint poller.
package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MosquittoReadyTimeout = 5 * time.Second
	InfluxStartupTimeout  = 60 * time.Second

	pollInterval = 50 * time.Millisecond
)

const mosquittoConf = `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
log_type warning
`

// Influx describes a running InfluxDB container created in setup mode.
type Influx struct {
	URL    string
	Org    string
	Bucket string
	Token  string

	cont tc.Container
}

// Terminate stops the container.
func (i *Influx) Terminate() { _ = i.cont.Terminate(context.Background()) }

// RequireDocker skips the test when no docker binary is available.
func RequireDocker(t testing.TB) {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
}

// StartMosquitto launches a throwaway broker and returns its URL and a
// cleanup function. The broker accepts a probe connection before returning.
func StartMosquitto(ctx context.Context) (string, func(), error) {
	dir, err := os.MkdirTemp("", "mosq")
	if err != nil {
		return "", nil, err
	}
	conf := filepath.Join(dir, "mosquitto.conf")
	if err := os.WriteFile(conf, []byte(mosquittoConf), 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}

	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "eclipse-mosquitto:2.0",
			ExposedPorts: []string{"1883/tcp"},
			WaitingFor:   wait.ForListeningPort("1883/tcp"),
			Files: []tc.ContainerFile{{
				HostFilePath:      conf,
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0o644,
			}},
		},
		Started: true,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}
	cleanup := func() {
		_ = cont.Terminate(context.Background())
		_ = os.RemoveAll(dir)
	}

	broker, err := endpoint(ctx, cont, "tcp", "1883")
	if err != nil {
		cleanup()
		return "", nil, err
	}
	waitCtx, cancel := context.WithTimeout(ctx, MosquittoReadyTimeout)
	defer cancel()
	if err := probeBroker(waitCtx, broker); err != nil {
		cleanup()
		return "", nil, err
	}
	return broker, cleanup, nil
}

// StartInfluxDB launches InfluxDB 2.7 in setup mode so org, bucket and
// token exist once the health endpoint answers.
func StartInfluxDB(ctx context.Context, org, bucket, token string) (*Influx, error) {
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "influxdb:2.7",
			ExposedPorts: []string{"8086/tcp"},
			Env: map[string]string{
				"DOCKER_INFLUXDB_INIT_MODE":        "setup",
				"DOCKER_INFLUXDB_INIT_USERNAME":    "solar4farm",
				"DOCKER_INFLUXDB_INIT_PASSWORD":    "solar4farm-password",
				"DOCKER_INFLUXDB_INIT_ORG":         org,
				"DOCKER_INFLUXDB_INIT_BUCKET":      bucket,
				"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": token,
			},
			WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(InfluxStartupTimeout),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}
	url, err := endpoint(ctx, cont, "http", "8086")
	if err != nil {
		_ = cont.Terminate(context.Background())
		return nil, err
	}
	return &Influx{URL: url, Org: org, Bucket: bucket, Token: token, cont: cont}, nil
}

// WaitForMetric polls metricsURL until its body contains substr or ctx is
// done.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	for {
		if body, err := scrape(ctx, metricsURL); err == nil && strings.Contains(body, substr) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("metric %q not found: %w", substr, ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

func scrape(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return string(body), err
}

func endpoint(ctx context.Context, cont tc.Container, scheme, port string) (string, error) {
	host, err := cont.Host(ctx)
	if err != nil {
		return "", err
	}
	mapped, err := cont.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s://%s:%s", scheme, host, mapped.Port()), nil
}

func probeBroker(ctx context.Context, broker string) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("probe")
	for {
		cli := paho.NewClient(opts)
		tok := cli.Connect()
		tok.Wait()
		if tok.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
