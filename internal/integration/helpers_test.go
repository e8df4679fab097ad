//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/lowceiling/mos-data-etl/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker
// address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("mos-etl-test"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)

	return brokers[0]
}

// createTopic creates a single-partition topic via the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp",
		net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic %s", topic)
}

// mavText builds a valid short-range bulletin for the given station. Column
// alignment matters: rows are 3-character cells after a 4-character label.
func mavText(station string) string {
	return fmt.Sprintf(`%s   GFS MOS GUIDANCE   01/02/2023  1200 UTC
DT /JAN   2            /JAN   3
HR   15 18 21 00 03
TMP  50 45 40 35 30
DPT  44 40 33 28 24
CLD  OV OV BK SC CL
WDR  31 29 28 27 02
WSP  12 10 08 06 04
P06     77    32   `, station)
}

// mexText builds a valid extended-range bulletin: 4-character cells, hour
// line directly below the header.
func mexText(station string) string {
	return fmt.Sprintf(`%s   GFSX MOS GUIDANCE   1/02/2023  1200 UTC
FHR   24  36  48  60  72
X/N   45  31  44  30  42
TMP   38  25  36  24  34
DPT   30  20  28  19  26
CLD   OV  PC  CL  CL  PC
T12    5  10   3   8  12`, station)
}

// bulletinPayload marshals a raw bulletin envelope the way the collector
// publishes it.
func bulletinPayload(t *testing.T, station, reportType, text string) []byte {
	t.Helper()
	payload, err := json.Marshal(domain.RawBulletinMessage{
		Station:    station,
		ReportType: reportType,
		Text:       text,
	})
	require.NoError(t, err)
	return payload
}
