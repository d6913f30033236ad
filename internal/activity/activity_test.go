package activity

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"github.com/chrisdamba/foodstory/internal/cloudwriter"
	"github.com/chrisdamba/foodstory/internal/models"
)

var fixedNow = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

type memoryOutput struct {
	topics []string
	msgs   [][]byte
	err    error
}

func (m *memoryOutput) WriteMessage(topic string, msg []byte) error {
	if m.err != nil {
		return m.err
	}
	m.topics = append(m.topics, topic)
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *memoryOutput) Close() error { return nil }

func event(eventType string) Event {
	return Event{Timestamp: fixedNow.UnixMilli(), SessionID: "s1", Type: eventType, RestaurantID: "r1", DishID: "d1", Price: 12.49}
}

func encode(t *testing.T, e Event) []byte {
	t.Helper()
	msg, err := json.Marshal(e)
	require.NoError(t, err)
	return msg
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "cart_item_added_events", Topic(models.ActivityCartItemAdded))
	assert.Equal(t, "dish_viewed_events", Topic(models.ActivityDishViewed))
}

func TestRecorder_StampsAndWrites(t *testing.T) {
	out := &memoryOutput{}
	r := NewRecorder(out, func() time.Time { return fixedNow })
	r.Record(Event{Type: models.ActivityDishViewed, RestaurantID: "r1", DishID: "d1"})

	require.Len(t, out.msgs, 1)
	assert.Equal(t, "dish_viewed_events", out.topics[0])

	var got Event
	require.NoError(t, json.Unmarshal(out.msgs[0], &got))
	assert.Equal(t, fixedNow.UnixMilli(), got.Timestamp)
	assert.Equal(t, r.SessionID(), got.SessionID)
	assert.NotEmpty(t, got.SessionID)
	assert.Equal(t, 1, r.Counts()[models.ActivityDishViewed])
}

func TestRecorder_OutputFailureIsNotFatal(t *testing.T) {
	r := NewRecorder(&memoryOutput{err: errors.New("broker down")}, nil)
	r.Record(Event{Type: models.ActivityCartItemAdded})
	assert.Equal(t, 1, r.Counts()[models.ActivityCartItemAdded])
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	r.Record(Event{Type: models.ActivityDishViewed})
	assert.Empty(t, r.Counts())
	assert.Empty(t, r.SessionID())
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewConsoleOutput(&buf)
	require.NoError(t, out.WriteMessage("dish_viewed_events", []byte(`{"a":1}`)))
	assert.Equal(t, "[dish_viewed_events] {\"a\":1}\n", buf.String())
}

func TestJSONOutput_WritesPartitionedLines(t *testing.T) {
	dir := t.TempDir()
	out := NewJSONOutput(dir, "activity")
	topic := Topic(models.ActivityDishViewed)
	require.NoError(t, out.WriteMessage(topic, encode(t, event(models.ActivityDishViewed))))
	require.NoError(t, out.WriteMessage(topic, encode(t, event(models.ActivityDishViewed))))
	require.NoError(t, out.Close())

	path := filepath.Join(dir, "activity", topic, "year=2024/month=03/day=09/hour=14", "data.json")
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		assert.Equal(t, "d1", e.DishID)
		lines++
	}
	assert.Equal(t, 2, lines)
}

func TestJSONOutput_RejectsEventWithoutTimestamp(t *testing.T) {
	out := NewJSONOutput(t.TempDir(), "activity")
	assert.Error(t, out.WriteMessage("x", []byte(`{"type":"DishViewed"}`)))
	assert.Error(t, out.WriteMessage("x", []byte(`nope`)))
}

func TestCSVOutput_WritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	out := NewCSVOutput(dir, "activity")
	topic := Topic(models.ActivityCartItemAdded)
	require.NoError(t, out.WriteMessage(topic, encode(t, event(models.ActivityCartItemAdded))))
	require.NoError(t, out.WriteMessage(topic, encode(t, event(models.ActivityCartItemAdded))))
	require.NoError(t, out.Close())

	data, err := os.ReadFile(filepath.Join(dir, "activity", topic, "year=2024/month=03/day=09/hour=14", "data.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
	assert.Contains(t, lines[1], "CartItemAdded")
}

func TestParquetOutput_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := NewParquetOutput(dir, "activity")
	topic := Topic(models.ActivityDishCompleted)
	for i := 0; i < 3; i++ {
		e := event(models.ActivityDishCompleted)
		e.Percent = 100
		require.NoError(t, out.WriteMessage(topic, encode(t, e)))
	}
	require.NoError(t, out.Close())

	path := filepath.Join(dir, "activity", topic, "year=2024/month=03/day=09/hour=14", "data.parquet")
	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(Event), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	require.EqualValues(t, 3, pr.GetNumRows())
	rows := make([]Event, 3)
	require.NoError(t, pr.Read(&rows))
	assert.Equal(t, "d1", rows[0].DishID)
	assert.Equal(t, 100.0, rows[2].Percent)
	assert.Equal(t, fixedNow.UnixMilli(), rows[1].Timestamp)
}

func TestCloudParquetOutput_UploadsOnClose(t *testing.T) {
	factory := cloudwriter.NewMemoryWriterFactory()
	out := NewCloudParquetOutput(factory, "bucket", "activity")
	topic := Topic(models.ActivityCartItemAdded)
	require.NoError(t, out.WriteMessage(topic, encode(t, event(models.ActivityCartItemAdded))))
	assert.Empty(t, factory.Keys())

	require.NoError(t, out.Close())
	objectPath := path.Join("activity", topic, "year=2024/month=03/day=09/hour=14", "data.parquet")
	data, ok := factory.Object("bucket", objectPath)
	require.True(t, ok)

	file := filepath.Join(t.TempDir(), "data.parquet")
	require.NoError(t, os.WriteFile(file, data, 0644))
	fr, err := local.NewLocalFileReader(file)
	require.NoError(t, err)
	defer fr.Close()
	pr, err := reader.NewParquetReader(fr, new(Event), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	require.EqualValues(t, 1, pr.GetNumRows())
	rows := make([]Event, 1)
	require.NoError(t, pr.Read(&rows))
	assert.Equal(t, models.ActivityCartItemAdded, rows[0].Type)
}

func TestKafkaOutput_SendsToTopic(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if !bytes.Contains(val, []byte(`"type":"CartItemAdded"`)) {
			return errors.New("unexpected payload")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	out := NewKafkaOutputWithProducer(producer)
	msg := encode(t, event(models.ActivityCartItemAdded))
	require.NoError(t, out.WriteMessage(Topic(models.ActivityCartItemAdded), msg))
	assert.ErrorIs(t, out.WriteMessage(Topic(models.ActivityCartItemAdded), msg), sarama.ErrOutOfBrokers)

	require.NoError(t, out.Close())
	assert.Error(t, out.WriteMessage("x", msg))
}

func TestOpen_SelectsOutput(t *testing.T) {
	cfg := &models.Config{}
	out, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleOutput{}, out)

	cfg.OutputPath = t.TempDir()
	for format, want := range map[string]Output{
		"json":    &JSONOutput{},
		"csv":     &CSVOutput{},
		"parquet": &ParquetOutput{},
	} {
		cfg.OutputFormat = format
		out, err := Open(context.Background(), cfg)
		require.NoError(t, err, format)
		assert.IsType(t, want, out, format)
	}

	cfg.OutputFormat = "xml"
	_, err = Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestTopicToTable(t *testing.T) {
	assert.Equal(t, "fact_story_view", topicToTable(Topic(models.ActivityDishViewed)))
	assert.Equal(t, "fact_story_view", topicToTable(Topic(models.ActivityRestaurantViewed)))
	assert.Equal(t, "fact_ingredient_interaction", topicToTable(Topic(models.ActivityCustomizationSet)))
	assert.Equal(t, "fact_cart", topicToTable(Topic(models.ActivityCartItemRemoved)))
	assert.Equal(t, "fact_activity", topicToTable("something_else_events"))
}
