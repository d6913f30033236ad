package activity

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Output receives encoded events per topic.
type Output interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

func decode(msg []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(msg, &e); err != nil {
		return e, fmt.Errorf("invalid activity event: %w", err)
	}
	if e.Timestamp == 0 {
		return e, fmt.Errorf("invalid timestamp")
	}
	return e, nil
}

// partition is the hive style directory of an event's hour.
func partition(e Event) string {
	t := e.Time()
	year, month, day := t.Date()
	return fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, t.Hour())
}

type ConsoleOutput struct {
	w io.Writer
}

// NewConsoleOutput writes to w, or to stdout when w is nil.
func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput appends one JSON line per event to
// <base>/<folder>/<topic>/<partition>/data.json.
type JSONOutput struct {
	basePath string
	folder   string

	mu    sync.Mutex
	files map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{basePath: basePath, folder: folder, files: make(map[string]*os.File)}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	e, err := decode(msg)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(j.basePath, j.folder, topic, partition(e))

	j.mu.Lock()
	defer j.mu.Unlock()
	file, ok := j.files[fullPath]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		j.files[fullPath] = file
	}
	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	var lastErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil {
			lastErr = err
		}
		delete(j.files, key)
	}
	return lastErr
}

var csvHeader = []string{"timestamp", "session_id", "type", "restaurant_id", "dish_id", "ingredient_id", "cart_item_id", "price", "percent"}

// CSVOutput writes events with a fixed header to partitioned data.csv files.
type CSVOutput struct {
	basePath string
	folder   string

	mu      sync.Mutex
	files   map[string]*os.File
	writers map[string]*csv.Writer
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
		writers:  make(map[string]*csv.Writer),
	}
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	e, err := decode(msg)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(c.basePath, c.folder, topic, partition(e))

	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.writers[fullPath]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(fullPath, "data.csv"))
		if err != nil {
			return err
		}
		w = csv.NewWriter(file)
		if err := w.Write(csvHeader); err != nil {
			file.Close()
			return err
		}
		c.files[fullPath] = file
		c.writers[fullPath] = w
	}

	row := []string{
		fmt.Sprint(e.Timestamp), e.SessionID, e.Type, e.RestaurantID, e.DishID,
		e.IngredientID, e.CartItemID, fmt.Sprint(e.Price), fmt.Sprint(e.Percent),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (c *CSVOutput) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.files))
	for k := range c.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lastErr error
	for _, k := range keys {
		c.writers[k].Flush()
		if err := c.writers[k].Error(); err != nil {
			lastErr = err
		}
		if err := c.files[k].Close(); err != nil {
			lastErr = err
		}
	}
	c.files = make(map[string]*os.File)
	c.writers = make(map[string]*csv.Writer)
	return lastErr
}
