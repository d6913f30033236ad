// Package activity records viewer interactions with the feed and ships them
// to a configurable output.
package activity

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Event is one interaction. The parquet tags define the columnar layout used
// by ParquetOutput.
type Event struct {
	Timestamp    int64   `json:"timestamp" parquet:"name=timestamp, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	SessionID    string  `json:"sessionId" parquet:"name=session_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Type         string  `json:"type" parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RestaurantID string  `json:"restaurantId" parquet:"name=restaurant_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	DishID       string  `json:"dishId,omitempty" parquet:"name=dish_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	IngredientID string  `json:"ingredientId,omitempty" parquet:"name=ingredient_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CartItemID   string  `json:"cartItemId,omitempty" parquet:"name=cart_item_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Price        float64 `json:"price,omitempty" parquet:"name=price, type=DOUBLE"`
	Percent      float64 `json:"percent,omitempty" parquet:"name=percent, type=DOUBLE"`
}

func (e Event) Time() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// Topic maps an event type such as "CartItemAdded" to "cart_item_added_events".
func Topic(eventType string) string {
	var b strings.Builder
	for i, r := range eventType {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	b.WriteString("_events")
	return b.String()
}

// Recorder stamps events with the session id and the clock time and writes
// them to an Output. A nil Recorder discards everything.
type Recorder struct {
	out     Output
	now     func() time.Time
	session string

	mu     sync.Mutex
	counts map[string]int
}

func NewRecorder(out Output, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{
		out:     out,
		now:     now,
		session: uuid.NewString(),
		counts:  make(map[string]int),
	}
}

func (r *Recorder) SessionID() string {
	if r == nil {
		return ""
	}
	return r.session
}

// Record writes e. Output failures are logged and otherwise ignored.
func (r *Recorder) Record(e Event) {
	if r == nil {
		return
	}
	e.Timestamp = r.now().UnixMilli()
	e.SessionID = r.session

	r.mu.Lock()
	r.counts[e.Type]++
	r.mu.Unlock()

	if r.out == nil {
		return
	}
	msg, err := json.Marshal(e)
	if err != nil {
		log.Printf("Error encoding activity event %s: %v", e.Type, err)
		return
	}
	if err := r.out.WriteMessage(Topic(e.Type), msg); err != nil {
		log.Printf("Error writing activity event %s: %v", e.Type, err)
	}
}

// Counts returns the number of recorded events per type.
func (r *Recorder) Counts() map[string]int {
	out := make(map[string]int)
	if r == nil {
		return out
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}
