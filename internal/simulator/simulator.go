package simulator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/chrisdamba/foodstory/internal/activity"
	"github.com/chrisdamba/foodstory/internal/cart"
	"github.com/chrisdamba/foodstory/internal/clock"
	"github.com/chrisdamba/foodstory/internal/customization"
	"github.com/chrisdamba/foodstory/internal/feed"
	"github.com/chrisdamba/foodstory/internal/media"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/notify"
	"github.com/chrisdamba/foodstory/internal/storage"
	"github.com/chrisdamba/foodstory/internal/story"
	"github.com/schollz/progressbar/v3"
)

// Simulator drives a feed with a simulated viewer: taps, swipes, hotspot
// inspections, customizations and add to cart, at random intervals.
type Simulator struct {
	Config         *models.Config
	Catalog        *models.Catalog
	Clock          *clock.Virtual
	Feed           *feed.Controller
	Network        *story.StaticNetwork
	Cart           *cart.Store
	Customizations *customization.Store
	Notifications  *notify.Queue
	Recorder       *activity.Recorder
	Rng            *rand.Rand

	Actions map[string]int
	clips   map[string]time.Duration
	next    clock.Timer
	start   time.Time
}

// Summary is the outcome of a run.
type Summary struct {
	SessionID string
	Elapsed   time.Duration
	Actions   map[string]int
	Activity  map[string]int
	CartItems int
	CartTotal float64
}

func NewSimulator(config *models.Config, catalog *models.Catalog, store storage.Adapter, out activity.Output) *Simulator {
	start := time.Now().UTC().Truncate(time.Second)
	v := clock.NewVirtual(start)

	sim := &Simulator{
		Config:         config,
		Catalog:        catalog,
		Clock:          v,
		Network:        story.NewStaticNetwork(true),
		Cart:           cart.NewStore(store),
		Customizations: customization.NewStore(store),
		Notifications:  notify.NewQueue(v),
		Rng:            rand.New(rand.NewSource(int64(config.Seed))),
		Actions:        make(map[string]int),
		clips:          make(map[string]time.Duration),
		start:          start,
	}
	sim.Recorder = activity.NewRecorder(out, v.Now)

	deps := story.Deps{
		Scheduler:      v,
		Customizations: sim.Customizations,
		Cart:           sim.Cart,
		Notifications:  sim.Notifications,
		Network:        sim.Network,
		Surfaces:       sim.newSurface,
		Activity:       sim.Recorder,
	}
	sim.Feed = feed.New(catalog, deps, story.OptionsFromConfig(config))
	return sim
}

// newSurface plays a video URL as a simulated clip. The clip length is
// picked once per URL and reused on revisits.
func (s *Simulator) newSurface(url string) media.Surface {
	length, ok := s.clips[url]
	if !ok {
		length = time.Duration(8+s.Rng.Intn(13)) * time.Second
		s.clips[url] = length
	}
	opts := []media.ClipOption{media.WithLoadDelay(time.Duration(s.Rng.Intn(400)) * time.Millisecond)}
	if s.Rng.Float64() < s.Config.OfflineProbability {
		opts = append(opts, media.WithLoadFailure())
	}
	return media.NewClip(s.Clock, length, opts...)
}

// Run simulates Config.SimulationDuration of viewing, on the virtual clock or
// in real time when Config.Realtime is set.
func (s *Simulator) Run(ctx context.Context) (Summary, error) {
	log.Printf("Simulation starts with %d restaurants (session %s)", s.Feed.Len(), s.Recorder.SessionID())

	var bar *progressbar.ProgressBar
	if s.Config.ShowProgress {
		bar = progressbar.NewOptions64(
			int64(s.Config.SimulationDuration/time.Second),
			progressbar.OptionSetDescription("simulating"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
		)
	}
	progress := s.Clock.Every(time.Second, func() { s.showProgress(bar) })
	defer progress.Stop()

	s.scheduleNextAction()
	defer func() {
		if s.next != nil {
			s.next.Stop()
		}
	}()

	var err error
	if s.Config.Realtime {
		err = s.runRealtime(ctx)
	} else {
		err = s.runVirtual(ctx)
	}
	s.Feed.Close()

	if bar != nil {
		_ = bar.Finish()
	}
	summary := s.Summary()
	actions := 0
	for _, n := range summary.Actions {
		actions += n
	}
	log.Printf("Simulation completed after %s: %d actions, %d cart items, total %.2f",
		summary.Elapsed, actions, summary.CartItems, summary.CartTotal)
	return summary, err
}

func (s *Simulator) runVirtual(ctx context.Context) error {
	step := s.Config.TickInterval
	if step <= 0 {
		step = 50 * time.Millisecond
	}
	for s.Elapsed() < s.Config.SimulationDuration {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Clock.Advance(step)
	}
	return nil
}

func (s *Simulator) runRealtime(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.Config.SimulationDuration)
	defer cancel()

	err := clock.Run(ctx, s.Clock, s.Config.TickInterval)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (s *Simulator) Elapsed() time.Duration {
	return s.Clock.Now().Sub(s.start)
}

func (s *Simulator) showProgress(bar *progressbar.ProgressBar) {
	elapsed := s.Elapsed()
	if bar != nil {
		bar.Describe(s.describe())
		_ = bar.Set64(int64(elapsed / time.Second))
		return
	}
	if elapsed%(30*time.Second) == 0 {
		log.Printf("Simulated time: %s, %s", elapsed, s.describe())
	}
}

func (s *Simulator) describe() string {
	r := s.Feed.Restaurant()
	if r == nil {
		return "empty feed"
	}
	st := s.Feed.Story()
	return fmt.Sprintf("%s dish %d/%d %3.0f%% cart %d", r.Name, st.Index()+1, len(r.Stories), st.Progress(), s.Cart.Count())
}

func (s *Simulator) Summary() Summary {
	actions := make(map[string]int, len(s.Actions))
	for k, v := range s.Actions {
		actions[k] = v
	}
	return Summary{
		SessionID: s.Recorder.SessionID(),
		Elapsed:   s.Elapsed(),
		Actions:   actions,
		Activity:  s.Recorder.Counts(),
		CartItems: s.Cart.Count(),
		CartTotal: s.Cart.Total(),
	}
}

// scheduleNextAction waits an exponentially distributed time with mean
// Config.ActionInterval.
func (s *Simulator) scheduleNextAction() {
	mean := s.Config.ActionInterval
	if mean <= 0 {
		mean = 2 * time.Second
	}
	wait := time.Duration(s.Rng.ExpFloat64() * float64(mean))
	if wait < s.Config.TickInterval {
		wait = s.Config.TickInterval
	}
	s.next = s.Clock.AfterFunc(wait, func() {
		s.act()
		s.scheduleNextAction()
	})
}
