// Package story coordinates one restaurant's dish stories: progress timing,
// tap navigation, hotspot inspection, customization and add to cart.
package story

import (
	"fmt"
	"log"
	"time"

	"github.com/chrisdamba/foodstory/internal/activity"
	"github.com/chrisdamba/foodstory/internal/cart"
	"github.com/chrisdamba/foodstory/internal/clock"
	"github.com/chrisdamba/foodstory/internal/customization"
	"github.com/chrisdamba/foodstory/internal/gesture"
	"github.com/chrisdamba/foodstory/internal/media"
	"github.com/chrisdamba/foodstory/internal/models"
	"github.com/chrisdamba/foodstory/internal/notify"
	"github.com/chrisdamba/foodstory/internal/progress"
)

type Direction int

const (
	Prev Direction = iota
	Next
)

// Deps are the collaborators shared by every coordinator of a feed.
type Deps struct {
	Scheduler      clock.Scheduler
	Customizations *customization.Store
	Cart           *cart.Store
	Notifications  *notify.Queue
	Network        Connectivity

	// Surfaces creates playback surfaces for video media. When nil, videos
	// are timed like images.
	Surfaces media.Factory
	Activity *activity.Recorder
}

type Options struct {
	Tick          time.Duration
	ToastDuration time.Duration
	Width         float64
	Height        float64
	HotspotRadius float64
}

// OptionsFromConfig maps the playback settings of cfg.
func OptionsFromConfig(cfg *models.Config) Options {
	return Options{
		Tick:          cfg.TickInterval,
		ToastDuration: cfg.ToastDuration,
		Width:         cfg.ViewportWidth,
		Height:        cfg.ViewportHeight,
		HotspotRadius: cfg.HotspotRadius,
	}
}

type Coordinator struct {
	restaurant *models.Restaurant
	deps       Deps
	opts       Options

	engine   *progress.Engine
	gestures gesture.Disambiguator

	index       int
	modal       Modal
	mediaLoaded bool
	mediaURL    string
	surface     media.Surface
	unsubscribe func()
	captured    *models.Hotspot
	disposed    bool
}

// New mounts the first dish of restaurant. A nil restaurant or one without
// stories yields an empty coordinator on which every operation is a no-op.
func New(restaurant *models.Restaurant, deps Deps, opts Options) *Coordinator {
	if deps.Network == nil {
		deps.Network = NewStaticNetwork(true)
	}
	if deps.Customizations == nil {
		deps.Customizations = customization.NewStore(nil)
	}
	if deps.Cart == nil {
		deps.Cart = cart.NewStore(nil)
	}
	if deps.Notifications == nil {
		deps.Notifications = notify.NewQueue(deps.Scheduler)
	}
	if opts.HotspotRadius <= 0 {
		opts.HotspotRadius = 24
	}

	c := &Coordinator{restaurant: restaurant, deps: deps, opts: opts}
	c.engine = progress.New(deps.Scheduler,
		progress.WithTick(opts.Tick),
		progress.OnComplete(c.handleComplete),
	)
	c.mount()
	return c
}

func (c *Coordinator) Empty() bool {
	return c.restaurant == nil || len(c.restaurant.Stories) == 0
}

func (c *Coordinator) Restaurant() *models.Restaurant { return c.restaurant }
func (c *Coordinator) Index() int                     { return c.index }
func (c *Coordinator) Modal() Modal                   { return c.modal }
func (c *Coordinator) MediaLoaded() bool              { return c.mediaLoaded }
func (c *Coordinator) Engine() *progress.Engine       { return c.engine }

// MediaURL is the URL being shown, which is the placeholder after a failed
// image load.
func (c *Coordinator) MediaURL() string { return c.mediaURL }

func (c *Coordinator) Dish() *models.Dish {
	if c.disposed || c.Empty() {
		return nil
	}
	return c.restaurant.Dish(c.index)
}

func (c *Coordinator) Progress() float64 { return c.engine.Percent() }

// BarProgress returns one value per dish: 100 for dishes already seen, the
// live percentage for the current dish and 0 for the rest.
func (c *Coordinator) BarProgress() []float64 {
	if c.Empty() {
		return nil
	}
	bars := make([]float64, len(c.restaurant.Stories))
	for i := range bars {
		switch {
		case i < c.index:
			bars[i] = 100
		case i == c.index:
			bars[i] = c.engine.Percent()
		}
	}
	return bars
}

// Navigate moves one dish back or forward. Out of range moves are ignored.
func (c *Coordinator) Navigate(dir Direction) bool {
	if c.disposed || c.Empty() {
		return false
	}
	switch dir {
	case Prev:
		if c.index == 0 {
			return false
		}
		c.index--
	case Next:
		if c.index >= len(c.restaurant.Stories)-1 {
			return false
		}
		c.index++
	default:
		return false
	}
	c.mount()
	return true
}

// mount tears down everything attached to the previous dish and starts the
// current one.
func (c *Coordinator) mount() {
	c.release()
	c.modal = Modal{}
	c.mediaLoaded = false
	c.mediaURL = ""
	c.captured = nil
	c.gestures.Cancel()

	if c.disposed || c.Empty() {
		return
	}
	dish := c.Dish()
	item := dish.PrimaryMedia()
	if item == nil {
		log.Printf("Dish %s has no media, returning to the first dish", dish.DishID)
		if c.index != 0 {
			c.index = 0
			c.mount()
		}
		return
	}
	c.mediaURL = item.URL
	c.record(models.ActivityDishViewed, func(e *activity.Event) { e.Price = dish.BasePrice })

	if item.IsVideo() && c.deps.Surfaces != nil {
		c.surface = c.deps.Surfaces(item.URL)
	}
	if c.surface != nil {
		c.unsubscribe = c.surface.Subscribe(c.onSurfaceEvent)
		c.engine.Start(item, c.surface)
		c.surface.Play()
		return
	}
	c.engine.Start(item, nil)
}

func (c *Coordinator) release() {
	c.engine.Reset()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.surface != nil {
		if closer, ok := c.surface.(interface{ Close() }); ok {
			closer.Close()
		} else {
			c.surface.Pause()
		}
		c.surface = nil
	}
}

func (c *Coordinator) onSurfaceEvent(ev media.Event) {
	switch ev.Type {
	case media.EventLoaded:
		c.mediaLoaded = true
	case media.EventError:
		log.Printf("Error loading video %s: %v", c.mediaURL, ev.Err)
		c.mediaLoaded = true
	}
}

// SetMediaLoaded reports the load result of an image. A failed load swaps in
// the placeholder image and still counts as loaded.
func (c *Coordinator) SetMediaLoaded(ok bool) {
	if c.Dish() == nil {
		return
	}
	if !ok {
		log.Printf("Error loading image %s, using placeholder", c.mediaURL)
		c.mediaURL = models.PlaceholderImageURL
	}
	c.mediaLoaded = true
}

func (c *Coordinator) handleComplete() {
	dish := c.Dish()
	if dish == nil {
		return
	}
	c.record(models.ActivityDishCompleted, func(e *activity.Event) { e.Percent = 100 })
	c.Navigate(Next)
}

// TogglePlayback plays or pauses the current video.
func (c *Coordinator) TogglePlayback() {
	if c.surface == nil || c.modal.Kind == ModalInspecting {
		return
	}
	if c.surface.Paused() {
		c.surface.Play()
	} else {
		c.surface.Pause()
	}
}

func (c *Coordinator) Surface() media.Surface { return c.surface }

// OpenIngredient shows the inspector for an ingredient of the current dish
// and pauses progress and video playback.
func (c *Coordinator) OpenIngredient(ingredientID string) bool {
	dish := c.Dish()
	ing := dish.Ingredient(ingredientID)
	if ing == nil || c.modal.Kind == ModalCustomizing {
		return false
	}
	c.modal = inspecting(ingredientID)
	c.engine.Pause(c.engine.Percent())
	if c.surface != nil {
		c.surface.Pause()
	}
	c.record(models.ActivityIngredientInspected, func(e *activity.Event) {
		e.IngredientID = ingredientID
		e.Percent = c.engine.Percent()
	})
	return true
}

// CloseIngredient hides the inspector and resumes progress and playback.
func (c *Coordinator) CloseIngredient() {
	if c.modal.Kind != ModalInspecting {
		return
	}
	c.modal = Modal{}
	c.engine.Resume()
	// an ended video stays ended; playing it again would rewind with no
	// progress listener attached
	if c.surface != nil && c.engine.State() != progress.Completed {
		c.surface.Play()
	}
}

// Ingredient returns the ingredient being inspected.
func (c *Coordinator) Ingredient() *models.Ingredient {
	if c.modal.Kind != ModalInspecting {
		return nil
	}
	return c.Dish().Ingredient(c.modal.IngredientID)
}

// OpenCustomizationPanel shows the panel without pausing progress. An open
// inspector is closed first.
func (c *Coordinator) OpenCustomizationPanel() bool {
	if c.Dish() == nil {
		return false
	}
	c.CloseIngredient()
	c.modal = Modal{Kind: ModalCustomizing}
	return true
}

func (c *Coordinator) CloseCustomizationPanel() {
	if c.modal.Kind == ModalCustomizing {
		c.modal = Modal{}
	}
}

// Editor edits the customizations of the current dish.
func (c *Coordinator) Editor() *customization.Editor {
	dish := c.Dish()
	if dish == nil {
		return nil
	}
	return customization.NewEditor(c.deps.Customizations, dish, customization.OnChange(func(ingredientID string) {
		c.record(models.ActivityCustomizationSet, func(e *activity.Event) {
			e.IngredientID = ingredientID
			e.Price = c.FinalPrice()
		})
	}))
}

// ModificationCount is the number of customized ingredients on the current dish.
func (c *Coordinator) ModificationCount() int {
	dish := c.Dish()
	if dish == nil {
		return 0
	}
	return len(c.deps.Customizations.AllForDish(dish.DishID))
}

// FinalPrice is the base price plus every customization price change. It is
// recomputed from the store on each call.
func (c *Coordinator) FinalPrice() float64 {
	dish := c.Dish()
	if dish == nil {
		return 0
	}
	total := dish.BasePrice
	for _, rec := range c.deps.Customizations.AllForDish(dish.DishID) {
		total += rec.PriceChange
	}
	return models.RoundMoney(total)
}

// ConfirmAddToCart adds the current dish with its customizations to the
// cart, clears those customizations and shows a notification with an undo
// action. It returns the new line item id, or false when offline or there is
// no dish.
func (c *Coordinator) ConfirmAddToCart() (string, bool) {
	dish := c.Dish()
	if dish == nil {
		return "", false
	}
	if !c.deps.Network.Online() {
		log.Printf("Rejected add to cart for dish %s while offline", dish.DishID)
		c.deps.Notifications.Show("You're offline. Connect to the internet to add items.", notify.KindError, c.opts.ToastDuration, nil)
		return "", false
	}

	item := models.CartLineItem{
		DishID:         dish.DishID,
		DishName:       dish.DishName,
		BasePrice:      dish.BasePrice,
		FinalPrice:     c.FinalPrice(),
		RestaurantID:   c.restaurant.ID,
		RestaurantName: c.restaurant.Name,
		Customizations: c.deps.Customizations.AllForDish(dish.DishID),
	}
	id := c.deps.Cart.Add(item)
	c.deps.Customizations.ClearForDish(dish.DishID)
	c.record(models.ActivityCartItemAdded, func(e *activity.Event) {
		e.CartItemID = id
		e.Price = item.FinalPrice
	})

	cartStore, recorder := c.deps.Cart, c.deps.Activity
	restaurantID := c.restaurant.ID
	c.deps.Notifications.Show(fmt.Sprintf("%s added to cart", dish.DishName), notify.KindSuccess, c.opts.ToastDuration, func() {
		if cartStore.RemoveByID(id) {
			recorder.Record(activity.Event{
				Type:         models.ActivityCartItemRemoved,
				RestaurantID: restaurantID,
				DishID:       item.DishID,
				CartItemID:   id,
				Price:        item.FinalPrice,
			})
		}
	})
	return id, true
}

// PointerDown starts a pointer sequence. A sequence that starts on a hotspot
// is captured and reported as consumed so it never reaches navigation or the
// feed.
func (c *Coordinator) PointerDown(p gesture.Point) bool {
	c.captured = nil
	dish := c.Dish()
	if dish == nil {
		return false
	}
	if item := dish.PrimaryMedia(); item != nil && c.modal.Kind == ModalNone {
		if h := gesture.HitHotspot(item.Hotspots, p, c.opts.Width, c.opts.Height, c.opts.HotspotRadius); h != nil {
			c.captured = h
			c.gestures.Cancel()
			return true
		}
	}
	c.gestures.Down(p)
	return false
}

// PointerMove reports whether the sequence is captured by a hotspot.
func (c *Coordinator) PointerMove(p gesture.Point) bool {
	if c.captured != nil {
		return true
	}
	c.gestures.Move(p)
	return false
}

// PointerUp ends the sequence. Captured sequences that end on the same
// hotspot open its ingredient. Otherwise taps navigate when no overlay is
// open, and a center tap dismisses the inspector.
func (c *Coordinator) PointerUp(p gesture.Point) (gesture.Intent, bool) {
	if h := c.captured; h != nil {
		c.captured = nil
		item := c.Dish().PrimaryMedia()
		if item == nil {
			return gesture.IntentNone, true
		}
		hit := gesture.HitHotspot(item.Hotspots, p, c.opts.Width, c.opts.Height, c.opts.HotspotRadius)
		if hit != nil && hit.ID == h.ID {
			c.OpenIngredient(h.IngredientID)
		}
		return gesture.IntentNone, true
	}

	intent := c.gestures.Up(p, c.opts.Width)
	if c.Dish() == nil {
		return intent, false
	}
	switch c.modal.Kind {
	case ModalNone:
		switch intent {
		case gesture.IntentPrev:
			c.Navigate(Prev)
		case gesture.IntentNext:
			c.Navigate(Next)
		}
	case ModalInspecting:
		if intent == gesture.IntentCenter {
			c.CloseIngredient()
		}
	}
	return intent, false
}

// PointerCancel drops the current sequence.
func (c *Coordinator) PointerCancel() {
	c.captured = nil
	c.gestures.Cancel()
}

// Dispose releases every timer and listener. The coordinator is empty
// afterwards.
func (c *Coordinator) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.release()
	c.modal = Modal{}
	c.captured = nil
}

func (c *Coordinator) record(eventType string, fill func(*activity.Event)) {
	if c.deps.Activity == nil {
		return
	}
	e := activity.Event{Type: eventType}
	if c.restaurant != nil {
		e.RestaurantID = c.restaurant.ID
	}
	if dish := c.Dish(); dish != nil {
		e.DishID = dish.DishID
	}
	if fill != nil {
		fill(&e)
	}
	c.deps.Activity.Record(e)
}
