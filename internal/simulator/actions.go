package simulator

import (
	"github.com/chrisdamba/foodstory/internal/gesture"
	"github.com/chrisdamba/foodstory/internal/story"
)

const (
	ActionTapNext     = "tap_next"
	ActionTapPrev     = "tap_prev"
	ActionSwipeUp     = "swipe_up"
	ActionSwipeDown   = "swipe_down"
	ActionHotspot     = "hotspot"
	ActionCustomize   = "customize"
	ActionAddToCart   = "add_to_cart"
	ActionUndo        = "undo"
	ActionTogglePause = "toggle_pause"
	ActionGoOffline   = "go_offline"
	ActionGoOnline    = "go_online"
)

type weightedAction struct {
	name   string
	weight int
}

var actionWeights = []weightedAction{
	{ActionTapNext, 30},
	{ActionTapPrev, 8},
	{ActionSwipeUp, 12},
	{ActionSwipeDown, 5},
	{ActionHotspot, 18},
	{ActionCustomize, 12},
	{ActionAddToCart, 8},
	{ActionUndo, 3},
	{ActionTogglePause, 4},
}

func (s *Simulator) pickAction() string {
	total := 0
	for _, a := range actionWeights {
		total += a.weight
	}
	n := s.Rng.Intn(total)
	for _, a := range actionWeights {
		if n < a.weight {
			return a.name
		}
		n -= a.weight
	}
	return ActionTapNext
}

// act performs one viewer action. Connectivity flips first so add to cart
// sometimes hits the offline path.
func (s *Simulator) act() {
	s.updateNetwork()

	st := s.Feed.Story()
	// an open modal is closed before anything else
	switch st.Modal().Kind {
	case story.ModalInspecting:
		s.tapCenter()
		return
	case story.ModalCustomizing:
		if s.Rng.Intn(2) == 0 {
			s.count(ActionAddToCart)
			st.ConfirmAddToCart()
		}
		st.CloseCustomizationPanel()
		return
	}

	switch action := s.pickAction(); action {
	case ActionTapNext:
		s.count(action)
		s.tap(s.width() * 0.9)
	case ActionTapPrev:
		s.count(action)
		s.tap(s.width() * 0.1)
	case ActionSwipeUp:
		s.count(action)
		s.swipe(0.75, 0.25)
	case ActionSwipeDown:
		s.count(action)
		s.swipe(0.25, 0.75)
	case ActionHotspot:
		if s.tapHotspot() {
			s.count(action)
		}
	case ActionCustomize:
		if s.customize() {
			s.count(action)
		}
	case ActionAddToCart:
		s.count(action)
		st.ConfirmAddToCart()
	case ActionUndo:
		if s.undoLast() {
			s.count(action)
		}
	case ActionTogglePause:
		s.count(action)
		st.TogglePlayback()
	}
}

func (s *Simulator) count(action string) {
	s.Actions[action]++
}

func (s *Simulator) updateNetwork() {
	online := s.Rng.Float64() >= s.Config.OfflineProbability
	if online == s.Network.Online() {
		return
	}
	s.Network.SetOnline(online)
	if online {
		s.count(ActionGoOnline)
	} else {
		s.count(ActionGoOffline)
	}
}

func (s *Simulator) width() float64  { return s.Config.ViewportWidth }
func (s *Simulator) height() float64 { return s.Config.ViewportHeight }

func (s *Simulator) tap(x float64) gesture.Intent {
	p := gesture.Point{X: x, Y: s.height() / 2}
	s.Feed.PointerDown(p)
	intent, _ := s.Feed.PointerUp(p)
	return intent
}

func (s *Simulator) tapCenter() {
	s.tap(s.width() / 2)
}

func (s *Simulator) swipe(fromY, toY float64) gesture.Swipe {
	x := s.width() / 2
	s.Feed.PointerDown(gesture.Point{X: x, Y: s.height() * fromY})
	s.Feed.PointerMove(gesture.Point{X: x, Y: s.height() * (fromY + toY) / 2})
	_, sw := s.Feed.PointerUp(gesture.Point{X: x, Y: s.height() * toY})
	return sw
}

// tapHotspot presses and releases on a random hotspot of the current dish.
func (s *Simulator) tapHotspot() bool {
	dish := s.Feed.Story().Dish()
	m := dish.PrimaryMedia()
	if m == nil || len(m.Hotspots) == 0 {
		return false
	}
	h := m.Hotspots[s.Rng.Intn(len(m.Hotspots))]
	p := gesture.Point{X: h.X * s.width(), Y: h.Y * s.height()}
	s.Feed.PointerDown(p)
	s.Feed.PointerUp(p)
	return s.Feed.Story().Modal().Kind == story.ModalInspecting
}

// customize opens the panel and applies one random edit to a customizable
// ingredient. The panel stays open until the next action.
func (s *Simulator) customize() bool {
	st := s.Feed.Story()
	dish := st.Dish()
	if dish == nil || !st.OpenCustomizationPanel() {
		return false
	}
	var candidates []string
	for _, ing := range dish.Ingredients {
		if ing.Customizable {
			candidates = append(candidates, ing.ID)
		}
	}
	if len(candidates) == 0 {
		return true
	}

	editor := st.Editor()
	id := candidates[s.Rng.Intn(len(candidates))]
	ing := dish.Ingredient(id)
	switch s.Rng.Intn(4) {
	case 0:
		_ = editor.ChangeQuantity(id, 1)
	case 1:
		_ = editor.ChangeQuantity(id, -1)
	case 2:
		if len(ing.Substitutions) > 0 {
			_ = editor.Replace(id, ing.Substitutions[s.Rng.Intn(len(ing.Substitutions))].ID)
		}
	case 3:
		if state, err := editor.State(id); err == nil && state.Removed {
			_ = editor.Restore(id)
		} else {
			_ = editor.Remove(id)
		}
	}
	return true
}

// undoLast triggers the undo action of the newest notification offering one.
func (s *Simulator) undoLast() bool {
	active := s.Notifications.Active()
	for i := len(active) - 1; i >= 0; i-- {
		if active[i].HasUndo {
			return s.Notifications.Undo(active[i].ID)
		}
	}
	return false
}
