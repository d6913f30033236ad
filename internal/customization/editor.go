package customization

import (
	"errors"
	"fmt"

	"github.com/chrisdamba/foodstory/internal/models"
)

var (
	ErrUnknownIngredient   = errors.New("unknown ingredient")
	ErrNotCustomizable     = errors.New("ingredient is not customizable")
	ErrUnknownSubstitution = errors.New("unknown substitution")
	ErrIngredientRemoved   = errors.New("ingredient is removed")
)

// IngredientState is the effective state of an ingredient on a dish.
type IngredientState struct {
	Quantity     int
	Substitution *models.Substitution
	Removed      bool
}

// Editor applies quantity, substitution and removal changes for one dish and
// computes the resulting price change. It keeps the store free of records
// that describe the default state.
type Editor struct {
	store    *Store
	dish     *models.Dish
	onChange func(ingredientID string)
}

type EditorOption func(*Editor)

// OnChange is called after every successful mutation with the ingredient id,
// or with "" after Reset.
func OnChange(fn func(ingredientID string)) EditorOption {
	return func(e *Editor) { e.onChange = fn }
}

func NewEditor(store *Store, dish *models.Dish, opts ...EditorOption) *Editor {
	e := &Editor{store: store, dish: dish}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) changed(ingredientID string) {
	if e.onChange != nil {
		e.onChange(ingredientID)
	}
}

func (e *Editor) Dish() *models.Dish { return e.dish }

func (e *Editor) ingredient(id string) (*models.Ingredient, error) {
	ing := e.dish.Ingredient(id)
	if ing == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIngredient, id)
	}
	return ing, nil
}

func (e *Editor) state(ing *models.Ingredient) IngredientState {
	st := IngredientState{Quantity: ing.BaseQuantity()}
	rec, ok := e.store.Get(e.dish.DishID, ing.ID)
	if !ok {
		return st
	}
	if rec.Quantity != nil {
		st.Quantity = *rec.Quantity
	}
	st.Substitution = rec.Substitution
	st.Removed = rec.Removed
	if st.Removed {
		st.Quantity = 0
	}
	return st
}

func (e *Editor) State(ingredientID string) (IngredientState, error) {
	ing, err := e.ingredient(ingredientID)
	if err != nil {
		return IngredientState{}, err
	}
	return e.state(ing), nil
}

// PriceChange is (quantity - base) * priceImpact plus the substitution delta
// for every unit of the current quantity. A removed ingredient has quantity 0.
func PriceChange(ing *models.Ingredient, st IngredientState) float64 {
	q := st.Quantity
	if st.Removed {
		q = 0
	}
	change := float64(q-ing.BaseQuantity()) * ing.PriceImpact
	if st.Substitution != nil {
		change += st.Substitution.PriceChange * float64(q)
	}
	return models.RoundMoney(change)
}

func (e *Editor) apply(ing *models.Ingredient, st IngredientState) {
	defer e.changed(ing.ID)
	if !st.Removed && st.Substitution == nil && st.Quantity == ing.BaseQuantity() {
		e.store.Remove(e.dish.DishID, ing.ID)
		return
	}
	q := st.Quantity
	if st.Removed {
		q = 0
	}
	e.store.Set(e.dish.DishID, ing.ID, models.CustomizationRecord{
		IngredientName: ing.Name,
		Quantity:       &q,
		Substitution:   st.Substitution,
		Removed:        st.Removed,
		PriceChange:    PriceChange(ing, st),
	})
}

// ChangeQuantity adds delta to the current quantity. Reaching zero removes
// the ingredient.
func (e *Editor) ChangeQuantity(ingredientID string, delta int) error {
	ing, err := e.ingredient(ingredientID)
	if err != nil {
		return err
	}
	st := e.state(ing)
	if st.Removed {
		return fmt.Errorf("%w: %s", ErrIngredientRemoved, ingredientID)
	}
	st.Quantity += delta
	if st.Quantity <= 0 {
		st = IngredientState{Removed: true}
	}
	e.apply(ing, st)
	return nil
}

// Replace selects a substitution by id. An empty id keeps the original ingredient.
func (e *Editor) Replace(ingredientID, substitutionID string) error {
	ing, err := e.ingredient(ingredientID)
	if err != nil {
		return err
	}
	if !ing.Customizable {
		return fmt.Errorf("%w: %s", ErrNotCustomizable, ingredientID)
	}
	st := e.state(ing)
	if st.Removed {
		return fmt.Errorf("%w: %s", ErrIngredientRemoved, ingredientID)
	}
	st.Substitution = nil
	if substitutionID != "" {
		sub := ing.Substitution(substitutionID)
		if sub == nil {
			return fmt.Errorf("%w: %s on %s", ErrUnknownSubstitution, substitutionID, ingredientID)
		}
		cp := *sub
		st.Substitution = &cp
	}
	e.apply(ing, st)
	return nil
}

func (e *Editor) Remove(ingredientID string) error {
	ing, err := e.ingredient(ingredientID)
	if err != nil {
		return err
	}
	if !ing.Customizable {
		return fmt.Errorf("%w: %s", ErrNotCustomizable, ingredientID)
	}
	e.apply(ing, IngredientState{Removed: true})
	return nil
}

// Restore returns the ingredient to its default state.
func (e *Editor) Restore(ingredientID string) error {
	ing, err := e.ingredient(ingredientID)
	if err != nil {
		return err
	}
	e.store.Remove(e.dish.DishID, ing.ID)
	e.changed(ing.ID)
	return nil
}

// Reset drops every customization of the dish.
func (e *Editor) Reset() {
	e.store.ClearForDish(e.dish.DishID)
	e.changed("")
}

// RunningAdjustment is the total price change currently applied to the dish.
func (e *Editor) RunningAdjustment() float64 {
	return e.store.Total(e.dish.DishID)
}
