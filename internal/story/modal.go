package story

type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalInspecting
	ModalCustomizing
)

func (k ModalKind) String() string {
	switch k {
	case ModalInspecting:
		return "inspecting"
	case ModalCustomizing:
		return "customizing"
	}
	return "none"
}

// Modal is the overlay currently shown over the story. At most one is open.
type Modal struct {
	Kind ModalKind
	// IngredientID is set for ModalInspecting only.
	IngredientID string
}

func inspecting(ingredientID string) Modal {
	return Modal{Kind: ModalInspecting, IngredientID: ingredientID}
}
