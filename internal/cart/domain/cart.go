package domain

import "github.com/google/uuid"

// LineItem is one product entry in the cart. ID is a local identifier minted
// when the item first enters the cart; ProductID is the foreign key to the
// remote catalog. At most one line item exists per ProductID.
type LineItem struct {
	ID        string
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int
	MaxStock  int
	ImageRef  string
}

// ProductInfo carries the catalog data required to create a line item.
// There is no placeholder fallback: callers must resolve the product before
// adding it to the cart.
type ProductInfo struct {
	Name     string
	Price    int64
	Stock    int
	ImageRef string
}

// State is the cart for the current session. Items keep insertion order.
// Totals are derived, never stored.
type State struct {
	Items     []LineItem
	IsLoading bool
	Err       string
}

func (s State) TotalItems() int {
	total := 0
	for _, it := range s.Items {
		total += it.Quantity
	}
	return total
}

func (s State) TotalPrice() int64 {
	var total int64
	for _, it := range s.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

func (s State) Find(productID string) (LineItem, bool) {
	for _, it := range s.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return LineItem{}, false
}

type Action interface {
	isAction()
}

// AddToCart merges into an existing line item by incrementing its quantity,
// or appends a new one built from Product.
type AddToCart struct {
	ProductID string
	Quantity  int
	Product   ProductInfo
}

// RemoveFromCart deletes the matching line item. Absent product is a no-op.
type RemoveFromCart struct {
	ProductID string
}

// UpdateQuantity replaces the quantity of the matching line item. It does
// not reject non-positive values; callers route those to RemoveFromCart.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

type ClearCart struct{}

type SetLoading struct {
	Value bool
}

// SetError stores a user-facing error message and drops the loading flag.
// An empty message clears the error.
type SetError struct {
	Message string
}

// LoadCartSuccess replaces the items wholesale with a server-provided
// collection, clearing error and loading.
type LoadCartSuccess struct {
	Items []LineItem
}

func (AddToCart) isAction()       {}
func (RemoveFromCart) isAction()  {}
func (UpdateQuantity) isAction()  {}
func (ClearCart) isAction()       {}
func (SetLoading) isAction()      {}
func (SetError) isAction()        {}
func (LoadCartSuccess) isAction() {}

// Reduce applies one action to the state and returns the next state. It is
// pure aside from minting line-item IDs: no validation, no stock clamping,
// no I/O. Quantity bounds are the caller's job; stock is enforced server
// side.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddToCart:
		if _, ok := state.Find(a.ProductID); ok {
			items := make([]LineItem, len(state.Items))
			for i, it := range state.Items {
				if it.ProductID == a.ProductID {
					it.Quantity += a.Quantity
				}
				items[i] = it
			}
			state.Items = items
			return state
		}

		items := make([]LineItem, 0, len(state.Items)+1)
		items = append(items, state.Items...)
		items = append(items, LineItem{
			ID:        uuid.NewString(),
			ProductID: a.ProductID,
			Name:      a.Product.Name,
			UnitPrice: a.Product.Price,
			Quantity:  a.Quantity,
			MaxStock:  a.Product.Stock,
			ImageRef:  a.Product.ImageRef,
		})
		state.Items = items
		return state

	case RemoveFromCart:
		items := make([]LineItem, 0, len(state.Items))
		for _, it := range state.Items {
			if it.ProductID != a.ProductID {
				items = append(items, it)
			}
		}
		state.Items = items
		return state

	case UpdateQuantity:
		items := make([]LineItem, len(state.Items))
		for i, it := range state.Items {
			if it.ProductID == a.ProductID {
				it.Quantity = a.Quantity
			}
			items[i] = it
		}
		state.Items = items
		return state

	case ClearCart:
		state.Items = []LineItem{}
		return state

	case SetLoading:
		state.IsLoading = a.Value
		return state

	case SetError:
		state.Err = a.Message
		state.IsLoading = false
		return state

	case LoadCartSuccess:
		items := make([]LineItem, len(a.Items))
		copy(items, a.Items)
		state.Items = items
		state.IsLoading = false
		state.Err = ""
		return state

	default:
		return state
	}
}
