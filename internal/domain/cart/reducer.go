// internal/domain/cart/reducer.go
package cart

import (
	"fmt"
	"slices"
)

// Action is a cart operation. The set of actions is closed; Reduce handles
// every one of them.
type Action interface {
	isAction()
}

// AddItem adds Quantity of Product, merging into an existing line.
// A Quantity of zero or less adds one.
type AddItem struct {
	Product  Product
	Quantity int
}

// RemoveItem deletes the line for ProductID
type RemoveItem struct {
	ProductID string
}

// UpdateQuantity sets the quantity of a line; zero or less removes it
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// ClearCart empties the cart
type ClearCart struct{}

// LoadCart replaces the cart with previously persisted items
type LoadCart struct {
	Items []LineItem
}

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ClearCart) isAction()      {}
func (LoadCart) isAction()       {}

// Reduce applies action to state and returns the new state along with the
// notification the action produces, if any. state is never modified.
// Pointer actions are applied as their values; nil and unknown actions leave
// state as it is.
func Reduce(state State, action Action) (State, *Notification) {
	action = deref(action)

	switch a := action.(type) {
	case AddItem:
		return reduceAdd(state, a)
	case RemoveItem:
		items := slices.DeleteFunc(slices.Clone(state.Items), func(item LineItem) bool {
			return item.ProductID == a.ProductID
		})
		return NewState(items), &Notification{
			Kind:      NotificationInfo,
			Message:   "Item removed from cart",
			ProductID: a.ProductID,
		}
	case UpdateQuantity:
		return reduceUpdate(state, a)
	case ClearCart:
		return NewState(nil), &Notification{
			Kind:    NotificationInfo,
			Message: "Cart cleared",
		}
	case LoadCart:
		return NewState(normalize(a.Items)), nil
	default:
		return state, nil
	}
}

func deref(action Action) Action {
	switch a := action.(type) {
	case *AddItem:
		if a != nil {
			return *a
		}
	case *RemoveItem:
		if a != nil {
			return *a
		}
	case *UpdateQuantity:
		if a != nil {
			return *a
		}
	case *ClearCart:
		if a != nil {
			return *a
		}
	case *LoadCart:
		if a != nil {
			return *a
		}
	default:
		return action
	}
	return nil
}

func reduceAdd(state State, a AddItem) (State, *Notification) {
	if a.Product.ProductID == "" {
		return state, nil
	}

	quantity := a.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	items := slices.Clone(state.Items)
	if i := state.indexOf(a.Product.ProductID); i >= 0 {
		items[i].Quantity += quantity
	} else {
		items = append(items, a.Product.lineItem(quantity))
	}

	name := a.Product.Name
	if name == "" {
		name = "Item"
	}

	return NewState(items), &Notification{
		Kind:      NotificationSuccess,
		Message:   fmt.Sprintf("%s added to cart", name),
		ProductID: a.Product.ProductID,
	}
}

func reduceUpdate(state State, a UpdateQuantity) (State, *Notification) {
	items := slices.Clone(state.Items)

	if a.Quantity <= 0 {
		items = slices.DeleteFunc(items, func(item LineItem) bool {
			return item.ProductID == a.ProductID
		})
		return NewState(items), &Notification{
			Kind:      NotificationInfo,
			Message:   "Item removed from cart",
			ProductID: a.ProductID,
		}
	}

	if i := state.indexOf(a.ProductID); i >= 0 {
		items[i].Quantity = a.Quantity
	}

	return NewState(items), &Notification{
		Kind:      NotificationSuccess,
		Message:   "Cart updated",
		ProductID: a.ProductID,
	}
}

// normalize drops unusable persisted lines and folds duplicates together so a
// loaded cart satisfies the same invariants as one built by AddItem.
func normalize(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			continue
		}
		if i, ok := index[item.ProductID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(out)
		out = append(out, item)
	}

	return out
}
