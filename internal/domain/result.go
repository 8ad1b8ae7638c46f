package domain

// AddResult is the outcome of adding an entry to a cart.
// The zero value AddUnknown accompanies errors and carries no notification.
type AddResult int

const (
	AddUnknown AddResult = iota
	AddOK
	AddDuplicate
	AddLimit
)

func (r AddResult) String() string {
	switch r {
	case AddOK:
		return "ok"
	case AddDuplicate:
		return "duplicate"
	case AddLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// Message is the user facing notification for r.
func (r AddResult) Message() string {
	switch r {
	case AddOK:
		return "added to cart"
	case AddDuplicate:
		return "already in cart"
	case AddLimit:
		return "cart is full"
	default:
		return ""
	}
}
