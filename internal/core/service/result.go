package service

import "errors"

// Operation names a CartStore mutation for logging and user messages.
type Operation int

const (
	OperationAdd Operation = iota
	OperationRemove
	OperationUpdate
)

func (o Operation) String() string {
	switch o {
	case OperationAdd:
		return "add_product"
	case OperationRemove:
		return "remove_product"
	case OperationUpdate:
		return "update_product_amount"
	default:
		return "unknown"
	}
}

// Outcome is the caller-visible classification of an operation result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeOutOfStock
	OutcomeNotFound
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeOutOfStock:
		return "out_of_stock"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "transport_error"
	}
}

// Classify maps an error returned by CartStore onto an Outcome. A product
// the catalog does not know is a failed fetch, not a missing line item, so
// it classifies as a transport error.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrOutOfStock):
		return OutcomeOutOfStock
	case errors.Is(err, ErrProductNotInCart):
		return OutcomeNotFound
	default:
		return OutcomeTransportError
	}
}

const (
	MsgOutOfStock     = "Requested quantity is out of stock"
	MsgAddFailed      = "Failed to add product"
	MsgRemoveNotFound = "Failed to remove product"
	MsgRemoveFailed   = "Could not remove product"
	MsgUpdateFailed   = "Failed to change product quantity"
)

// Message returns the user-facing text for a failed operation, or "" for nil.
func Message(op Operation, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrOutOfStock) {
		return MsgOutOfStock
	}

	switch op {
	case OperationAdd:
		return MsgAddFailed
	case OperationRemove:
		if errors.Is(err, ErrProductNotInCart) {
			return MsgRemoveNotFound
		}
		return MsgRemoveFailed
	default:
		return MsgUpdateFailed
	}
}
