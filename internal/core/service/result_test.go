package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rl1809/cart-store/internal/port"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeSuccess},
		{ErrOutOfStock, OutcomeOutOfStock},
		{fmt.Errorf("wrapped: %w", ErrOutOfStock), OutcomeOutOfStock},
		{ErrProductNotInCart, OutcomeNotFound},
		{fmt.Errorf("get product 9: %w", port.ErrNotFound), OutcomeTransportError},
		{errors.New("dial tcp: connection refused"), OutcomeTransportError},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestMessage(t *testing.T) {
	transport := errors.New("boom")
	cases := []struct {
		op   Operation
		err  error
		want string
	}{
		{OperationAdd, nil, ""},
		{OperationAdd, ErrOutOfStock, MsgOutOfStock},
		{OperationAdd, transport, MsgAddFailed},
		{OperationRemove, ErrProductNotInCart, MsgRemoveNotFound},
		{OperationRemove, transport, MsgRemoveFailed},
		{OperationUpdate, ErrOutOfStock, MsgOutOfStock},
		{OperationUpdate, transport, MsgUpdateFailed},
	}
	for _, tc := range cases {
		if got := Message(tc.op, tc.err); got != tc.want {
			t.Errorf("Message(%s, %v) = %q, want %q", tc.op, tc.err, got, tc.want)
		}
	}
}
