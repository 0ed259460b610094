package service

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rl1809/cart-store/internal/core/domain"
)

func TestEncodeCart_Shape(t *testing.T) {
	raw, err := EncodeCart([]domain.LineItem{
		domain.NewLineItem(domain.Product{ID: 1, Title: "Tênis", Price: 179.9, Image: "a.jpg"}, 2),
	})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	want := `[{"id":1,"title":"Tênis","price":179.9,"image":"a.jpg","amount":2}]`
	if raw != want {
		t.Errorf("unexpected stored form:\n got %s\nwant %s", raw, want)
	}
}

func TestEncodeCart_NilIsEmptyArray(t *testing.T) {
	raw, err := EncodeCart(nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if raw != "[]" {
		t.Errorf("expected [], got %s", raw)
	}
}

func TestDecodeCart_RoundTripKeepsOrder(t *testing.T) {
	items := []domain.LineItem{
		domain.NewLineItem(domain.Product{ID: 3, Title: "c"}, 1),
		domain.NewLineItem(domain.Product{ID: 1, Title: "a"}, 4),
	}
	raw, _ := EncodeCart(items)

	got, err := DecodeCart(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("round trip differs (-want +got):\n%s", diff)
	}
}

func TestDecodeCart_Null(t *testing.T) {
	got, err := DecodeCart("null")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil cart, got %#v", got)
	}
}

func TestDecodeCart_Invalid(t *testing.T) {
	cases := []string{
		``,
		`not json`,
		`{"id":1,"amount":1}`,
		`[{"id":1,"amount":"two"}]`,
		`[{"id":-4,"amount":1}]`,
		`[{"id":1}]`,
		`[{"id":1,"amount":1},{"id":2,"amount":1},{"id":1,"amount":3}]`,
	}
	for _, raw := range cases {
		if _, err := DecodeCart(raw); !errors.Is(err, ErrInvalidCart) {
			t.Errorf("DecodeCart(%q): expected ErrInvalidCart, got %v", raw, err)
		}
	}
}
