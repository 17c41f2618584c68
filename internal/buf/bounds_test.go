package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if v, ok := AddOverflowSafe(1, 2); !ok || v != 3 {
		t.Fatalf("AddOverflowSafe(1,2) = %d, %v", v, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if v, ok := MulOverflowSafe(6, 7); !ok || v != 42 {
		t.Fatalf("MulOverflowSafe(6,7) = %d, %v", v, ok)
	}
	if v, ok := MulOverflowSafe(0, math.MaxInt); !ok || v != 0 {
		t.Fatalf("MulOverflowSafe(0,max) = %d, %v", v, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2, 3); ok {
		t.Fatalf("expected overflow")
	}
}

func TestCheckListBounds(t *testing.T) {
	// A 10-channel table of 6-byte entries inside a 100-byte record.
	end, err := CheckListBounds(100, 20, 10, 6)
	if err != nil || end != 80 {
		t.Fatalf("CheckListBounds = %d, %v", end, err)
	}
	if _, err := CheckListBounds(100, 60, 10, 6); err == nil {
		t.Fatalf("expected bounds error")
	}
	if _, err := CheckListBounds(100, -1, 1, 1); err == nil {
		t.Fatalf("expected negative offset error")
	}
	if _, err := CheckListBounds(100, 0, math.MaxInt, 2); err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestSliceHas(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	if s, ok := Slice(b, 1, 2); !ok || len(s) != 2 || s[0] != 2 {
		t.Fatalf("Slice(1,2) = %v, %v", s, ok)
	}
	if _, ok := Slice(b, 3, 2); ok {
		t.Fatalf("Slice past end should fail")
	}
	if Has(b, 0, 5) || !Has(b, 4, 0) {
		t.Fatalf("Has bounds wrong")
	}
}
