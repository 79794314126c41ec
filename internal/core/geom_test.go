package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestCardActions(t *testing.T) {
	for i := 0; i < 4; i++ {
		a := CardAction(i)
		got, ok := a.CardIndex()
		if !ok || got != i {
			t.Errorf("CardAction(%d).CardIndex() = (%d, %v), expected (%d, true)", i, got, ok, i)
		}
	}

	if CardAction(4) != ActionNone {
		t.Errorf("CardAction(4) should be ActionNone")
	}
	if _, ok := ActionFlee.CardIndex(); ok {
		t.Errorf("ActionFlee should not address a card slot")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionFight)

	if !f.Has(ActionFight) {
		t.Error("frame should contain ActionFight")
	}
	if f.Has(ActionFlee) {
		t.Error("frame should not contain ActionFlee")
	}

	f.Clear()
	if f.Has(ActionFight) {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionFight) {
		t.Error("zero frame should report no actions")
	}
}
