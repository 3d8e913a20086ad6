package core

import (
	"testing"
	"time"
)

func TestInputFrameBuffersEvents(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionFire)
	f.AddPointer(PointerSample{X: 1, Y: 2, Kind: PointerPress})
	f.AddPointer(PointerSample{X: 3, Y: 4, Kind: PointerDrag})
	f.AddRune('7')
	f.At = time.Unix(10, 0)

	if !f.Has(ActionFire) {
		t.Error("expected Fire to be set")
	}
	if len(f.Pointer) != 2 || f.Pointer[1].X != 3 {
		t.Errorf("expected two buffered pointer samples in order, got %+v", f.Pointer)
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionFire) || len(f.Pointer) != 0 || len(f.Runes) != 0 || !f.At.IsZero() {
		t.Errorf("Clear should drop all buffered input, got %+v", f)
	}
	if !clone.Has(ActionFire) || len(clone.Pointer) != 2 || clone.Runes[0] != '7' {
		t.Errorf("Clone should be independent of the source, got %+v", clone)
	}
}

func TestInputFrameChoice(t *testing.T) {
	f := NewInputFrame()
	if f.Choice() != -1 {
		t.Errorf("empty frame Choice() = %d, expected -1", f.Choice())
	}
	f.Set(ActionChoice3)
	if f.Choice() != 2 {
		t.Errorf("Choice() = %d, expected 2", f.Choice())
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	p2 := NewInputFrame()
	p2.Set(ActionChoice1)
	m.SetPlayer(Player2, p2)
	m.Stamp(time.Unix(5, 0))

	if m.Player1().Has(ActionChoice1) {
		t.Error("Player1 should have no input")
	}
	if !m.Player2().Has(ActionChoice1) {
		t.Error("Player2 should have Choice1")
	}
	if !m.Player2().At.Equal(time.Unix(5, 0)) {
		t.Error("Stamp should set the tick time")
	}

	m.Clear()
	if m.Player2().Has(ActionChoice1) {
		t.Error("Clear should reset player input")
	}
}
