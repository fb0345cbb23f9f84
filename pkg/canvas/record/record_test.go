package record

import (
	"encoding/json"
	"testing"
)

func TestRecorderOps(t *testing.T) {
	r := New()
	r.Resize(100, 50, 2)
	r.BeginPath()
	r.MoveTo(1, 2)
	r.CubicTo(1, 2, 3, 4, 5, 6)
	r.SetStrokeColor("#fff")
	r.Stroke()
	r.FillText("hi", 7, 8)

	if len(r.Ops) != 7 {
		t.Fatalf("len(Ops) = %d, want 7", len(r.Ops))
	}
	if w, h := r.Size(); w != 100 || h != 50 {
		t.Errorf("Size() = %v,%v, want 100,50", w, h)
	}
	if r.Ratio() != 2 {
		t.Errorf("Ratio() = %v, want 2", r.Ratio())
	}
	if got := r.Count(OpMoveTo); got != 1 {
		t.Errorf("Count(moveTo) = %d, want 1", got)
	}
	text := r.Filter(OpFillText)
	if len(text) != 1 || text[0].Str != "hi" || text[0].Args[0] != 7 {
		t.Errorf("Filter(fillText) = %v", text)
	}
	if got := r.Ops[3].String(); got != "bezierCurveTo(1, 2, 3, 4, 5, 6)" {
		t.Errorf("String() = %q", got)
	}
	if got := r.Ops[4].String(); got != `strokeStyle("#fff")` {
		t.Errorf("String() = %q", got)
	}
}

func TestRecorderEqual(t *testing.T) {
	a, b := New(), New()
	for _, r := range []*Recorder{a, b} {
		r.BeginPath()
		r.Arc(1, 1, 3, 0, 6.28)
		r.Fill()
	}
	if !a.Equal(b) {
		t.Error("Equal() = false for identical sequences")
	}
	b.SetDash([]float64{2, 2})
	if a.Equal(b) {
		t.Error("Equal() = true for different sequences")
	}
}

func TestRecorderSetDashCopies(t *testing.T) {
	r := New()
	dash := []float64{4, 2}
	r.SetDash(dash)
	dash[0] = 99
	if r.Ops[0].Args[0] != 4 {
		t.Errorf("SetDash aliased caller slice: %v", r.Ops[0].Args)
	}
}

func TestRecorderJSON(t *testing.T) {
	r := New()
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty JSON = %s, want []", data)
	}

	r.MoveTo(1, 2)
	data, _ = json.Marshal(r)
	if string(data) != `[{"op":"moveTo","args":[1,2]}]` {
		t.Errorf("JSON = %s", data)
	}

	r.Reset()
	if len(r.Ops) != 0 {
		t.Errorf("Reset left %d ops", len(r.Ops))
	}
}
