package easel

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"valid", `{"steps":[{"action":"click","x":1,"y":2}]}`, ""},
		{"bad json", `{"steps":`, "parse test script"},
		{"no steps", `{"steps":[]}`, "no steps"},
		{"unknown action", `{"steps":[{"action":"screenshot"}]}`, "unknown action"},
		{"negative wait", `{"steps":[{"action":"click"},{"action":"wait","frames":-1}]}`, "step 1: wait"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := LoadTestScript([]byte(tt.json))
			if tt.wantErr == "" {
				if err != nil || r == nil {
					t.Fatalf("LoadTestScript = %v, %v", r, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestTestRunnerSequencing(t *testing.T) {
	h, s := newEbitenTestStage(t)
	_, _, sc := mustView(t, s, "a", 100, 100)
	var log []string
	sc.items = []*fakeItem{{name: "box", rect: Rect{Width: 50, Height: 50}, log: &log}}

	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"click","x":10,"y":10,"label":"tap box"},
		{"action":"wait","frames":2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.SetTestRunner(r)

	r.step(h) // queues the click
	if h.InjectPending() != 2 {
		t.Fatalf("pending = %d, want 2", h.InjectPending())
	}
	r.step(h) // blocked on the queue
	h.processInjectedInput(0)
	h.processInjectedInput(0)
	if len(log) == 0 || log[len(log)-1] != "box:click" {
		t.Fatalf("log = %v", log)
	}

	r.step(h) // wait 2: this tick counts as one
	if r.Done() {
		t.Fatal("runner finished before the wait elapsed")
	}
	r.step(h)
	r.step(h)
	if !r.Done() {
		t.Error("runner should be done")
	}
}

func TestTestRunnerDragAndRelease(t *testing.T) {
	h, s := newEbitenTestStage(t)
	mustView(t, s, "a", 100, 100)
	var log []ToolEvent
	s.SetActiveTool(recordTool(&log))

	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"press","x":5,"y":5},
		{"action":"move","x":15,"y":5},
		{"action":"release","x":15,"y":5},
		{"action":"drag","fromX":0,"fromY":0,"toX":30,"toY":30,"frames":3}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20 && !r.Done(); i++ {
		r.step(h)
		h.processInjectedInput(0)
	}
	if !r.Done() {
		t.Fatal("runner did not finish")
	}
	want := []EventType{EventPress, EventDrag, EventRelease, EventPress, EventDrag, EventRelease}
	if len(log) != len(want) {
		t.Fatalf("deliveries = %d, want %d", len(log), len(want))
	}
	for i, typ := range want {
		if log[i].Type != typ {
			t.Errorf("delivery %d = %v, want %v", i, log[i].Type, typ)
		}
	}
}
