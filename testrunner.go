package easel

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one entry of a JSON interaction script. Coordinates are in
// host space.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptOp is a compiled step. run queues its input on the host and returns
// the number of extra ticks to hold before the next op.
type scriptOp struct {
	action string
	label  string
	run    func(h *EbitenHost) int
}

// TestRunner plays a scripted sequence of pointer input through an
// EbitenHost, one op per tick. An op only starts once the injected input of
// the previous one has been consumed.
type TestRunner struct {
	ops  []scriptOp
	next int
	hold int
	done bool
}

// LoadTestScript compiles a JSON script of the form {"steps": [...]}.
// Actions are press, move, hover and release at (x, y); click at (x, y);
// drag from (fromX, fromY) to (toX, toY) over frames ticks (at least 2); and
// wait for frames ticks.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	r := &TestRunner{ops: make([]scriptOp, 0, len(script.Steps))}
	for i, st := range script.Steps {
		run, err := compileStep(st)
		if err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
		r.ops = append(r.ops, scriptOp{action: st.Action, label: st.Label, run: run})
	}
	return r, nil
}

func compileStep(st scriptStep) (func(h *EbitenHost) int, error) {
	x, y := st.X, st.Y
	switch st.Action {
	case "press":
		return func(h *EbitenHost) int { h.InjectPress(x, y); return 0 }, nil
	case "move":
		return func(h *EbitenHost) int { h.InjectMove(x, y); return 0 }, nil
	case "hover":
		return func(h *EbitenHost) int { h.InjectHover(x, y); return 0 }, nil
	case "release":
		return func(h *EbitenHost) int { h.InjectRelease(x, y); return 0 }, nil
	case "click":
		return func(h *EbitenHost) int { h.InjectClick(x, y); return 0 }, nil
	case "drag":
		frames := max(st.Frames, 2)
		return func(h *EbitenHost) int {
			h.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
			return 0
		}, nil
	case "wait":
		if st.Frames < 0 {
			return nil, fmt.Errorf("wait: negative frames %d", st.Frames)
		}
		// The tick that starts the wait counts as the first frame.
		hold := max(st.Frames-1, 0)
		return func(*EbitenHost) int { return hold }, nil
	}
	return nil, fmt.Errorf("unknown action %q", st.Action)
}

// SetTestRunner attaches a runner. Update steps it before reading input.
func (h *EbitenHost) SetTestRunner(runner *TestRunner) {
	h.testRunner = runner
}

// Done reports whether every op has run and its input has been consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(h *EbitenHost) {
	switch {
	case r.done, h.InjectPending() > 0:
		return
	case r.hold > 0:
		r.hold--
		return
	case r.next == len(r.ops):
		r.done = true
		return
	}

	op := r.ops[r.next]
	r.next++
	Logger().Debug("easel: test step", "index", r.next-1, "action", op.action, "label", op.label)
	r.hold = op.run(h)
	r.done = r.next == len(r.ops) && r.hold == 0 && h.InjectPending() == 0
}
