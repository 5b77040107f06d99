package easel

import "testing"

func TestRegistryFirstViewFocused(t *testing.T) {
	s, _ := newTestStage(StageConfig{})
	a, _, _ := mustView(t, s, "a", 10, 10)
	mustView(t, s, "b", 10, 10)

	if s.Focused() != a {
		t.Errorf("Focused = %v, want a", s.Focused())
	}
	if s.Registry().Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Registry().Len())
	}
}

func TestRegistryLookup(t *testing.T) {
	s, _ := newTestStage(StageConfig{})
	a, _, sc := mustView(t, s, "a", 10, 10)

	r := s.Registry()
	if r.View("a") != a || r.ViewOf(sc) != a {
		t.Error("lookup by id or scene failed")
	}
	a.Remove()
	if r.View("a") != nil || r.ViewOf(sc) != nil {
		t.Error("removed view still registered")
	}
}

func TestResolveFocus(t *testing.T) {
	tests := []struct {
		name   string
		hidden []bool // per view a, b, c
		remove bool   // remove a before resolving
		want   string // "" for nil
	}{
		{"focused visible stays", []bool{false, false, false}, false, "a"},
		{"removed falls back to next", []bool{false, false, false}, true, "b"},
		{"skips invisible", []bool{false, true, false}, true, "c"},
		{"hidden focused falls back", []bool{true, false, false}, false, "b"},
		{"none visible", []bool{true, true, true}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStage(StageConfig{})
			var views []*View
			for i, id := range []string{"a", "b", "c"} {
				v, surf, _ := mustView(t, s, id, 10, 10)
				surf.hidden = tt.hidden[i]
				views = append(views, v)
			}
			if tt.remove {
				views[0].Remove()
			}
			got := s.ResolveFocus()
			if tt.want == "" {
				if got != nil || s.Focused() != nil {
					t.Errorf("ResolveFocus = %v, want nil", got)
				}
				return
			}
			if got == nil || got.ID() != tt.want || s.Focused() != got {
				t.Errorf("ResolveFocus = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveFocusFallbackIsTemporary(t *testing.T) {
	s, _ := newTestStage(StageConfig{})
	a, _, _ := mustView(t, s, "a", 10, 10)
	b, _, _ := mustView(t, s, "b", 10, 10)

	a.Remove()
	s.ResolveFocus()
	if s.Registry().TempFocused() != b {
		t.Error("fallback focus should be temporary")
	}
}
