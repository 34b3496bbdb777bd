package easel

import "testing"

func TestLifecycle_CanTransition(t *testing.T) {
	type tc struct {
		from    Lifecycle
		allowed []Lifecycle
	}

	all := []Lifecycle{Detached, Attached, NeedsLayout, LaidOut, NeedsPaint, Painted, Disposed}

	tests := map[string]tc{
		"detached": {
			from:    Detached,
			allowed: []Lifecycle{Detached, Attached, Disposed},
		},
		"attached": {
			from:    Attached,
			allowed: []Lifecycle{Detached, Attached, NeedsLayout, Disposed},
		},
		"needs layout": {
			from:    NeedsLayout,
			allowed: []Lifecycle{Detached, NeedsLayout, LaidOut, Disposed},
		},
		"laid out": {
			from:    LaidOut,
			allowed: []Lifecycle{Detached, NeedsLayout, LaidOut, NeedsPaint, Disposed},
		},
		"needs paint": {
			from:    NeedsPaint,
			allowed: []Lifecycle{Detached, NeedsLayout, NeedsPaint, Painted, Disposed},
		},
		"painted": {
			from:    Painted,
			allowed: []Lifecycle{Detached, NeedsLayout, NeedsPaint, Painted, Disposed},
		},
		"disposed is terminal": {
			from:    Disposed,
			allowed: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			allowed := make(map[Lifecycle]bool, len(tt.allowed))
			for _, to := range tt.allowed {
				allowed[to] = true
			}
			for _, to := range all {
				if got := tt.from.CanTransition(to); got != allowed[to] {
					t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, to, got, allowed[to])
				}
			}
		})
	}
}

func TestLifecycle_String(t *testing.T) {
	names := map[Lifecycle]string{
		Detached:    "Detached",
		Attached:    "Attached",
		NeedsLayout: "NeedsLayout",
		LaidOut:     "LaidOut",
		NeedsPaint:  "NeedsPaint",
		Painted:     "Painted",
		Disposed:    "Disposed",
	}
	for state, want := range names {
		if got := state.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
	if got := Lifecycle(99).String(); got != "Unknown" {
		t.Errorf("String() = %q, want %q", got, "Unknown")
	}
}
