package store

import "testing"

func TestValidTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		valid  bool
	}{
		{"call", "waiting", true},
		{"call", "in_progress", false},
		{"call", "completed", false},
		{"call", "cancelled", false},
		{"complete", "in_progress", true},
		{"complete", "waiting", false},
		{"complete", "completed", false},
		{"cancel", "waiting", true},
		{"cancel", "in_progress", false},
		{"cancel", "cancelled", false},
		{"unknown", "waiting", false},
	}

	for _, tt := range cases {
		if got := ValidTransition(tt.action, tt.from); got != tt.valid {
			t.Fatalf("ValidTransition(%q, %q)=%v, want %v", tt.action, tt.from, got, tt.valid)
		}
	}
}

func TestTargetStatus(t *testing.T) {
	cases := []struct {
		action string
		status string
		ok     bool
	}{
		{"call", "in_progress", true},
		{"complete", "completed", true},
		{"cancel", "cancelled", true},
		{"recall", "", false},
	}

	for _, tt := range cases {
		status, ok := TargetStatus(tt.action)
		if status != tt.status || ok != tt.ok {
			t.Fatalf("TargetStatus(%q)=(%q,%v), want (%q,%v)", tt.action, status, ok, tt.status, tt.ok)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for action := range transitionMap {
		if ValidTransition(action, "completed") {
			t.Fatalf("action %q should not leave completed", action)
		}
		if ValidTransition(action, "cancelled") {
			t.Fatalf("action %q should not leave cancelled", action)
		}
	}
}
