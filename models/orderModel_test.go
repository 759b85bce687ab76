package models

import "testing"

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusPlaced, StatusProcessing, StatusPacked, StatusDelivered, StatusFailed} {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "Shipped", "order placed", "PENDING"} {
		if IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = true", s)
		}
	}
}

func TestIsBackwardTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPlaced, StatusProcessing, false},
		{StatusProcessing, StatusPacked, false},
		{StatusPacked, StatusDelivered, false},
		{StatusDelivered, StatusPlaced, true},
		{StatusPacked, StatusProcessing, true},
		{StatusPlaced, StatusPlaced, false},
		// pending and Failed sit outside the pipeline
		{StatusPending, StatusProcessing, false},
		{StatusDelivered, StatusFailed, false},
		{StatusFailed, StatusPlaced, false},
	}

	for _, tt := range tests {
		if got := IsBackwardTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("IsBackwardTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
