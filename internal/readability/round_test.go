package readability

import "testing"

func TestRound1(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"stored below the half", 41.0 / 20.0, 2.0},
		{"stored below the half again", 33.0 / 20.0, 1.6},
		{"stored above the half", 69.785 + 1e-14, 69.8},
		{"grade just under .85", 25.849999999999998, 25.8},
		{"exact quarter rounds up", 0.25, 0.3},
		{"exact three quarters rounds up", 2.75, 2.8},
		{"negative tie rounds away from zero", -0.25, -0.3},
		{"whole number", 6.0, 6.0},
		{"exact half tenth is not a tie", 1.5, 1.5},
		{"small negative", -0.04, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := round1(tt.in); got != tt.want {
				t.Errorf("round1(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
