package core

import (
	"errors"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseAmount Tests
// ----------------------------------------------------------------------------

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"empty is zero", "", 0},
		{"whitespace is zero", "   ", 0},
		{"integer", "1500", 1500},
		{"decimal", "12.50", 12.5},
		{"surrounding spaces", "  980 ", 980},
		{"leading decimal point", ".5", 0.5},
		{"invalid text", "abc", 0},
		{"currency symbol is invalid", "$12", 0},
		{"negative clamps to zero", "-3", 0},
		{"nan is zero", "NaN", 0},
		{"infinity is zero", "Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.input); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseQuantity Tests
// ----------------------------------------------------------------------------

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty is zero", "", 0},
		{"integer", "24", 24},
		{"fraction truncates", "7.9", 7},
		{"invalid is zero", "ten", 0},
		{"negative clamps to zero", "-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuantity(tt.input); got != tt.want {
				t.Errorf("ParseQuantity(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseAdjustQuantity Tests
// ----------------------------------------------------------------------------

func TestParseAdjustQuantity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"positive integer", "3", 3, false},
		{"spaces allowed", " 12 ", 12, false},
		{"whole decimal", "4.0", 4, false},
		{"empty rejected", "", 0, true},
		{"zero rejected", "0", 0, true},
		{"negative rejected", "-2", 0, true},
		{"fraction rejected", "1.5", 0, true},
		{"text rejected", "lots", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAdjustQuantity(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAdjustQuantity(%q) expected error", tt.input)
				}
				if !errors.Is(err, ErrInvalidQuantity) {
					t.Errorf("error = %v, want ErrInvalidQuantity", err)
				}
				if !IsValidation(err) {
					t.Errorf("error = %T, want *ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAdjustQuantity(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAdjustQuantity(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"in", DirectionIn, false},
		{"IN", DirectionIn, false},
		{"increase", DirectionIn, false},
		{"out", DirectionOut, false},
		{"decrease", DirectionOut, false},
		{"sideways", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
