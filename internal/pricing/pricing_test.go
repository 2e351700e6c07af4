package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		scheduled bool
		want      string
	}{
		{"taxi now", "15.00", false, "15.00"},
		{"taxi scheduled", "15.00", true, "12.00"},
		{"bus scheduled", "3.50", true, "0.50"},
		{"gas scheduled goes negative", "2.50", true, "-0.50"},
		{"business now", "25.00", false, "25.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := decimal.RequireFromString(tt.base)
			got := FormatAmount(Total(base, tt.scheduled))
			if got != tt.want {
				t.Fatalf("Total(%s, %v) = %s, want %s", tt.base, tt.scheduled, got, tt.want)
			}
		})
	}
}

func TestPointsSplit(t *testing.T) {
	tests := []struct {
		name       string
		total      string
		balance    string
		wantPoints string
		wantCard   string
	}{
		{"capped at 25", "15.00", "125.50", "25.00", "14.75"},
		{"small balance", "12.00", "10.50", "10.50", "11.90"},
		{"empty balance", "8.50", "0", "0.00", "8.50"},
		{"negative balance", "8.50", "-4", "0.00", "8.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := PointsSplit(decimal.RequireFromString(tt.total), decimal.RequireFromString(tt.balance))
			if got := FormatAmount(s.Points); got != tt.wantPoints {
				t.Errorf("points = %s, want %s", got, tt.wantPoints)
			}
			if got := FormatAmount(s.CardAmount); got != tt.wantCard {
				t.Errorf("card = %s, want %s", got, tt.wantCard)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := ParseAmount("abc"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := ParseAmount("  "); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for blank, got %v", err)
	}
	got, err := NormalizeAmount(" 7.5 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "7.50" {
		t.Fatalf("NormalizeAmount = %s, want 7.50", got)
	}
}

func TestRepeatedFormattingDoesNotDrift(t *testing.T) {
	s := "0.10"
	for i := 0; i < 1000; i++ {
		d, err := ParseAmount(s)
		if err != nil {
			t.Fatal(err)
		}
		s = FormatAmount(d.Add(decimal.RequireFromString("0.10")).Sub(decimal.RequireFromString("0.10")))
	}
	if s != "0.10" {
		t.Fatalf("amount drifted to %s", s)
	}
}
