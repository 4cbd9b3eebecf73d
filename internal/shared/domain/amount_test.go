package domain

import (
	"testing"
	"time"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		input    float64
		expected float64
	}{
		{123.456, 123.46},
		{123.454, 123.45},
		{-12.346, -12.35},
		{100, 100},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.input); got != tc.expected {
			t.Errorf("Round2(%v) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestDivRound2(t *testing.T) {
	got, ok := DivRound2(300, 2)
	if !ok || got != 150 {
		t.Errorf("DivRound2(300, 2) = %v, %v", got, ok)
	}

	// Division par zéro: le ratio est indéfini, pas zéro
	if _, ok := DivRound2(300, 0); ok {
		t.Error("Expected DivRound2 by zero to report undefined")
	}
}

func TestPctRound2(t *testing.T) {
	got, ok := PctRound2(180, 300)
	if !ok || got != 60 {
		t.Errorf("PctRound2(180, 300) = %v, %v", got, ok)
	}

	// Marge négative: le pourcentage suit le signe
	got, ok = PctRound2(-75, 300)
	if !ok || got != -25 {
		t.Errorf("PctRound2(-75, 300) = %v, %v", got, ok)
	}

	if _, ok := PctRound2(180, 0); ok {
		t.Error("Expected PctRound2 on zero base to report undefined")
	}
}

func TestDateRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	dr, err := NewDateRange(start, end)
	if err != nil {
		t.Fatal(err)
	}
	if !dr.Contains(start) || !dr.Contains(end) {
		t.Error("Expected bounds to be inclusive")
	}
	if dr.Contains(end.AddDate(0, 0, 1)) {
		t.Error("Expected date after end to be excluded")
	}

	if _, err := NewDateRange(end, start); err == nil {
		t.Error("Expected error for inverted bounds")
	}

	dr, err = NewDateRangeFromDays(30)
	if err != nil {
		t.Fatal(err)
	}
	if dr.End().Sub(dr.Start()) < 29*24*time.Hour {
		t.Error("Expected a range of roughly 30 days")
	}
}
