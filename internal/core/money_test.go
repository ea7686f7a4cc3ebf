package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"1,234.56", 123456, true},
		{"1,000", 100000, true},
		{"12.345", 1235, true}, // half-up on third decimal
		{"12.344", 1234, true},
		{"0.01", 1, true},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}
	for i, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d (%q): expected ok, got %v", i, tc.in, err)
			}
			if got.Cents != tc.cents {
				t.Fatalf("case %d (%q): got %d cents, want %d", i, tc.in, got.Cents, tc.cents)
			}
			continue
		}
		if err == nil {
			t.Fatalf("case %d (%q): expected error", i, tc.in)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{100, "1.00"},
		{5, "0.05"},
		{123400, "1234.00"},
		{-5000, "-50.00"}, // negative balances render too
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("cents %d: got %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a, b := Money{Cents: 10000}, Money{Cents: 5000}
	if a.Sub(b).Cents != 5000 {
		t.Fatal("sub mismatch")
	}
	if b.Sub(a).Cents != -5000 {
		t.Fatal("negative sub mismatch")
	}
	if a.Add(b).Cents != 15000 {
		t.Fatal("add mismatch")
	}
}
