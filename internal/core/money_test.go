package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.344", 1234, true},
		{"12.345", 1235, true},
		{"1.005", 101, true},
		{"0", 0, true},
		{".5", 50, true},
		{"7", 700, true},
		{"", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
		if got != tc.want {
			t.Fatalf("%q: got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyDecimal(t *testing.T) {
	m := Money{Cents: 123456}
	if got := m.String(); got != "1234.56" {
		t.Fatalf("got %q, want 1234.56", got)
	}
	if got := (Money{Cents: 0}).String(); got != "0.00" {
		t.Fatalf("got %q, want 0.00", got)
	}
}
