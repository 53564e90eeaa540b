package utils

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney_AcceptsFormattedStrings(t *testing.T) {
	cases := []struct {
		in       any
		expected string
	}{
		{"15000000", "15000000"},
		{"15,000,000", "15000000"},
		{"Rp 15,000,000", "15000000"},
		{"Rp. 250,000", "250000"},
		{"IDR 250000", "250000"},
		{"-Rp 1,500", "-1500"},
		{"  rp 1,234.50  ", "1234.5"},
		{json.Number("800000"), "800000"},
		{3000000, "3000000"},
		{int64(50000), "50000"},
		{decimal.NewFromInt(42), "42"},
	}
	for _, tc := range cases {
		d, err := ParseMoney(tc.in)
		if err != nil {
			t.Fatalf("ParseMoney(%v) error: %v", tc.in, err)
		}
		if d.String() != tc.expected {
			t.Fatalf("ParseMoney(%v) expected %s, got %s", tc.in, tc.expected, d.String())
		}
	}
}

func TestParseMoney_RejectsGarbage(t *testing.T) {
	for _, in := range []any{"", "Rp", "abc", true, nil} {
		if _, err := ParseMoney(in); err == nil {
			t.Fatalf("ParseMoney(%v) expected error", in)
		}
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in       decimal.Decimal
		expected string
	}{
		{decimal.Zero, "Rp 0"},
		{decimal.NewFromInt(800), "Rp 800"},
		{decimal.NewFromInt(250000), "Rp 250,000"},
		{decimal.NewFromInt(15000000), "Rp 15,000,000"},
		{decimal.NewFromInt(-1500), "-Rp 1,500"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.in); got != tc.expected {
			t.Fatalf("FormatRupiah(%s) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}
