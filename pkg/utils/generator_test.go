package util

import (
	"regexp"
	"testing"
	"unicode/utf8"
)

func TestGenerateLoginID(t *testing.T) {
	cases := []struct {
		company, first, last string
		year, serial         int
		want                 string
	}{
		{"Dayflow", "Sarah", "Connor", 2026, 1, "DASACO20260001"},
		{"Dayflow", "Admin", "Utama", 2026, 12, "DAADUT20260012"},
		{"PT", "A", "B", 2026, 9999, "PTAXBX20269999"},
		{"Dayflow", "Éla", "Ångström", 2026, 7, "DAÉLÅN20260007"},
	}
	for _, tc := range cases {
		got := GenerateLoginID(tc.company, tc.first, tc.last, tc.year, tc.serial)
		if got != tc.want {
			t.Errorf("GenerateLoginID(%q, %q, %q, %d, %d) = %q, want %q",
				tc.company, tc.first, tc.last, tc.year, tc.serial, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("GenerateLoginID(%q, %q, %q, ...) = %q bukan UTF-8 valid", tc.company, tc.first, tc.last, got)
		}
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pattern := regexp.MustCompile(`^Temp\d{4}!$`)
	for i := 0; i < 50; i++ {
		got := GenerateTempPassword()
		if !pattern.MatchString(got) {
			t.Fatalf("password %q tidak cocok pola Temp____!", got)
		}
	}
}

func TestParseFullName(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"Sarah Connor", "Sarah", "Connor"},
		{"Budi Santoso Wijaya", "Budi", "Santoso Wijaya"},
		{"Madonna", "Madonna", "Madonna"},
		{"  spasi  banyak  ", "spasi", "banyak"},
		{"", "", ""},
	}
	for _, tc := range cases {
		first, last := ParseFullName(tc.in)
		if first != tc.first || last != tc.last {
			t.Errorf("ParseFullName(%q) = (%q, %q), want (%q, %q)", tc.in, first, last, tc.first, tc.last)
		}
	}
}
