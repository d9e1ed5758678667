package utils

import (
	"testing"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"前後の空白を取り除くのだ", "  Vargheim  ", "Vargheim"},
		{"連続する空白は1つに畳むのだ", "Iron   Pact", "Iron Pact"},
		{"空白のみは空文字列になるのだ", "   ", ""},
		{"空文字列はそのままなのだ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTag(tt.in); got != tt.want {
				t.Errorf("NormalizeTag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
