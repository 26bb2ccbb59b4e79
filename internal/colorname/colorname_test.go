package colorname

import "testing"

func TestNameExactMatches(t *testing.T) {
	cases := []struct {
		hex  string
		want string
	}{
		{"#FFFFFF", "white"},
		{"#ffffff", "white"},
		{"ffffff", "white"},
		{"#000000", "black"},
		{"#808080", "gray"},
		{"#D2B48C", "tan"},
		{"#4169E1", "royal blue"},
		{"#FFA500", "orange"},
		{" #f5f5f5 ", "off-white"},
	}
	for _, tc := range cases {
		if got := Name(tc.hex); got != tc.want {
			t.Errorf("Name(%q) = %q, want %q", tc.hex, got, tc.want)
		}
	}
}

func TestNameUnknownHexPassesThrough(t *testing.T) {
	for _, hex := range []string{"#8B4513", "#123456", "#ABCDEF", "8b4513"} {
		if got := Name(hex); got != hex {
			t.Errorf("Name(%q) = %q, want unchanged input", hex, got)
		}
	}
}
