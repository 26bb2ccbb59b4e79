// Package colorname maps exact hex colors to human-readable names for use in
// generation prompts. Only exact palette matches are named; anything else is
// passed through untouched so the provider still receives a usable value.
package colorname

import "strings"

var names = map[string]string{
	"ffffff": "white",
	"f5f5f5": "off-white",
	"fafafa": "soft white",
	"000000": "black",
	"1a1a1a": "near black",
	"333333": "charcoal gray",
	"4a4a4a": "dark gray",
	"808080": "gray",
	"a9a9a9": "medium gray",
	"c0c0c0": "silver gray",
	"d3d3d3": "light gray",
	"e8e8e8": "pale gray",
	"654321": "dark brown",
	"a0522d": "sienna brown",
	"d2b48c": "tan",
	"deb887": "light brown",
	"000080": "navy blue",
	"0000ff": "blue",
	"4169e1": "royal blue",
	"87ceeb": "sky blue",
	"ff8c00": "dark orange",
	"ffa500": "orange",
	"ff7f50": "coral orange",
}

// Name returns the semantic name for an exact palette hex, or the input
// unchanged when the color is not in the palette. Matching is
// case-insensitive and tolerates a leading '#'.
func Name(hex string) string {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if name, ok := names[key]; ok {
		return name
	}
	return hex
}
