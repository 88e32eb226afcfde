package models

import (
	"hash/fnv"
	"strings"
)

// CategoryPalette is the fixed set of colors used to group events by
// category in a display.
var CategoryPalette = []string{
	"#1f77b4", // blue
	"#ff7f0e", // orange
	"#2ca02c", // green
	"#d62728", // red
	"#9467bd", // purple
	"#8c564b", // brown
	"#e377c2", // pink
	"#7f7f7f", // gray
}

// CategoryColor maps a free-form category to a palette entry. The mapping
// is stable for a given text, ignoring case and surrounding whitespace.
func CategoryColor(category string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(category))))
	return CategoryPalette[int(h.Sum32()%uint32(len(CategoryPalette)))]
}
