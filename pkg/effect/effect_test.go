package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Matches(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		category string
		label    string
		layer    string
		expected bool
	}{
		{"empty matches everything", Filter{}, "bg", "room", "Bg", true},
		{"category only", Filter{Category: "sprite"}, "sprite", "cup", "Sprite", true},
		{"wrong category", Filter{Category: "sprite"}, "bg", "cup", "Sprite", false},
		{"label match", Filter{Category: "character", Label: "Alice"}, "character", "Alice", "Character", true},
		{"label mismatch", Filter{Category: "character", Label: "Alice"}, "character", "Bob", "Character", false},
		{"layer match across categories", Filter{Layer: "Front"}, "sprite", "cup", "Front", true},
		{"layer mismatch", Filter{Layer: "Front"}, "sprite", "cup", "Back", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(tt.category, tt.label, tt.layer))
		})
	}
}
