package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeContains(t *testing.T) {
	tests := []struct {
		name  string
		outer Range
		inner Range
		want  bool
	}{
		{"same", R(0, 3), R(0, 3), true},
		{"inside", R(0, 10), R(2, 5), true},
		{"empty inside", R(2, 5), R(3, 3), true},
		{"left overflow", R(2, 5), R(1, 4), false},
		{"right overflow", R(2, 5), R(3, 6), false},
		{"inverted", R(0, 10), R(5, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outer.Contains(tt.inner))
		})
	}
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "[0,3)", R(0, 3).String())
	assert.Equal(t, 3, R(0, 3).Len())
	assert.True(t, R(4, 4).Empty())
}

func TestPositionString(t *testing.T) {
	p := Position{Offset: 10, Line: 2, Column: 5}
	assert.Equal(t, "2:5", p.String())
	s := Span{Start: p, End: Position{Offset: 12, Line: 2, Column: 7}}
	assert.Equal(t, "2:5..2:7", s.String())
	assert.Equal(t, 2, s.Len())
}
