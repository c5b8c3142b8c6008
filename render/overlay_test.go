package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/termnav/navigation"
)

func TestOverlay_StrongestMarkWins(t *testing.T) {
	o := NewOverlay()
	o.Highlight(2, 3, navigation.MarkVisited)
	o.Highlight(2, 3, navigation.MarkBlocked)

	m, ok := o.Mark(2, 3)
	assert.True(t, ok)
	assert.Equal(t, navigation.MarkVisited, m)

	o.Highlight(2, 3, navigation.MarkPath)
	m, _ = o.Mark(2, 3)
	assert.Equal(t, navigation.MarkPath, m)
}

func TestOverlay_Clear(t *testing.T) {
	o := NewOverlay()
	o.Highlight(0, 0, navigation.MarkBlocked)
	o.Highlight(1, 0, navigation.MarkPath)
	assert.Equal(t, 2, o.Len())

	o.Clear()
	assert.Equal(t, 0, o.Len())
	_, ok := o.Mark(0, 0)
	assert.False(t, ok)
}
