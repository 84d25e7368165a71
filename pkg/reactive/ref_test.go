package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseRefSurvivesAcrossRendersWithoutNotification(t *testing.T) {
	sc := NewScope("root")

	sc.StartRender()
	ref1 := UseRef(sc, func() int { return 0 })
	ref1.Set(7)

	sc.StartRender()
	ref2 := UseRef(sc, func() int { return 0 })

	require.Same(t, ref1, ref2)
	assert.Equal(t, 7, ref2.Get())
}
