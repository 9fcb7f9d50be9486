package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleReference_Format(t *testing.T) {
	g := NewGenerator()

	ref := g.SaleReference()
	assert.True(t, strings.HasPrefix(ref, "SALE-"))
	assert.Greater(t, len(ref), len("SALE-"))
}

func TestSaleReference_Unique(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := g.SaleReference()
		require.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
