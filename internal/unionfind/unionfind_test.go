package unionfind_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensplit/feolattack/internal/unionfind"
)

func TestUnion_MergesTransitively(t *testing.T) {
	d := unionfind.New()
	require.True(t, d.Union("a", "b"))
	require.True(t, d.Union("b", "c"))
	require.True(t, d.Connected("a", "c"))
	require.False(t, d.Connected("a", "z"))
}

func TestUnion_AlreadyMergedReturnsFalse(t *testing.T) {
	d := unionfind.New()
	require.True(t, d.Union("a", "b"))
	require.False(t, d.Union("a", "b"))
}

func TestGroups_PartitionsAllKnownElements(t *testing.T) {
	d := unionfind.New()
	d.Add("lonely")
	d.Union("a", "b")
	d.Union("c", "d")

	groups := d.Groups()
	var sizes []int
	for _, members := range groups {
		sort.Strings(members)
		sizes = append(sizes, len(members))
	}
	sort.Ints(sizes)
	require.Equal(t, []int{1, 2, 2}, sizes)
}
