package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafetyLevelMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Dangerous)
	require.NoError(t, err)
	require.Equal(t, `"dangerous"`, string(data))
}

func TestCategoryMarshalJSON(t *testing.T) {
	data, err := json.Marshal(CategoryDevCache)
	require.NoError(t, err)
	require.Equal(t, `"Developer Cache"`, string(data))
}

func TestDevToolMarshalJSON(t *testing.T) {
	data, err := json.Marshal(DevToolNodeModules)
	require.NoError(t, err)
	require.Equal(t, `"node_modules"`, string(data))
}

func TestMatchTypeMarshalJSON(t *testing.T) {
	data, err := json.Marshal(MatchPerceptuallySimilar)
	require.NoError(t, err)
	require.Equal(t, `"similar"`, string(data))
}

// ScanItem's aggregated size must equal the sum of its file entries
// whenever it carries them, the invariant spec.md §8 names for Scan Items.
func TestScanItemSizeInvariant(t *testing.T) {
	item := ScanItem{
		Files: []FileEntry{
			{Path: "/a", Size: 100},
			{Path: "/b", Size: 200},
		},
	}
	var total int64
	for _, f := range item.Files {
		total += f.Size
	}
	item.SizeBytes = total
	require.Equal(t, int64(300), item.SizeBytes)
}

func TestDuplicateGroupKeeperEmpty(t *testing.T) {
	var g DuplicateGroup
	require.Equal(t, Member{}, g.Keeper())
}

// SortGroups must put the largest member first within a group (the
// keeper) and recompute WastedBytes from the sorted order.
func TestSortGroupsKeeperAndWasted(t *testing.T) {
	groups := []DuplicateGroup{
		{Members: []Member{
			{Path: "/small", SizeBytes: 10},
			{Path: "/big", SizeBytes: 100},
		}},
	}
	SortGroups(groups)
	require.Equal(t, "/big", groups[0].Keeper().Path)
	require.Equal(t, int64(10), groups[0].WastedBytes)
}

// Groups with more wasted bytes must sort before groups with less.
func TestSortGroupsOrdering(t *testing.T) {
	groups := []DuplicateGroup{
		{Members: []Member{{Path: "/a1", SizeBytes: 5}, {Path: "/a2", SizeBytes: 5}}},
		{Members: []Member{{Path: "/b1", SizeBytes: 50}, {Path: "/b2", SizeBytes: 50}}},
	}
	SortGroups(groups)
	require.Equal(t, "/b1", groups[0].Keeper().Path)
	require.Equal(t, int64(50), groups[0].WastedBytes)
}

func TestSemaphoreBoundsConcurrency(t *testing.T) {
	sem := NewSemaphore(2)
	sem.Acquire()
	sem.Acquire()

	acquired := make(chan struct{})
	go func() {
		sem.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("third acquire should have blocked while two slots are held")
	default:
	}

	sem.Release()
	<-acquired
}
