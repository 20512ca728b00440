package compare

import (
	"testing"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	a := parse.BuildRun(parse.RawRun{ID: "a", Rows: []string{
		"00:00.000 started",
		"00:05.000 | x | zone 1",
		"00:10.000 | x | zone 2",
		"00:12.000 finished",
	}})
	b := parse.BuildRun(parse.RawRun{ID: "b", Rows: []string{
		"00:00.000 started",
		"00:04.250 | x | zone 1",
		"00:11.000 finished",
	}})

	splits := Compare(a, b)
	require.Len(t, splits, 4)

	assert.False(t, splits[0].HasDiff, "marker rows carry no parsable time")

	assert.True(t, splits[1].HasDiff)
	assert.Equal(t, int64(-750), splits[1].Diff)
	assert.Equal(t, "zone 1", splits[1].Text())

	assert.Equal(t, "zone 2", splits[2].Text())
	assert.False(t, splits[2].HasDiff)

	assert.NotNil(t, splits[3].A)
	assert.Nil(t, splits[3].B)
	assert.Equal(t, "", splits[3].Text())
}

func TestCompareEmpty(t *testing.T) {
	assert.Empty(t, Compare(parse.Run{}, parse.Run{}))
}
