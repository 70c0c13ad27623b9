package safemap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	uuid string
	name string
}

func testMap() *SafeMap[item] {
	return FromSlice("test items", []item{
		{uuid: "a", name: "first"},
		{uuid: "b", name: "second"},
	}, func(i item) string { return i.uuid })
}

func TestGet_Present(t *testing.T) {
	m := testMap()

	got, err := m.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "first", got.name)
}

func TestGet_MissingReturnsDanglingReference(t *testing.T) {
	m := testMap()

	_, err := m.Get("ghost")
	require.Error(t, err)

	var dangling *DanglingReferenceError
	require.True(t, errors.As(err, &dangling))
	assert.Equal(t, "ghost", dangling.UUID)
	assert.Contains(t, err.Error(), "test items")
	assert.Contains(t, err.Error(), "ghost")
}

func TestGetAll_FailsFastOnFirstMissing(t *testing.T) {
	m := testMap()

	got, err := m.GetAll([]string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = m.GetAll([]string{"a", "ghost", "b"})
	require.Error(t, err)
}

func TestGetPresent_DropsAndReportsMissing(t *testing.T) {
	m := testMap()

	got, missing := m.GetPresent([]string{"a", "ghost", "b", "phantom"})
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"ghost", "phantom"}, missing)
}

func TestGetPresent_AllPresent(t *testing.T) {
	m := testMap()

	got, missing := m.GetPresent([]string{"b"})
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].name)
	assert.Empty(t, missing)
}
