package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitLabel(t *testing.T) {
	assert.Equal(t, "Add Post", SubmitLabel(Creating))
	assert.Equal(t, "Update Post", SubmitLabel(Updating))
}

func TestOpLogLabels(t *testing.T) {
	var testCases = []struct {
		op       Op
		expected string
	}{
		{LOAD, "Get"},
		{CREATE, "Post"},
		{UPDATE, "Put"},
		{DELETE, "Delete"},
		{Op(42), "Unknown"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.op.String())
	}
}

func TestStateJSON(t *testing.T) {
	id := 3
	st := State{
		Records:   []Record{{ID: 3, Name: "n", Email: "e"}},
		Draft:     Draft{Name: "n", Email: "e"},
		Mode:      Updating,
		CurrentID: &id,
	}
	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[{"id":3,"name":"n","email":"e"}],"draft":{"name":"n","email":"e"},"mode":"updating","currentId":3}`, string(data))

	var mode Mode
	assert.Error(t, mode.UnmarshalText([]byte("deleting")))
}

func TestStateFind(t *testing.T) {
	st := State{Records: []Record{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	rec, ok := st.Find(2)
	assert.True(t, ok)
	assert.Equal(t, "b", rec.Name)
	_, ok = st.Find(5)
	assert.False(t, ok)
}
