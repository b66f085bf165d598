package tasks

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/worktravel/internal/model"
)

func TestDecodeTasksErrors(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want string
		kept int
	}{
		{"not an object", `[1,2]`, "json unmarshal", 0},
		{"null", `null`, "not an object", 0},
		{"missing working", `{"1":{"text":"a"}}`, `$["1"]`, 0},
		{"wrong text type", `{"1":{"text":1,"working":true},"2":{"text":"b","working":false}}`, `$["1"]["text"]`, 1},
		{"null record", `{"1":null,"2":{"text":"b","working":true}}`, `$["1"]`, 1},
		{"empty id", `{"":{"text":"a","working":true}}`, "empty id", 0},
		{"slash in id", `{"a/b":{"text":"a"}}`, `$["a/b"]`, 0},
		{"not json", `{`, "json unmarshal", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeTasks(tt.blob)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Len(t, got, tt.kept)
		})
	}
}

func TestEncodeDecodeTasks(t *testing.T) {
	in := map[model.ID]model.Task{
		"1": {Text: "a", Mode: model.Travel, Complete: true},
		"2": {Text: "b", Mode: model.Work},
	}
	blob, err := encodeTasks(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"text":"a","working":false,"complete":true},"2":{"text":"b","working":true,"complete":false}}`, blob)

	out, err := decodeTasks(blob)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeMode(t *testing.T) {
	m, err := decodeMode(" false\n")
	require.NoError(t, err)
	assert.Equal(t, model.Travel, m)

	_, err = decodeMode(`"travel"`)
	assert.Error(t, err)

	m, err = decodeMode("null")
	require.NoError(t, err)
	assert.Equal(t, model.Work, m)
}

func TestCompareIDs(t *testing.T) {
	ids := []model.ID{"b", "10", "a", "9", "1700000000000"}
	slices.SortFunc(ids, compareIDs)
	assert.Equal(t, []model.ID{"9", "10", "1700000000000", "a", "b"}, ids)
}
