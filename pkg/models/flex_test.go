package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexValueDecoding(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantText  string
		wantInt   int64
		intOK     bool
		truncated int64
	}{
		{name: "number", raw: `1`, wantText: "1", wantInt: 1, intOK: true, truncated: 1},
		{name: "numeric string", raw: `"2"`, wantText: "2", wantInt: 2, intOK: true, truncated: 2},
		{name: "word", raw: `"up"`, wantText: "up", truncated: 0},
		{name: "float string", raw: `"1000000000.0"`, wantText: "1000000000.0", truncated: 1000000000},
		{name: "exponent string", raw: `"1e9"`, wantText: "1e9", truncated: 1000000000},
		{name: "bool true", raw: `true`, wantText: "1", wantInt: 1, intOK: true, truncated: 1},
		{name: "null", raw: `null`},
		{name: "object", raw: `{"a":1}`, wantText: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexValue
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))

			assert.Equal(t, tt.wantText, f.String())

			got, ok := f.Int()
			assert.Equal(t, tt.intOK, ok)
			assert.Equal(t, tt.wantInt, got)
			assert.Equal(t, tt.truncated, f.Truncated())
		})
	}
}

func TestFlexValueMissingField(t *testing.T) {
	var p PortRecord
	require.NoError(t, json.Unmarshal([]byte(`{"ifName":"Gi0/1"}`), &p))

	_, ok := p.AdminStatus.Int()
	assert.False(t, ok)
	assert.Empty(t, p.AdminStatus.String())
	assert.Equal(t, int64(0), p.Speed.Truncated())
}

func TestFlexValueMarshalKeepsShape(t *testing.T) {
	b, err := json.Marshal(struct {
		A FlexValue `json:"a"`
		B FlexValue `json:"b"`
		C FlexValue `json:"c"`
	}{A: Number(1), B: Text("up")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":"up","c":null}`, string(b))
}
