package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    Amount
		wantErr bool
	}{
		{name: "integer", raw: `2`, want: "2"},
		{name: "trailing zero dropped", raw: `10.50`, want: "10.5"},
		{name: "whole float", raw: `10.0`, want: "10"},
		{name: "exponent", raw: `1.5e2`, want: "150"},
		{name: "numeric string kept verbatim", raw: `"10.50"`, want: "10.50"},
		{name: "free text", raw: `"2 pcs"`, want: "2 pcs"},
		{name: "null", raw: `null`, want: ""},
		{name: "bool", raw: `true`, wantErr: true},
		{name: "object", raw: `{"amount":1}`, wantErr: true},
		{name: "array", raw: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var item Item
			err := json.Unmarshal([]byte(`{"price":`+tt.raw+`}`), &item)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, item.Price)
			assert.Equal(t, string(tt.want), item.Price.String())
		})
	}
}
