package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	Name string `json:"name" validate:"notblank"`
}

type item struct {
	Product  product     `json:"product"`
	Quantity json.Number `json:"quantity" validate:"notblank,numeric"`
	Skip     string      `json:"-"`
}

type delivery struct {
	Item           item   `json:"item"`
	RecipientEmail string `json:"recipientEmail,omitempty" validate:"required,email"`
	NoTag          string `validate:"required"`
}

func TestV10Validator_Validate(t *testing.T) {
	t.Parallel()

	v, err := NewV10Validator()
	require.NoError(t, err)

	tests := []struct {
		name string
		data any
		want V10ValidationError
	}{
		{
			name: "valid",
			data: delivery{
				Item:           item{Product: product{Name: "Netflix"}, Quantity: "2"},
				RecipientEmail: "a@b.com",
				NoTag:          "x",
			},
		},
		{
			name: "nested paths use json names",
			data: delivery{Item: item{Product: product{Name: "  "}, Quantity: "two"}},
			want: V10ValidationError{
				"item.product.name": "name must not be blank",
				"item.quantity":     "quantity must be a valid numeric value",
				"recipientEmail":    "recipientEmail is a required field",
				"NoTag":             "NoTag is a required field",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(tt.data)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}

			var verr V10ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr)
			assert.Equal(t, map[string]string(tt.want), verr.Values())
		})
	}
}

func TestV10Validator_NonStruct(t *testing.T) {
	t.Parallel()

	v, err := NewV10Validator()
	require.NoError(t, err)

	err = v.Validate("not a struct")
	require.Error(t, err)

	var verr V10ValidationError
	assert.NotErrorAs(t, err, &verr)
}

func TestV10ValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation error", V10ValidationError{}.Error())
	assert.JSONEq(t, `{"name":"name is a required field"}`, V10ValidationError{"name": "name is a required field"}.Error())
}
