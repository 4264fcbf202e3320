package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

var errAmountType = errors.New("must be a number or a string")

// EmailRequest is the inbound command shared by HTTP and queue consumers.
type EmailRequest struct {
	To      string          `json:"to"`
	Subject string          `json:"subject"`
	Type    TypeField       `json:"type"`
	Data    json.RawMessage `json:"data"`
}

type Welcome struct {
	Name string `json:"name" validate:"required,notblank"`
}

type LoginNotification struct {
	Name      string `json:"name" validate:"required,notblank"`
	Email     string `json:"email" validate:"required,notblank"`
	LoginTime string `json:"loginTime" validate:"required,notblank"`
}

type PasswordReset struct {
	ResetLink string `json:"resetLink" validate:"required,notblank"`
	Expires   string `json:"expires" validate:"required,notblank"`
}

// Broadcast carries Message as markup that is emitted without escaping.
type Broadcast struct {
	Subject string `json:"subject" validate:"required,notblank"`
	Message string `json:"message" validate:"required,notblank"`
}

type Order struct {
	ID string `json:"id" validate:"required,notblank"`
}

type OrderStatusUpdate struct {
	Order    Order  `json:"order"`
	UserName string `json:"userName" validate:"required,notblank"`
	Status   string `json:"status" validate:"required,notblank"`
	Message  string `json:"message" validate:"required,notblank"`
}

type Product struct {
	Name string `json:"name" validate:"required,notblank"`
}

// Amount is a quantity or price as shown to the reader. A JSON number renders
// in its shortest form (10.50 becomes 10.5); a string renders verbatim.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return errAmountType
	}
	*a = Amount(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (a Amount) String() string {
	return string(a)
}

type Item struct {
	Product  Product `json:"product"`
	Quantity Amount  `json:"quantity" validate:"required,notblank"`
	Price    Amount  `json:"price" validate:"required,notblank"`
}

type ProductDelivery struct {
	Item           Item   `json:"item"`
	RecipientEmail string `json:"recipientEmail" validate:"required,notblank"`
}
