package entity

import (
	"bytes"
	"encoding/json"
)

// TypeTag names one of the fixed email templates.
type TypeTag string

const (
	TypeWelcome           TypeTag = "welcome"
	TypeLoginNotification TypeTag = "login-notification"
	TypePasswordReset     TypeTag = "password-reset"
	TypeBroadcast         TypeTag = "broadcast"
	TypeOrderStatusUpdate TypeTag = "order-status-update"
	TypeProductDelivery   TypeTag = "product-delivery"
)

// AllTypeTags lists every supported tag in a stable order.
func AllTypeTags() []TypeTag {
	return []TypeTag{
		TypeWelcome,
		TypeLoginNotification,
		TypePasswordReset,
		TypeBroadcast,
		TypeOrderStatusUpdate,
		TypeProductDelivery,
	}
}

// ParseTypeTag reports whether s is a supported tag. Matching is exact.
func ParseTypeTag(s string) (TypeTag, bool) {
	switch t := TypeTag(s); t {
	case TypeWelcome, TypeLoginNotification, TypePasswordReset,
		TypeBroadcast, TypeOrderStatusUpdate, TypeProductDelivery:
		return t, true
	default:
		return "", false
	}
}

func (t TypeTag) String() string {
	return string(t)
}

// TypeField is the "type" member of an inbound request. Any JSON value decodes:
// a string keeps its text, anything else keeps its raw encoding and so never
// names a supported tag.
type TypeField string

func (f *TypeField) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*f = TypeField(b)
		return nil
	}
	*f = TypeField(s)
	return nil
}
