package template

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/banglapremium/mailrelay/internal/email/entity"
	"github.com/banglapremium/mailrelay/internal/pkg/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, reg *Registry, tag entity.TypeTag, data string) string {
	t.Helper()

	tpl, ok := reg.Lookup(tag)
	require.True(t, ok)

	props := tpl.NewProps()
	require.NoError(t, json.Unmarshal([]byte(data), props))

	out, err := markup.NewRenderer().Render(tpl.Build(props))
	require.NoError(t, err)
	return out
}

func TestRegistry_EveryTagResolves(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, tag := range entity.AllTypeTags() {
		tpl, ok := reg.Lookup(tag)
		require.True(t, ok, tag)
		assert.NotNil(t, tpl.NewProps(), tag)
	}

	_, ok := reg.Lookup(entity.TypeTag("bogus"))
	assert.False(t, ok)
}

func TestRegistry_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tag  entity.TypeTag
		data string
		want string
	}{
		{
			name: "welcome",
			tag:  entity.TypeWelcome,
			data: `{"name":"Ada"}`,
			want: `<div><h1>Welcome to Banglapremium, Ada!</h1>` +
				`<p>Thank you for joining us. Your account has been created successfully.</p></div>`,
		},
		{
			name: "login notification",
			tag:  entity.TypeLoginNotification,
			data: `{"name":"Ada","email":"ada@example.com","loginTime":"2024-01-01 10:00"}`,
			want: `<div><h1>Login Notification</h1><p>Hello Ada,</p>` +
				`<p>You logged in to your Banglapremium account at 2024-01-01 10:00.</p>` +
				`<p>If this was not you, please contact support immediately.</p></div>`,
		},
		{
			name: "password reset",
			tag:  entity.TypePasswordReset,
			data: `{"resetLink":"https://example.com/r?t=1&u=2","expires":"tomorrow"}`,
			want: `<div><h1>Reset Your Banglapremium Password</h1>` +
				`<p>You requested a password reset for your Banglapremium account.</p>` +
				`<p>Click the link below to reset your password. This link will expire on tomorrow.</p>` +
				`<a href="https://example.com/r?t=1&amp;u=2">Reset Password</a>` +
				`<p>If you did not request this, please ignore this email.</p></div>`,
		},
		{
			name: "broadcast keeps raw markup",
			tag:  entity.TypeBroadcast,
			data: `{"subject":"News","message":"<b>x</b>"}`,
			want: `<div><h1>News</h1><div><b>x</b></div></div>`,
		},
		{
			name: "order status uses last eight chars",
			tag:  entity.TypeOrderStatusUpdate,
			data: `{"order":{"id":"abcdefgh12345678"},"userName":"Ada","status":"shipped","message":"On its way"}`,
			want: `<div><h1>Order Status Update</h1><p>Hello Ada,</p>` +
				`<p>Your order #12345678 status has been updated to: shipped</p>` +
				`<p>On its way</p><p>Thank you for choosing Banglapremium!</p></div>`,
		},
		{
			name: "product delivery",
			tag:  entity.TypeProductDelivery,
			data: `{"item":{"product":{"name":"Course"},"quantity":2,"price":9.99},"recipientEmail":"ada@example.com"}`,
			want: `<div><h1>Your Digital Product: Course</h1>` +
				`<p>Congratulations! Your digital product has been delivered.</p>` +
				`<h2>Product Details:</h2><ul><li>Product: Course</li><li>Quantity: 2</li><li>Price: $9.99</li></ul>` +
				`<p>If you have any questions, please contact our support team.</p>` +
				`<p>Thank you for your purchase!</p></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, render(t, NewRegistry(), tt.tag, tt.data))
		})
	}
}

func TestRegistry_ProductDeliveryAmounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quantity string
		price    string
		want     string
	}{
		{name: "shortest number form", quantity: `1`, price: `10.50`, want: `<li>Quantity: 1</li><li>Price: $10.5</li>`},
		{name: "free text kept", quantity: `"2 pcs"`, price: `"10.50"`, want: `<li>Quantity: 2 pcs</li><li>Price: $10.50</li>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := render(t, NewRegistry(), entity.TypeProductDelivery,
				`{"item":{"product":{"name":"Course"},"quantity":`+tt.quantity+`,"price":`+tt.price+`},"recipientEmail":"a@b.com"}`)

			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRegistry_EscapesText(t *testing.T) {
	t.Parallel()

	out := render(t, NewRegistry(), entity.TypeWelcome, `{"name":"<script>alert(1)</script>"}`)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRegistry_OrderIDNotReferencedInFull(t *testing.T) {
	t.Parallel()

	out := render(t, NewRegistry(), entity.TypeOrderStatusUpdate,
		`{"order":{"id":"abcdefgh12345678"},"userName":"A","status":"s","message":"m"}`)

	assert.Contains(t, out, "12345678")
	assert.NotContains(t, out, "abcdefgh")
}

func TestRegistry_BroadcastSanitizer(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(WithSanitizer(markup.NewSanitizer().Sanitize))
	out := render(t, reg, entity.TypeBroadcast, `{"subject":"S","message":"<b>x</b><script>alert(1)</script>"}`)

	assert.Contains(t, out, "<b>x</b>")
	assert.False(t, strings.Contains(out, "<script>"))
}

func TestLastRunes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", lastRunes("short", 8))
	assert.Equal(t, "ñbcdefgh", lastRunes("aaañbcdefgh", 8))
}
