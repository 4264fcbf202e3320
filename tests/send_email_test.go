package tests

import (
	"net/http"
	"testing"
)

func sendEmail(t *testing.T, typ string, data map[string]any) (int, []byte) {
	t.Helper()

	return doJSON(t, http.MethodPost, "/send-email", map[string]any{
		"to":      "ada@example.com",
		"subject": "Hi",
		"type":    typ,
		"data":    data,
	}, nil)
}

func TestSendEmail(t *testing.T) {

	t.Run("EveryType", func(t *testing.T) {

		// Arrange
		cases := map[string]map[string]any{
			"welcome":            {"name": "Ada"},
			"login-notification": {"name": "Ada", "email": "ada@example.com", "loginTime": "now"},
			"password-reset":     {"resetLink": "https://example.com/reset", "expires": "tomorrow"},
			"broadcast":          {"subject": "News", "message": "<b>x</b>"},
			"order-status-update": {
				"order": map[string]any{"id": "abcdefgh12345678"}, "userName": "Ada", "status": "shipped", "message": "ok",
			},
			"product-delivery": {
				"item":           map[string]any{"product": map[string]any{"name": "Course"}, "quantity": 1, "price": 9.99},
				"recipientEmail": "ada@example.com",
			},
		}

		for typ, data := range cases {
			// Act
			status, body := sendEmail(t, typ, data)

			// Assert
			if status != http.StatusOK {
				t.Fatalf("%s: expected 200, got %d: %s", typ, status, body)
			}
			if got := decode[messageEnvelope](t, body).Message; got != "Email sent successfully" {
				t.Fatalf("%s: unexpected message %q", typ, got)
			}
		}
	})

	t.Run("UnknownType", func(t *testing.T) {

		// Act
		status, body := sendEmail(t, "bogus", map[string]any{"name": "Ada"})

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", status, body)
		}
		if got := decode[errorEnvelope](t, body).Error; got != "Invalid email type" {
			t.Fatalf("unexpected error %q", got)
		}
	})

	t.Run("MissingField", func(t *testing.T) {

		// Act
		status, body := sendEmail(t, "welcome", map[string]any{})

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", status, body)
		}
		if _, ok := decode[errorEnvelope](t, body).Fields["name"]; !ok {
			t.Fatalf("expected field error for name: %s", body)
		}
	})
}

func TestHealth(t *testing.T) {

	// Act
	status, body := doJSON(t, http.MethodGet, "/health", nil, nil)

	// Assert
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got := decode[messageEnvelope](t, body).Message; got != "ok" {
		t.Fatalf("unexpected message %q", got)
	}
}
