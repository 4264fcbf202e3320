package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAddresses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a@b.com", "c@d.com"}, SplitAddresses(" a@b.com, ,c@d.com "))
	assert.Empty(t, SplitAddresses(""))
}

func TestLog_Send(t *testing.T) {
	t.Parallel()

	l := NewLog("no-reply@banglapremium.com")

	assert.NoError(t, l.Send(context.Background(), Message{To: []string{"a@b.com"}, Subject: "Hi", HTML: "<p>x</p>"}))
	assert.ErrorIs(t, l.Send(context.Background(), Message{Subject: "Hi"}), ErrNoRecipients)
	assert.ErrorIs(t, NewLog("").Send(context.Background(), Message{To: []string{"a@b.com"}}), ErrNoSender)
	assert.NoError(t, l.Close())
}

func TestNewFromDriver(t *testing.T) {
	t.Parallel()

	smtpCfg := SMTPConfig{Host: "smtp.example.com", Port: 465}

	tests := []struct {
		name    string
		cfg     Config
		want    any
		wantErr bool
	}{
		{name: "default is smtp", cfg: Config{SMTP: smtpCfg, From: "a@b.com"}, want: &SMTP{}},
		{name: "smtp", cfg: Config{Driver: "SMTP", SMTP: smtpCfg}, want: &SMTP{}},
		{name: "smtp missing host", cfg: Config{Driver: "smtp"}, want: &Unavailable{}},
		{name: "smtp missing port", cfg: Config{Driver: "smtp", SMTP: SMTPConfig{Host: "smtp.example.com"}}, want: &Unavailable{}},
		{name: "resend", cfg: Config{Driver: "resend", Resend: ResendConfig{APIKey: "re_x"}}, want: &Resend{}},
		{name: "resend missing key", cfg: Config{Driver: "resend"}, wantErr: true},
		{name: "log", cfg: Config{Driver: "log"}, want: &Log{}},
		{name: "unknown", cfg: Config{Driver: "pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewFromDriver(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestNewFromDriver_SMTPWithoutHostFailsEachSend(t *testing.T) {
	t.Parallel()

	// Arrange
	m, err := NewFromDriver(Config{Driver: DriverSMTP, From: "no-reply@banglapremium.com"})
	require.NoError(t, err)

	// Act
	sendErr := m.Send(context.Background(), Message{To: []string{"a@b.com"}, Subject: "Hi", HTML: "<p>x</p>"})

	// Assert
	require.ErrorIs(t, sendErr, ErrSMTPHostPortRequired)
	assert.NoError(t, m.Close())
}

func TestUnavailable_Send_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewUnavailable(ErrSMTPHostPortRequired).Send(ctx, Message{To: []string{"a@b.com"}})

	assert.ErrorIs(t, err, context.Canceled)
}
