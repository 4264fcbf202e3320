package mail

import "context"

// Unavailable stands in for a transport whose configuration is incomplete.
// Every Send returns the configuration error, so callers report it per message.
type Unavailable struct {
	err error
}

func NewUnavailable(err error) *Unavailable {
	return &Unavailable{err: err}
}

func (u *Unavailable) Send(ctx context.Context, _ Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return u.err
}

func (u *Unavailable) Close() error {
	return nil
}
