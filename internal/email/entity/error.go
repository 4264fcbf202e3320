package entity

import (
	"errors"

	"github.com/banglapremium/mailrelay/internal/pkg/goerror"
)

var (
	ErrInvalidEmailType = goerror.NewInvalidFormat("Invalid email type")
	ErrInProgress       = goerror.NewBusiness("Email request already in progress", goerror.CodeConflict)
)

const (
	MsgInvalidEmailData = "Invalid email data"
	MsgSendFailed       = "Failed to send email"
)

// ErrSendFailed wraps a delivery cause in the generic client-facing failure.
func ErrSendFailed(cause error) error {
	if cause == nil {
		cause = errors.New("unknown delivery failure")
	}
	return goerror.NewServer(cause, MsgSendFailed)
}
