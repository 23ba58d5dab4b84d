// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"github.com/pkg/errors"
)

// ErrRevert is a business rule violation. It reverts every state change and event
// of the invocation, and is reported to the caller as the revert reason.
type ErrRevert struct {
	cause error
}

// New wraps the cause as a revert error.
func New(cause error) *ErrRevert {
	return &ErrRevert{cause: cause}
}

// Newf formats a new revert error.
func Newf(format string, args ...any) *ErrRevert {
	return &ErrRevert{cause: errors.Errorf(format, args...)}
}

func (e *ErrRevert) Error() string {
	return e.cause.Error()
}

func (e *ErrRevert) Unwrap() error {
	return e.cause
}

// Reason returns the message reported to the caller.
func (e *ErrRevert) Reason() string {
	if e == nil {
		return ""
	}
	return e.cause.Error()
}

// IsRevertErr reports whether err carries a revert error.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var re *ErrRevert
	if errors.As(e, &re) {
		return re != nil
	}
	return false
}
