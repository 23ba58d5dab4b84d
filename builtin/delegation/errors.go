// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"github.com/vechain/thor-vault/builtin/reverts"
)

var (
	ErrUnauthorized           = reverts.Newf("unauthorized")
	ErrAlreadyExists          = reverts.Newf("delegation already exists")
	ErrNotFound               = reverts.Newf("delegation not found")
	ErrExpired                = reverts.Newf("delegation expired")
	ErrCircularDelegation     = reverts.Newf("circular delegation")
	ErrDelegationChainTooLong = reverts.Newf("delegation chain too long")
)
