// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/vechain/thor-vault/builtin/reverts"
)

var (
	ErrNotSigner          = reverts.Newf("not a signer")
	ErrProposalNotFound   = reverts.Newf("proposal not found")
	ErrProposalClosed     = reverts.Newf("proposal closed")
	ErrAlreadyVoted       = reverts.Newf("already voted")
	ErrInvalidConfig      = reverts.Newf("invalid vault config")
	ErrAlreadyInitialized = reverts.Newf("vault already initialized")
	ErrInvalidAmount      = reverts.Newf("invalid amount")
)
