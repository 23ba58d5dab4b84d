// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/thor-vault/thor"
)

func TestDelegationPredicates(t *testing.T) {
	var empty *Delegation
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.IsActive(1))
	assert.False(t, empty.IsExpired(1))
	assert.True(t, (&Delegation{}).IsEmpty())

	permanent := &Delegation{Delegator: thor.Address{1}, Delegate: thor.Address{2}, Status: StatusActive}
	assert.True(t, permanent.IsPermanent())
	assert.True(t, permanent.IsActive(1_000_000))
	assert.False(t, permanent.IsExpired(1_000_000))

	timed := &Delegation{Delegator: thor.Address{1}, Delegate: thor.Address{2}, Status: StatusActive, ExpiryLedger: 100}
	assert.False(t, timed.IsPermanent())
	assert.True(t, timed.IsActive(99))
	assert.False(t, timed.IsExpired(99))
	assert.False(t, timed.IsActive(100))
	assert.True(t, timed.IsExpired(100))
	assert.True(t, timed.IsExpired(101))

	revoked := &Delegation{Status: StatusRevoked, ExpiryLedger: 100}
	assert.False(t, revoked.IsActive(1))
	assert.False(t, revoked.IsExpired(200))

	expired := &Delegation{Status: StatusExpired, ExpiryLedger: 100}
	assert.False(t, expired.IsActive(1))
	assert.True(t, expired.IsExpired(1))
}

func TestHistoryOpenIndex(t *testing.T) {
	var h History
	assert.Equal(t, -1, h.openIndex())

	h = History{
		{Event: EventCreated, AtLedger: 1, Closed: true, ClosedAt: 5},
		{Event: EventRevoked, AtLedger: 5},
		{Event: EventCreated, AtLedger: 6},
		{Event: EventVoteDelegated, AtLedger: 7, ProposalID: 1},
	}
	assert.Equal(t, 2, h.openIndex())
	assert.Len(t, h.Filter(EventCreated), 2)

	h[2].close(8)
	assert.Equal(t, -1, h.openIndex())

	// closed at the genesis ledger
	h = History{{Event: EventCreated, AtLedger: 0}}
	h[0].close(0)
	assert.Equal(t, -1, h.openIndex())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "active", StatusName(StatusActive))
	assert.Equal(t, "revoked", StatusName(StatusRevoked))
	assert.Equal(t, "expired", StatusName(StatusExpired))
	assert.Equal(t, "unknown", StatusName(StatusUnknown))
	assert.Equal(t, "created", EventName(EventCreated))
	assert.Equal(t, "delegated_vote", EventName(EventVoteDelegated))
}
