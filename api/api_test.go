// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-vault/api"
	"github.com/vechain/thor-vault/builtin"
	"github.com/vechain/thor-vault/genesis"
	"github.com/vechain/thor-vault/logdb"
	"github.com/vechain/thor-vault/lvldb"
	"github.com/vechain/thor-vault/metrics"
	"github.com/vechain/thor-vault/runtime"
	"github.com/vechain/thor-vault/test/datagen"
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/xenv"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

type testVault struct {
	ts      *httptest.Server
	rt      *runtime.Runtime
	signers []thor.Address
}

// newTestVault sets up signers a, b, c, d with a -> b (expiry 50), b -> c and a
// proposal approved by a at ledger 5, resolved to c.
func newTestVault(t *testing.T) *testVault {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() {
		logDB.Close()
		db.Close()
	})

	rt, err := runtime.New(db, logDB, builtin.Vault.Address, 64)
	require.NoError(t, err)

	signers := datagen.RandAddresses(4)
	gen := &genesis.Genesis{
		Ledger:    1,
		Signers:   signers,
		Threshold: 2,
		Delegations: []genesis.Delegation{
			{Delegator: signers[0], Delegate: signers[1], Expiry: 50},
			{Delegator: signers[1], Delegate: signers[2]},
		},
	}
	require.NoError(t, gen.Build(rt))

	invoke := func(ledger uint32, caller thor.Address, fn runtime.Invocation) {
		_, err := rt.Execute(&xenv.BlockContext{Number: ledger}, caller, thor.InvocationGasLimit, fn)
		require.NoError(t, err)
	}
	invoke(4, signers[3], func(env *xenv.Environment) error {
		_, err := builtin.Vault.Native(env).Propose(env.Caller(), datagen.RandAddress(), big.NewInt(1000), "grant")
		return err
	})
	invoke(5, signers[0], func(env *xenv.Environment) error {
		return builtin.Vault.Native(env).Approve(env.Caller(), 1)
	})

	ts := httptest.NewServer(api.New(rt, api.Options{
		AllowedOrigins: "*",
		CallGasLimit:   thor.InvocationGasLimit,
		EnableMetrics:  true,
		LogsLimit:      100,
	}))
	t.Cleanup(ts.Close)

	return &testVault{ts: ts, rt: rt, signers: signers}
}

func (tv *testVault) get(t *testing.T, path string) ([]byte, int) {
	res, err := http.Get(tv.ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func (tv *testVault) getJSON(t *testing.T, path string, v any) {
	body, code := tv.get(t, path)
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, v))
}

func TestDelegation(t *testing.T) {
	tv := newTestVault(t)
	a, b, c := tv.signers[0], tv.signers[1], tv.signers[2]

	var d map[string]any
	tv.getJSON(t, "/delegations/"+a.String(), &d)
	assert.Equal(t, a.String(), d["delegator"])
	assert.Equal(t, b.String(), d["delegate"])
	assert.Equal(t, float64(50), d["expiryLedger"])
	assert.Equal(t, false, d["permanent"])
	assert.Equal(t, "active", d["status"])

	tv.getJSON(t, "/delegations/"+b.String(), &d)
	assert.Equal(t, true, d["permanent"])

	body, code := tv.get(t, "/delegations/"+c.String())
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "delegation not found", strings.TrimSpace(string(body)))

	_, code = tv.get(t, "/delegations/0xzz")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDelegationExpiry(t *testing.T) {
	tv := newTestVault(t)
	a, d := tv.signers[0], tv.signers[3]

	// reads above the head preview the ledger and leave the head alone
	body, code := tv.get(t, "/delegations/"+a.String()+"?ledger=60")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "delegation expired", strings.TrimSpace(string(body)))

	var ev map[string]any
	tv.getJSON(t, "/delegations/"+a.String()+"/effective-voter?ledger=4294967295", &ev)
	assert.Equal(t, a.String(), ev["effective"])
	assert.Equal(t, uint32(5), tv.rt.Head())

	var history []map[string]any
	tv.getJSON(t, "/delegations/"+a.String()+"/history", &history)
	assert.Len(t, history, 2)

	// a signer moves the head past the expiry, the next read commits it
	_, err := tv.rt.Execute(&xenv.BlockContext{Number: 60}, d, thor.InvocationGasLimit, func(env *xenv.Environment) error {
		_, err := builtin.Vault.Native(env).Propose(env.Caller(), datagen.RandAddress(), big.NewInt(1), "")
		return err
	})
	require.NoError(t, err)

	body, code = tv.get(t, "/delegations/"+a.String())
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "delegation expired", strings.TrimSpace(string(body)))

	tv.getJSON(t, "/delegations/"+a.String()+"/history", &history)
	require.Len(t, history, 3)
	assert.Equal(t, "created", history[0]["event"])
	assert.Equal(t, float64(60), history[0]["closedAt"])
	assert.Equal(t, "delegated_vote", history[1]["event"])
	assert.Equal(t, float64(1), history[1]["proposalId"])
	assert.Equal(t, "expired", history[2]["event"])

	var expired []map[string]any
	tv.getJSON(t, "/events?topic=delegation_expired", &expired)
	require.Len(t, expired, 1)
	assert.Equal(t, float64(60), expired[0]["ledger"])

	_, code = tv.get(t, "/delegations/"+a.String()+"?ledger=10")
	assert.Equal(t, http.StatusBadRequest, code, "stale ledger")

	_, code = tv.get(t, "/delegations/"+a.String()+"?ledger=abc")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestEffectiveVoter(t *testing.T) {
	tv := newTestVault(t)
	a, c, d := tv.signers[0], tv.signers[2], tv.signers[3]

	var ev map[string]any
	tv.getJSON(t, "/delegations/"+a.String()+"/effective-voter", &ev)
	assert.Equal(t, c.String(), ev["effective"])
	assert.Equal(t, true, ev["delegated"])
	assert.Equal(t, float64(5), ev["ledger"])

	tv.getJSON(t, "/delegations/"+d.String()+"/effective-voter", &ev)
	assert.Equal(t, d.String(), ev["effective"])
	assert.Equal(t, false, ev["delegated"])
}

func TestProposals(t *testing.T) {
	tv := newTestVault(t)
	a, c := tv.signers[0], tv.signers[2]

	var p map[string]any
	tv.getJSON(t, "/proposals/1", &p)
	assert.Equal(t, float64(1), p["id"])
	assert.Equal(t, "pending", p["status"])
	assert.Equal(t, "grant", p["memo"])
	assert.Equal(t, "0x3e8", p["amount"])
	assert.Equal(t, float64(1), p["approvals"])
	ballots := p["ballots"].([]any)
	require.Len(t, ballots, 1)
	ballot := ballots[0].(map[string]any)
	assert.Equal(t, c.String(), ballot["voter"])
	assert.Equal(t, a.String(), ballot["caller"])
	assert.Equal(t, "approve", ballot["vote"])

	_, code := tv.get(t, "/proposals/2")
	assert.Equal(t, http.StatusNotFound, code)
	_, code = tv.get(t, "/proposals/x")
	assert.Equal(t, http.StatusBadRequest, code)

	var signers map[string]any
	tv.getJSON(t, "/vault/signers", &signers)
	assert.Len(t, signers["signers"], 4)
	assert.Equal(t, float64(2), signers["threshold"])

	var repu map[string]any
	tv.getJSON(t, "/vault/reputation/"+c.String(), &repu)
	assert.Equal(t, float64(1), repu["votes"])
	assert.Equal(t, float64(1), repu["delegated"])
	assert.Equal(t, float64(5), repu["lastLedger"])

	tv.getJSON(t, "/vault/reputation/"+a.String(), &repu)
	assert.Equal(t, float64(0), repu["votes"])

	tv.getJSON(t, "/vault/most-active", &repu)
	assert.Equal(t, c.String(), repu["address"])
}

func TestEvents(t *testing.T) {
	tv := newTestVault(t)
	a, b := tv.signers[0], tv.signers[1]

	var evs []map[string]any
	tv.getJSON(t, "/events?topic=delegation_created", &evs)
	require.Len(t, evs, 2)
	assert.Equal(t, "delegation_created", evs[0]["name"])
	assert.Equal(t, float64(1), evs[0]["ledger"])
	assert.Equal(t, float64(0), evs[0]["index"])
	assert.Equal(t, float64(1), evs[1]["index"])
	decoded := evs[0]["decoded"].(map[string]any)
	assert.Equal(t, float64(50), decoded["expiryLedger"])

	// b is the delegate of the first and the delegator of the second
	tv.getJSON(t, "/events?topic=delegation_created&subject="+b.String(), &evs)
	assert.Len(t, evs, 2)
	tv.getJSON(t, "/events?topic=delegation_created&subject="+a.String(), &evs)
	assert.Len(t, evs, 1)

	tv.getJSON(t, "/events?topic=delegated_vote", &evs)
	require.Len(t, evs, 1)
	assert.Equal(t, a.String(), evs[0]["caller"])
	assert.Equal(t, float64(1), evs[0]["decoded"].(map[string]any)["proposalId"])

	tv.getJSON(t, "/events?from=4&to=4", &evs)
	require.Len(t, evs, 1)
	assert.Equal(t, "proposal_created", evs[0]["name"])

	tv.getJSON(t, "/events?from=5&order=desc&limit=1", &evs)
	require.Len(t, evs, 1)
	assert.Equal(t, "vote_cast", evs[0]["name"])

	_, code := tv.get(t, "/events?limit=1000")
	assert.Equal(t, http.StatusForbidden, code)
	_, code = tv.get(t, "/events?from=5&to=2")
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = tv.get(t, "/events?subject=0x1")
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = tv.get(t, "/events?order=up")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDocAndHeaders(t *testing.T) {
	tv := newTestVault(t)

	res, err := http.Get(tv.ts.URL + "/doc/vault.yaml")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("x-vault-ver"))

	var status map[string]any
	tv.getJSON(t, "/admin/health", &status)
	assert.Equal(t, true, status["healthy"])
	assert.Equal(t, float64(5), status["head"])
}

func TestMetrics(t *testing.T) {
	tv := newTestVault(t)

	tv.get(t, "/delegations/"+tv.signers[0].String())
	tv.get(t, "/delegations/"+tv.signers[3].String())

	body, code := tv.get(t, "/metrics")
	require.Equal(t, http.StatusOK, code)

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	family, ok := families["vault_metrics_api_request_count"]
	require.True(t, ok)

	codes := make(map[string]float64)
	for _, m := range family.GetMetric() {
		labels := make(map[string]string)
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		if labels["name"] == "delegations_address" {
			codes[labels["code"]] += m.GetCounter().GetValue()
		}
	}
	assert.GreaterOrEqual(t, codes["200"], float64(1))
	assert.GreaterOrEqual(t, codes["404"], float64(1))

	_, ok = families["vault_metrics_runtime_invocations_count"]
	assert.True(t, ok)
}
