// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delegations

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/thor-vault/api/restutil"
	"github.com/vechain/thor-vault/builtin"
	"github.com/vechain/thor-vault/builtin/delegation"
	"github.com/vechain/thor-vault/runtime"
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/xenv"
)

type Delegations struct {
	caller *restutil.Caller
}

func New(rt *runtime.Runtime, callGasLimit uint64) *Delegations {
	return &Delegations{restutil.NewCaller(rt, callGasLimit)}
}

func (d *Delegations) handleGetDelegation(w http.ResponseWriter, req *http.Request) error {
	delegator, err := restutil.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}

	var (
		record *delegation.Delegation
		ledger uint32
	)
	// reconcile instead of ActiveDelegation, so that an observed expiry is committed
	err = d.caller.Call(req, func(env *xenv.Environment) error {
		ledger = env.BlockContext().Number
		record, _, err = builtin.Vault.Native(env).Delegations().Reconcile(delegator)
		return err
	})
	if err != nil {
		return err
	}

	switch {
	case record.IsActive(ledger):
		return restutil.WriteJSON(w, convertDelegation(record))
	case record.IsExpired(ledger):
		return restutil.NotFound(delegation.ErrExpired)
	default:
		return restutil.NotFound(delegation.ErrNotFound)
	}
}

func (d *Delegations) handleGetHistory(w http.ResponseWriter, req *http.Request) error {
	delegator, err := restutil.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}

	var history delegation.History
	err = d.caller.Call(req, func(env *xenv.Environment) error {
		svc := builtin.Vault.Native(env).Delegations()
		if _, _, err := svc.Reconcile(delegator); err != nil {
			return err
		}
		history, err = svc.History(delegator)
		return err
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertHistory(history))
}

func (d *Delegations) handleGetEffectiveVoter(w http.ResponseWriter, req *http.Request) error {
	voter, err := restutil.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}

	var (
		effective thor.Address
		ledger    uint32
	)
	err = d.caller.Call(req, func(env *xenv.Environment) error {
		ledger = env.BlockContext().Number
		effective, err = builtin.Vault.Native(env).Delegations().EffectiveVoter(voter)
		return err
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &EffectiveVoter{
		Voter:     voter,
		Effective: effective,
		Delegated: effective != voter,
		Ledger:    ledger,
	})
}

func (d *Delegations) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /delegations/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(d.handleGetDelegation))
	sub.Path("/{address}/history").
		Methods(http.MethodGet).
		Name("GET /delegations/{address}/history").
		HandlerFunc(restutil.WrapHandlerFunc(d.handleGetHistory))
	sub.Path("/{address}/effective-voter").
		Methods(http.MethodGet).
		Name("GET /delegations/{address}/effective-voter").
		HandlerFunc(restutil.WrapHandlerFunc(d.handleGetEffectiveVoter))
}
