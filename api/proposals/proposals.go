// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proposals

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/api/restutil"
	"github.com/vechain/thor-vault/builtin"
	"github.com/vechain/thor-vault/builtin/vault"
	"github.com/vechain/thor-vault/runtime"
	"github.com/vechain/thor-vault/xenv"
)

// Proposals serves proposals and the vault setup.
type Proposals struct {
	caller *restutil.Caller
}

func New(rt *runtime.Runtime, callGasLimit uint64) *Proposals {
	return &Proposals{restutil.NewCaller(rt, callGasLimit)}
}

func (p *Proposals) handleGetProposal(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 0, 64)
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "id"))
	}

	var proposal *vault.Proposal
	err = p.caller.Call(req, func(env *xenv.Environment) error {
		proposal, err = builtin.Vault.Native(env).Proposal(id)
		return err
	}, vault.ErrProposalNotFound)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertProposal(proposal))
}

func (p *Proposals) handleGetSigners(w http.ResponseWriter, req *http.Request) error {
	var cfg *vault.Config
	err := p.caller.Call(req, func(env *xenv.Environment) (err error) {
		cfg, err = builtin.Vault.Native(env).Config()
		return
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Signers{Signers: cfg.Signers, Threshold: cfg.Threshold})
}

func (p *Proposals) handleGetReputation(w http.ResponseWriter, req *http.Request) error {
	addr, err := restutil.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}

	var repu *vault.Reputation
	err = p.caller.Call(req, func(env *xenv.Environment) error {
		repu, err = builtin.Vault.Native(env).Reputation(addr)
		return err
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertReputation(addr, repu))
}

func (p *Proposals) handleGetMostActive(w http.ResponseWriter, req *http.Request) error {
	var res *Reputation
	err := p.caller.Call(req, func(env *xenv.Environment) error {
		addr, repu, err := builtin.Vault.Native(env).MostActive()
		if err != nil {
			return err
		}
		res = convertReputation(addr, repu)
		return nil
	})
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, res)
}

// Mount registers /proposals/{id} and the /vault routes under the root.
func (p *Proposals) Mount(root *mux.Router, pathPrefix string) {
	sub := root
	if pathPrefix != "" {
		sub = root.PathPrefix(pathPrefix).Subrouter()
	}

	sub.Path("/proposals/{id}").
		Methods(http.MethodGet).
		Name("GET /proposals/{id}").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetProposal))
	sub.Path("/vault/signers").
		Methods(http.MethodGet).
		Name("GET /vault/signers").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetSigners))
	sub.Path("/vault/reputation/{address}").
		Methods(http.MethodGet).
		Name("GET /vault/reputation/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetReputation))
	sub.Path("/vault/most-active").
		Methods(http.MethodGet).
		Name("GET /vault/most-active").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetMostActive))
}
