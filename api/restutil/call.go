// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"math"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/builtin/reverts"
	"github.com/vechain/thor-vault/runtime"
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/xenv"
)

// ParseLedger parses the ledger query parameter. Empty or "head" means the
// current head of the runtime.
func ParseLedger(ledger string, head uint32) (uint32, error) {
	if ledger == "" || ledger == "head" {
		return head, nil
	}
	n, err := strconv.ParseUint(ledger, 0, 0)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint32 {
		return 0, errors.New("ledger number out of max uint32")
	}
	return uint32(n), nil
}

// ParseAddress parses an address path or query parameter.
func ParseAddress(s string) (thor.Address, error) {
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return thor.Address{}, BadRequest(errors.WithMessage(err, "address"))
	}
	return addr, nil
}

// Caller runs read invocations for the handlers.
type Caller struct {
	rt       *runtime.Runtime
	gasLimit uint64
}

func NewCaller(rt *runtime.Runtime, gasLimit uint64) *Caller {
	return &Caller{rt: rt, gasLimit: gasLimit}
}

// Call runs fn at the ledger given by the "ledger" query parameter. Reads never move
// the head: at the head, lazy expiries observed by fn are committed, above it fn
// previews the ledger without committing.
// Reverts matching one of notFound are answered 404, other reverts 400.
func (c *Caller) Call(req *http.Request, fn runtime.Invocation, notFound ...error) error {
	ledger, err := ParseLedger(req.URL.Query().Get("ledger"), c.rt.Head())
	if err != nil {
		return BadRequest(errors.WithMessage(err, "ledger"))
	}
	_, err = c.rt.Call(ledger, c.gasLimit, fn)
	if err == nil {
		return nil
	}
	for _, nf := range notFound {
		if errors.Is(err, nf) {
			return NotFound(err)
		}
	}
	switch {
	case errors.Is(err, runtime.ErrStaleLedger):
		return BadRequest(err)
	case reverts.IsRevertErr(err):
		return BadRequest(err)
	case errors.Is(err, xenv.ErrOutOfGas):
		return Forbidden(errors.WithMessage(err, "call gas limit"))
	}
	return err
}
