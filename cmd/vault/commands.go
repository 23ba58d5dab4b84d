// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-vault/api"
	"github.com/vechain/thor-vault/builtin"
	"github.com/vechain/thor-vault/builtin/delegation"
	"github.com/vechain/thor-vault/genesis"
	"github.com/vechain/thor-vault/log"
	"github.com/vechain/thor-vault/metrics"
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/xenv"
)

func initAction(ctx *cli.Context) error {
	var (
		gen *genesis.Genesis
		err error
	)
	switch {
	case ctx.Bool(devFlag.Name):
		gen = genesis.Dev()
	case ctx.String(genesisFlag.Name) != "":
		if gen, err = genesis.Load(ctx.String(genesisFlag.Name)); err != nil {
			return err
		}
	default:
		return errors.New("either --genesis or --dev required")
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	if err := gen.Build(inst.rt); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "vault initialized at ledger %d with %d signers, threshold %d\n",
		gen.Ledger, len(gen.Signers), gen.Threshold)
	return nil
}

// callerAndDelegator reads --caller and --delegator, which defaults to the caller.
func callerAndDelegator(ctx *cli.Context) (thor.Address, thor.Address, error) {
	caller, err := parseAddress("caller", ctx.String(callerFlag.Name))
	if err != nil {
		return thor.Address{}, thor.Address{}, err
	}
	delegator := caller
	if s := ctx.String(delegatorFlag.Name); s != "" {
		if delegator, err = parseAddress("delegator", s); err != nil {
			return thor.Address{}, thor.Address{}, err
		}
	}
	return caller, delegator, nil
}

func delegateAction(ctx *cli.Context) error {
	caller, delegator, err := callerAndDelegator(ctx)
	if err != nil {
		return err
	}
	delegate, err := addressArg(ctx)
	if err != nil {
		return err
	}
	expiry := ctx.Uint64(expiryFlag.Name)
	if expiry > uint64(^uint32(0)) {
		return errors.New("expiry out of max uint32")
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	receipt, err := inst.invoke(ctx, caller, func(env *xenv.Environment) error {
		return builtin.Vault.Native(env).Delegations().Delegate(env.Caller(), delegator, delegate, uint32(expiry))
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%v delegated to %v at ledger %d (gas %d)\n", delegator, delegate, receipt.Ledger, receipt.GasUsed)
	return nil
}

func revokeAction(ctx *cli.Context) error {
	caller, delegator, err := callerAndDelegator(ctx)
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	receipt, err := inst.invoke(ctx, caller, func(env *xenv.Environment) error {
		return builtin.Vault.Native(env).Delegations().Revoke(env.Caller(), delegator)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "delegation of %v revoked at ledger %d\n", delegator, receipt.Ledger)
	return nil
}

func showAction(ctx *cli.Context) error {
	addr, err := addressArg(ctx)
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	var (
		record *delegation.Delegation
		ledger uint32
	)
	if err := inst.call(ctx, func(env *xenv.Environment) (err error) {
		ledger = env.BlockContext().Number
		record, _, err = builtin.Vault.Native(env).Delegations().Reconcile(addr)
		return
	}); err != nil {
		return err
	}

	w := ctx.App.Writer
	if ctx.Bool(debugFlag.Name) {
		spew.Fdump(w, record)
	}
	switch {
	case record.IsActive(ledger):
		expiry := "never"
		if !record.IsPermanent() {
			expiry = strconv.FormatUint(uint64(record.ExpiryLedger), 10)
		}
		fmt.Fprintf(w, "delegator  %v\ndelegate   %v\ncreated    %d\nexpires    %s\n",
			record.Delegator, record.Delegate, record.CreatedAt, expiry)
		return nil
	case record.IsExpired(ledger):
		return delegation.ErrExpired
	default:
		return delegation.ErrNotFound
	}
}

func historyAction(ctx *cli.Context) error {
	addr, err := addressArg(ctx)
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	var history delegation.History
	if err := inst.call(ctx, func(env *xenv.Environment) error {
		svc := builtin.Vault.Native(env).Delegations()
		if _, _, err := svc.Reconcile(addr); err != nil {
			return err
		}
		history, err = svc.History(addr)
		return err
	}); err != nil {
		return err
	}

	w := ctx.App.Writer
	for _, e := range history {
		switch e.Event {
		case delegation.EventVoteDelegated:
			fmt.Fprintf(w, "%8d %-15s %v proposal %d\n", e.AtLedger, delegation.EventName(e.Event), e.Delegate, e.ProposalID)
		default:
			fmt.Fprintf(w, "%8d %-15s %v\n", e.AtLedger, delegation.EventName(e.Event), e.Delegate)
		}
	}
	return nil
}

func resolveAction(ctx *cli.Context) error {
	addr, err := addressArg(ctx)
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	var effective thor.Address
	if err := inst.call(ctx, func(env *xenv.Environment) (err error) {
		effective, err = builtin.Vault.Native(env).Delegations().EffectiveVoter(addr)
		return
	}); err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, effective)
	return nil
}

func proposeAction(ctx *cli.Context) error {
	caller, err := parseAddress("caller", ctx.String(callerFlag.Name))
	if err != nil {
		return err
	}
	target, err := parseAddress("target", ctx.String(targetFlag.Name))
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx.String(amountFlag.Name))
	if err != nil {
		return err
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	var id uint64
	if _, err := inst.invoke(ctx, caller, func(env *xenv.Environment) (err error) {
		id, err = builtin.Vault.Native(env).Propose(env.Caller(), target, amount, ctx.String(memoFlag.Name))
		return
	}); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "proposal %d created\n", id)
	return nil
}

func voteAction(approve bool) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		caller, err := parseAddress("caller", ctx.String(callerFlag.Name))
		if err != nil {
			return err
		}
		if ctx.NArg() != 1 {
			return errors.New("exactly one proposal id required")
		}
		id, err := strconv.ParseUint(ctx.Args().First(), 0, 64)
		if err != nil {
			return errors.WithMessage(err, "proposal id")
		}

		inst, err := openInstance(ctx)
		if err != nil {
			return err
		}
		defer inst.Close()

		if _, err := inst.invoke(ctx, caller, func(env *xenv.Environment) error {
			v := builtin.Vault.Native(env)
			if approve {
				return v.Approve(env.Caller(), id)
			}
			return v.Abstain(env.Caller(), id)
		}); err != nil {
			return err
		}

		vote := "abstained on"
		if approve {
			vote = "approved"
		}
		fmt.Fprintf(ctx.App.Writer, "%v %s proposal %d\n", caller, vote, id)
		return nil
	}
}

func serveAction(ctx *cli.Context) error {
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	inst, err := openInstance(ctx)
	if err != nil {
		return err
	}
	defer inst.Close()

	reqLogger := &atomic.Bool{}
	reqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(inst.rt, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		CallGasLimit:         ctx.GlobalUint64(gasLimitFlag.Name),
		EnableReqLogger:      reqLogger,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
	})
	srv, listener, err := newAPIServer(ctx, handler)
	if err != nil {
		return err
	}

	exitCtx, cancel := handleExitSignal()
	defer cancel()

	group, groupCtx := errgroup.WithContext(exitCtx)
	group.Go(func() error {
		log.Info("API server started", "url", "http://"+listener.Addr().String()+"/", "head", inst.rt.Head())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
