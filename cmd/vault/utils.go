// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"math/big"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	goruntime "runtime"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-vault/builtin"
	"github.com/vechain/thor-vault/log"
	"github.com/vechain/thor-vault/logdb"
	"github.com/vechain/thor-vault/lvldb"
	"github.com/vechain/thor-vault/runtime"
	"github.com/vechain/thor-vault/thor"
	"github.com/vechain/thor-vault/tx"
	"github.com/vechain/thor-vault/xenv"
)

func initLogger(ctx *cli.Context) {
	log.Init(int(ctx.GlobalUint64(verbosityFlag.Name)), ctx.GlobalBool(jsonLogsFlag.Name))
}

// copy from go-ethereum
func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch goruntime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.vault")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.vault")
		default:
			return filepath.Join(home, ".org.vechain.vault")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

type instance struct {
	rt     *runtime.Runtime
	mainDB *lvldb.LevelDB
	logDB  *logdb.LogDB
}

func (i *instance) Close() {
	if err := i.logDB.Close(); err != nil {
		log.Warn("failed to close log database", "err", err)
	}
	if err := i.mainDB.Close(); err != nil {
		log.Warn("failed to close main database", "err", err)
	}
}

// openInstance opens the databases under the data dir, creating them if absent.
func openInstance(ctx *cli.Context) (*instance, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return nil, errors.New("unable to infer default data dir, use -data-dir to specify")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data dir [%v]", dataDir)
	}

	mainDB, err := lvldb.New(filepath.Join(dataDir, "main.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open main database")
	}
	logDB, err := logdb.New(filepath.Join(dataDir, "logs.db"))
	if err != nil {
		mainDB.Close()
		return nil, errors.Wrap(err, "open log database")
	}
	rt, err := runtime.New(mainDB, logDB, builtin.Vault.Address, 1024)
	if err != nil {
		logDB.Close()
		mainDB.Close()
		return nil, err
	}
	return &instance{rt: rt, mainDB: mainDB, logDB: logDB}, nil
}

// ledger returns the ledger of the --ledger flag, the head when unset.
func (i *instance) ledger(ctx *cli.Context) (uint32, error) {
	n := ctx.GlobalUint64(ledgerFlag.Name)
	if n == 0 {
		return i.rt.Head(), nil
	}
	if n > uint64(^uint32(0)) {
		return 0, errors.New("ledger number out of max uint32")
	}
	return uint32(n), nil
}

// invoke runs fn at the requested ledger as the caller.
func (i *instance) invoke(ctx *cli.Context, caller thor.Address, fn runtime.Invocation) (*tx.Receipt, error) {
	ledger, err := i.ledger(ctx)
	if err != nil {
		return nil, err
	}
	blockCtx := &xenv.BlockContext{Number: ledger, Time: uint64(time.Now().Unix())}
	receipt, err := i.rt.Execute(blockCtx, caller, ctx.GlobalUint64(gasLimitFlag.Name), fn)
	if err != nil {
		return nil, err
	}
	log.Debug("invocation applied", "ledger", receipt.Ledger, "gas", receipt.GasUsed, "events", len(receipt.Events))
	return receipt, nil
}

// call runs the read fn at the requested ledger without moving the head.
func (i *instance) call(ctx *cli.Context, fn runtime.Invocation) error {
	ledger, err := i.ledger(ctx)
	if err != nil {
		return err
	}
	_, err = i.rt.Call(ledger, ctx.GlobalUint64(gasLimitFlag.Name), fn)
	return err
}

func parseAddress(name, s string) (thor.Address, error) {
	if s == "" {
		return thor.Address{}, errors.Errorf("%s required", name)
	}
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return thor.Address{}, errors.WithMessage(err, name)
	}
	return addr, nil
}

func addressArg(ctx *cli.Context) (thor.Address, error) {
	if ctx.NArg() != 1 {
		return thor.Address{}, errors.New("exactly one address argument required")
	}
	return parseAddress("address", ctx.Args().First())
}

func parseAmount(s string) (*big.Int, error) {
	amount, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

func handleExitSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newAPIServer(ctx *cli.Context, handler http.Handler) (*http.Server, net.Listener, error) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = http.TimeoutHandler(handler, time.Duration(timeout)*time.Millisecond, "request timeout")
	}
	return &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}, listener, nil
}
