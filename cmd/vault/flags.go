// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-vault/log"
	"github.com/vechain/thor-vault/thor"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the vault databases",
	}
	ledgerFlag = cli.Uint64Flag{
		Name:  "ledger",
		Usage: "ledger to run the command at (0 for the current head)",
	}
	gasLimitFlag = cli.Uint64Flag{
		Name:  "gas-limit",
		Value: thor.InvocationGasLimit,
		Usage: "gas limit of a single invocation",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelWarn,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}

	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to the yaml genesis file",
	}
	devFlag = cli.BoolFlag{
		Name:  "dev",
		Usage: "use the dev genesis",
	}
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address of the signer invoking the command",
	}
	delegatorFlag = cli.StringFlag{
		Name:  "delegator",
		Usage: "delegator address, defaults to the caller",
	}
	expiryFlag = cli.Uint64Flag{
		Name:  "expiry",
		Usage: "ledger at which the delegation ends (0 for permanent)",
	}
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "dump the raw records",
	}
	targetFlag = cli.StringFlag{
		Name:  "target",
		Usage: "recipient of the proposed transfer",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount of the proposed transfer, decimal or 0x hex",
	}
	memoFlag = cli.StringFlag{
		Name:  "memo",
		Usage: "free text attached to the proposal",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8680",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "log API requests slower than this many milliseconds (0 disables)",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log API requests answered with 5xx",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection, served at /metrics",
	}
)
