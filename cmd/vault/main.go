// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "vault"
	app.Usage = "Delegated voting of a multisig treasury vault"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		dataDirFlag,
		ledgerFlag,
		gasLimitFlag,
		verbosityFlag,
		jsonLogsFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		initLogger(ctx)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "apply a genesis to an empty data dir",
			Flags:  []cli.Flag{genesisFlag, devFlag},
			Action: initAction,
		},
		{
			Name:      "delegate",
			Usage:     "delegate the voting power of the delegator",
			ArgsUsage: "<delegate>",
			Flags:     []cli.Flag{callerFlag, delegatorFlag, expiryFlag},
			Action:    delegateAction,
		},
		{
			Name:   "revoke",
			Usage:  "revoke the active delegation of the delegator",
			Flags:  []cli.Flag{callerFlag, delegatorFlag},
			Action: revokeAction,
		},
		{
			Name:      "show",
			Usage:     "show the active delegation of an address",
			ArgsUsage: "<address>",
			Flags:     []cli.Flag{debugFlag},
			Action:    showAction,
		},
		{
			Name:      "history",
			Usage:     "list the delegation history of an address",
			ArgsUsage: "<address>",
			Action:    historyAction,
		},
		{
			Name:      "resolve",
			Usage:     "resolve the effective voter of an address",
			ArgsUsage: "<address>",
			Action:    resolveAction,
		},
		{
			Name:   "propose",
			Usage:  "create a transfer proposal",
			Flags:  []cli.Flag{callerFlag, targetFlag, amountFlag, memoFlag},
			Action: proposeAction,
		},
		{
			Name:      "approve",
			Usage:     "approve a proposal",
			ArgsUsage: "<proposal id>",
			Flags:     []cli.Flag{callerFlag},
			Action:    voteAction(true),
		},
		{
			Name:      "abstain",
			Usage:     "abstain on a proposal",
			ArgsUsage: "<proposal id>",
			Flags:     []cli.Flag{callerFlag},
			Action:    voteAction(false),
		},
		{
			Name:  "serve",
			Usage: "serve the REST API",
			Flags: []cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				apiTimeoutFlag,
				apiLogsLimitFlag,
				enableAPILogsFlag,
				apiSlowQueriesThresholdFlag,
				apiLog5xxErrorsFlag,
				enableMetricsFlag,
			},
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
