// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "datadir",
		EnvVar: "VALPOOL_DATADIR",
		Usage:  "directory for the pool databases, empty runs in memory",
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  128,
		EnvVar: "VALPOOL_CACHE",
		Usage:  "megabytes of ram allocated to the main database cache",
	}
	skipClockCheckFlag = cli.BoolFlag{
		Name:   "skip-clock-check",
		EnvVar: "VALPOOL_SKIP_CLOCK_CHECK",
		Usage:  "do not compare the local clock with NTP",
	}
	genesisFlag = cli.StringFlag{
		Name:   "genesis",
		EnvVar: "VALPOOL_GENESIS",
		Usage:  "path to a genesis YAML file, defaults to the development sample",
	}
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8680",
		EnvVar: "VALPOOL_API_ADDR",
		Usage:  "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:   "api-cors",
		EnvVar: "VALPOOL_API_CORS",
		Usage:  "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiEventsLimitFlag = cli.Uint64Flag{
		Name:   "api-events-limit",
		Value:  1000,
		EnvVar: "VALPOOL_API_EVENTS_LIMIT",
		Usage:  "limit the number of events returned by /pool/events",
	}
	apiSlowQueriesFlag = cli.DurationFlag{
		Name:   "api-slow-queries-threshold",
		EnvVar: "VALPOOL_API_SLOW_QUERIES_THRESHOLD",
		Usage:  "log API requests slower than this, 0 disables",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:   "enable-api-logs",
		EnvVar: "VALPOOL_ENABLE_API_LOGS",
		Usage:  "log every API request",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:   "enable-admin",
		EnvVar: "VALPOOL_ENABLE_ADMIN",
		Usage:  "serve the admin routes (log level) on the API",
	}
	allowRootFlag = cli.BoolFlag{
		Name:   "allow-root",
		EnvVar: "VALPOOL_ALLOW_ROOT",
		Usage:  "accept root origin extrinsics from the API",
	}
	allowManagerCallsFlag = cli.BoolFlag{
		Name:   "allow-manager-calls",
		EnvVar: "VALPOOL_ALLOW_MANAGER_CALLS",
		Usage:  "accept manager-only extrinsics from signed origins, which the API does not authenticate",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		EnvVar: "VALPOOL_ENABLE_METRICS",
		Usage:  "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  "localhost:2112",
		EnvVar: "VALPOOL_METRICS_ADDR",
		Usage:  "metrics service listening address",
	}
	blockIntervalFlag = cli.DurationFlag{
		Name:   "block-interval",
		Value:  6 * time.Second,
		EnvVar: "VALPOOL_BLOCK_INTERVAL",
		Usage:  "time between two blocks",
	}
	scoreCacheFlag = cli.IntFlag{
		Name:   "score-cache",
		Value:  4096,
		EnvVar: "VALPOOL_SCORE_CACHE",
		Usage:  "number of accounts whose scores are cached",
	}
	vrfKeyFlag = cli.StringFlag{
		Name:   "vrf-key",
		EnvVar: "VALPOOL_VRF_KEY",
		Usage:  "path of the VRF key, created when missing; without it randomness mixes recent block hashes",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  3,
		EnvVar: "VALPOOL_VERBOSITY",
		Usage:  "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "json-logs",
		EnvVar: "VALPOOL_JSON_LOGS",
		Usage:  "output logs in JSON format",
	}
)
