// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/valpool/api"
	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/genesis"
	"github.com/vechain/valpool/log"
	"github.com/vechain/valpool/metrics"
	"github.com/vechain/valpool/node"
	"github.com/vechain/valpool/randomness"
	"github.com/vechain/valpool/scores"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "valpool",
		Usage:   "Validator pool node: candidate enrollment and era based validator selection",
		Flags: []cli.Flag{
			dataDirFlag,
			cacheFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			apiSlowQueriesFlag,
			enableAPILogsFlag,
			enableAdminFlag,
			allowRootFlag,
			allowManagerCallsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			blockIntervalFlag,
			scoreCacheFlag,
			vrfKeyFlag,
			verbosityFlag,
			jsonLogsFlag,
			skipClockCheckFlag,
		},
		Action: runAction,
		Commands: []cli.Command{
			{
				Name:   "inspect",
				Usage:  "print the pool state of a data directory",
				Flags:  []cli.Flag{dataDirFlag, cacheFlag, genesisFlag, verbosityFlag},
				Action: inspectAction,
			},
			{
				Name:   "genesis",
				Usage:  "print a sample genesis file",
				Action: genesisAction,
			},
			{
				Name:   "vrfkey",
				Usage:  "print the public key of the VRF key, creating it when missing",
				Flags:  []cli.Flag{vrfKeyFlag},
				Action: vrfKeyAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}

func runAction(ctx *cli.Context) error {
	level := initLogger(ctx)
	defer func() { logger.Info("exited") }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gen, err := loadGenesis(ctx)
	if err != nil {
		return err
	}
	cfg, err := gen.Config()
	if err != nil {
		return errors.WithMessage(err, "genesis")
	}

	table := scores.NewTable()
	if err := gen.FillScores(table); err != nil {
		return errors.WithMessage(err, "genesis")
	}
	provider, err := scores.NewCached(table, ctx.Int(scoreCacheFlag.Name))
	if err != nil {
		return err
	}

	beacon, err := makeBeacon(ctx)
	if err != nil {
		return err
	}

	dbs, err := openDatabases(ctx)
	if err != nil {
		return err
	}
	defer dbs.Close()

	n, err := node.New(dbs.main, dbs.events, cfg, provider, beacon, node.Options{
		BlockInterval:     ctx.Duration(blockIntervalFlag.Name),
		AllowRoot:         ctx.Bool(allowRootFlag.Name),
		AllowManagerCalls: ctx.Bool(allowManagerCallsFlag.Name),
	})
	if err != nil {
		return err
	}

	exitCtx := handleExitSignal()
	if created, err := n.Bootstrap(exitCtx, gen.Apply); err != nil {
		return err
	} else if created {
		logger.Info("genesis applied", "members", len(gen.Members), "managers", len(gen.Managers))
	}

	apiOpts := api.Options{
		AllowedOrigins:     ctx.String(apiCorsFlag.Name),
		EventsLimit:        ctx.Uint64(apiEventsLimitFlag.Name),
		EnableMetrics:      ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:    ctx.Bool(enableAPILogsFlag.Name),
		SlowQueryThreshold: ctx.Duration(apiSlowQueriesFlag.Name),
	}
	if ctx.Bool(enableAdminFlag.Name) {
		apiOpts.LogLevel = level
	}
	handler, closeSubs := api.New(n, apiOpts)

	group, gctx := errgroup.WithContext(exitCtx)

	apiSrv, err := startServer(group, ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return errors.WithMessage(err, "api server")
	}
	logger.Info("API server started", "url", "http://"+apiSrv.addr)

	servers := []*server{apiSrv}
	if h := metrics.HTTPHandler(); h != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", h)
		metricsSrv, err := startServer(group, ctx.String(metricsAddrFlag.Name), mux)
		if err != nil {
			return errors.WithMessage(err, "metrics server")
		}
		logger.Info("metrics server started", "url", "http://"+metricsSrv.addr+"/metrics")
		servers = append(servers, metricsSrv)
	}

	group.Go(func() error {
		return n.Run(gctx)
	})
	if !ctx.Bool(skipClockCheckFlag.Name) {
		group.Go(func() error {
			clockSync(gctx, n.Options().BlockInterval)
			return nil
		})
	}
	group.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping servers...")
		closeSubs()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, s := range servers {
			if err := s.srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("server shutdown", "addr", s.addr, "err", err)
			}
		}
		return nil
	})

	return group.Wait()
}

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)

	if ctx.String(dataDirFlag.Name) == "" {
		return errors.New("--datadir is required")
	}
	gen, err := loadGenesis(ctx)
	if err != nil {
		return err
	}
	cfg, err := gen.Config()
	if err != nil {
		return err
	}
	table := scores.NewTable()
	if err := gen.FillScores(table); err != nil {
		return err
	}

	dbs, err := openDatabases(ctx)
	if err != nil {
		return err
	}
	defer dbs.Close()

	n, err := node.New(dbs.main, dbs.events, cfg, table, randomness.NewRecentHashes(0), node.Options{})
	if err != nil {
		return err
	}
	head := n.Head()
	if head == nil {
		fmt.Println("empty data directory")
		return nil
	}

	dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	return n.View(func(p *pool.Pool) error {
		era, err := p.CurrentEra()
		if err != nil {
			return err
		}
		size, err := p.PoolSize()
		if err != nil {
			return err
		}
		length, err := p.EraLength()
		if err != nil {
			return err
		}
		set, err := p.CurrentValidatorSet()
		if err != nil {
			return err
		}

		fmt.Printf("head:       #%d %s\n", head.Number, head.ID)
		fmt.Printf("era:        %d\n", era)
		fmt.Printf("era length: %d\n", length)
		fmt.Printf("pool size:  %d\n", size)
		if stats, err := dbs.main.Property("leveldb.stats"); err == nil {
			logger.Debug("main database", "stats", stats)
		}
		if set == nil {
			fmt.Println("validators: none selected yet")
			return nil
		}
		fmt.Printf("validators: %d\n", set.TotalCount())
		dumper.Dump(set)
		return nil
	})
}

func genesisAction(*cli.Context) error {
	data, err := genesis.Sample().Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func vrfKeyAction(ctx *cli.Context) error {
	path := ctx.String(vrfKeyFlag.Name)
	if path == "" {
		return errors.New("--vrf-key is required")
	}
	key, err := randomness.LoadOrGenerateKey(path)
	if err != nil {
		return err
	}
	fmt.Printf("public key: 0x%s\n", hex.EncodeToString(randomness.NewVRF(key).PublicKey()))
	fmt.Printf("address:    %s\n", crypto.PubkeyToAddress(key.PublicKey).Hex())
	return nil
}

type server struct {
	srv  *http.Server
	addr string
}

func startServer(group *errgroup.Group, addr string, handler http.Handler) (*server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return &server{srv: srv, addr: listener.Addr().String()}, nil
}
