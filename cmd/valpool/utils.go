// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/hex"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/valpool/eventdb"
	"github.com/vechain/valpool/genesis"
	"github.com/vechain/valpool/log"
	"github.com/vechain/valpool/lvldb"
	"github.com/vechain/valpool/randomness"
)

// initLogger installs the root logger and returns its adjustable level.
func initLogger(ctx *cli.Context) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(log.FromVerbosity(ctx.Int(verbosityFlag.Name)))

	var root log.Logger
	if ctx.Bool(jsonLogsFlag.Name) {
		root = log.NewJSON(os.Stderr, level)
	} else {
		root = log.NewTerminal(os.Stderr, level)
	}
	log.SetDefault(root)
	return level
}

func loadGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		logger.Info("using the development genesis")
		return genesis.Sample(), nil
	}
	return genesis.Load(path)
}

func makeBeacon(ctx *cli.Context) (randomness.Source, error) {
	path := ctx.String(vrfKeyFlag.Name)
	if path == "" {
		return randomness.NewRecentHashes(0), nil
	}
	key, err := randomness.LoadOrGenerateKey(path)
	if err != nil {
		return nil, err
	}
	vrf := randomness.NewVRF(key)
	logger.Info("VRF randomness enabled", "pubkey", "0x"+hex.EncodeToString(vrf.PublicKey()))
	return vrf, nil
}

type databases struct {
	main   *lvldb.LevelDB
	events *eventdb.EventDB
}

func (d *databases) Close() {
	logger.Info("closing databases...")
	if err := d.events.Close(); err != nil {
		logger.Warn("close event database", "err", err)
	}
	if err := d.main.Close(); err != nil {
		logger.Warn("close main database", "err", err)
	}
}

func openDatabases(ctx *cli.Context) (*databases, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		logger.Warn("no data directory, running in memory")
		mainDB, err := lvldb.NewMem()
		if err != nil {
			return nil, err
		}
		events, err := eventdb.NewMem()
		if err != nil {
			mainDB.Close()
			return nil, err
		}
		return &databases{mainDB, events}, nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}
	mainDB, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{
		CacheSize:              normalizeCacheSize(ctx.Int(cacheFlag.Name)),
		OpenFilesCacheCapacity: suggestFDCache(),
	})
	if err != nil {
		return nil, err
	}
	events, err := eventdb.New(filepath.Join(dir, "events.db"))
	if err != nil {
		mainDB.Close()
		return nil, err
	}
	logger.Info("databases opened", "dir", dir, "sqlite", events.DriverVersion())
	return &databases{mainDB, events}, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
