// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes the initial pool: runtime parameters, managers,
// score tables and the members enrolled at block zero.
package genesis

import (
	"bytes"
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/log"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/scores"
)

var logger = log.WithContext("pkg", "genesis")

// Params overrides pool.DefaultConfig. Unset fields keep the default.
type Params struct {
	MaxPoolSize         *uint32 `yaml:"maxPoolSize,omitempty"`
	MinStakeFloor       string  `yaml:"minStakeFloor,omitempty"`
	TotalSeats          *uint32 `yaml:"totalSeats,omitempty"`
	MinQuorum           *uint32 `yaml:"minQuorum,omitempty"`
	CooldownEras        *uint32 `yaml:"cooldownEras,omitempty"`
	HistoryDepth        *int    `yaml:"historyDepth,omitempty"`
	ReputationThreshold *uint8  `yaml:"reputationThreshold,omitempty"`
	MaxSpecialRoles     *int    `yaml:"maxSpecialRoles,omitempty"`
	DefaultEraLength    *uint32 `yaml:"defaultEraLength,omitempty"`
	RandomnessContext   string  `yaml:"randomnessContext,omitempty"`
	LegacyBucketing     bool    `yaml:"legacyBucketing,omitempty"`
	StrictPerformance   bool    `yaml:"strictPerformance,omitempty"`
}

// ScoreRow is the score table entry of one account.
type ScoreRow struct {
	Account  pez.Address `yaml:"account"`
	Trust    string      `yaml:"trust,omitempty"`
	Role     uint32      `yaml:"role,omitempty"`
	Referral uint32      `yaml:"referral,omitempty"`
	Training uint32      `yaml:"training,omitempty"`
}

type Member struct {
	Account  pez.Address           `yaml:"account"`
	Category membership.Descriptor `yaml:"category"`
}

// Genesis is the YAML genesis document.
type Genesis struct {
	Params    Params        `yaml:"params"`
	EraLength *uint32       `yaml:"eraLength,omitempty"`
	Managers  []pez.Address `yaml:"managers,omitempty"`
	Scores    []ScoreRow    `yaml:"scores,omitempty"`
	Members   []Member      `yaml:"members,omitempty"`
	// Rotate selects the first validator set at block zero.
	Rotate bool `yaml:"rotate,omitempty"`
}

// Load reads a genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

// Parse decodes a genesis document, rejecting unknown fields.
func Parse(data []byte) (*Genesis, error) {
	var gen Genesis
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

func (g *Genesis) Marshal() ([]byte, error) {
	return yaml.Marshal(g)
}

// Config applies Params onto the default pool config.
func (g *Genesis) Config() (pool.Config, error) {
	cfg := pool.DefaultConfig()
	p := g.Params

	if p.MaxPoolSize != nil {
		cfg.MaxPoolSize = *p.MaxPoolSize
	}
	if p.MinStakeFloor != "" {
		floor, err := uint256.FromDecimal(p.MinStakeFloor)
		if err != nil {
			return cfg, errors.Wrap(err, "minStakeFloor")
		}
		cfg.MinStakeFloor = floor
	}
	if p.TotalSeats != nil {
		cfg.TotalSeats = *p.TotalSeats
	}
	if p.MinQuorum != nil {
		cfg.MinQuorum = *p.MinQuorum
	}
	if p.CooldownEras != nil {
		cfg.CooldownEras = *p.CooldownEras
	}
	if p.HistoryDepth != nil {
		cfg.HistoryDepth = *p.HistoryDepth
	}
	if p.ReputationThreshold != nil {
		cfg.ReputationThreshold = *p.ReputationThreshold
	}
	if p.MaxSpecialRoles != nil {
		cfg.MaxSpecialRoles = *p.MaxSpecialRoles
	}
	if p.DefaultEraLength != nil {
		cfg.DefaultEraLength = *p.DefaultEraLength
	}
	if p.RandomnessContext != "" {
		cfg.RandomnessContext = []byte(p.RandomnessContext)
	}
	cfg.LegacyBucketing = p.LegacyBucketing
	cfg.StrictPerformance = p.StrictPerformance

	switch {
	case cfg.TotalSeats == 0:
		return cfg, errors.New("totalSeats must not be 0")
	case cfg.MinQuorum > cfg.TotalSeats:
		return cfg, errors.New("minQuorum must not exceed totalSeats")
	case cfg.HistoryDepth <= 0:
		return cfg, errors.New("historyDepth must be positive")
	case cfg.DefaultEraLength > cfg.MaxEraLength:
		return cfg, errors.Errorf("defaultEraLength must not exceed %d", cfg.MaxEraLength)
	}
	return cfg, nil
}

// FillScores loads the score rows into w.
func (g *Genesis) FillScores(w scores.Writer) error {
	for _, row := range g.Scores {
		s := scores.Scores{Role: row.Role, Referral: row.Referral, Training: row.Training}
		if row.Trust != "" {
			trust, err := uint256.FromDecimal(row.Trust)
			if err != nil {
				return errors.Wrapf(err, "%s: trust", row.Account)
			}
			s.Trust = trust
		}
		w.Set(row.Account, s)
	}
	return nil
}

// Apply initializes p. Scores must be loaded before, members are checked against them.
func (g *Genesis) Apply(p *pool.Pool) error {
	root := pool.Root{}

	if g.EraLength != nil {
		if err := p.SetEraLength(root, *g.EraLength); err != nil {
			return errors.WithMessage(err, "eraLength")
		}
	}
	for _, m := range g.Managers {
		if err := p.AddManager(root, m); err != nil {
			return errors.WithMessagef(err, "manager %s", m)
		}
	}
	for _, m := range g.Members {
		category, err := m.Category.Category()
		if err != nil {
			return errors.WithMessagef(err, "member %s", m.Account)
		}
		if err := p.Join(pool.Signed{Account: m.Account}, category); err != nil {
			return errors.WithMessagef(err, "member %s", m.Account)
		}
	}
	if g.Rotate {
		set, err := p.ForceRotate(root, 0)
		if err != nil {
			return errors.WithMessage(err, "rotate")
		}
		logger.Info("genesis validator set selected", "era", set.Era, "validators", set.TotalCount())
	}
	logger.Debug("genesis applied", "managers", len(g.Managers), "members", len(g.Members))
	return nil
}
