// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/vechain/valpool/log"
	"github.com/vechain/valpool/pez"
)

// ConfigVariable is a compile time default that can be overridden by a value found in
// the contract storage slot named after it.
type ConfigVariable struct {
	slot        pez.Bytes32
	name        string
	value       uint32
	initialised bool
}

func NewConfigVariable(name string, defaultValue uint32) *ConfigVariable {
	return &ConfigVariable{
		slot:  pez.BytesToBytes32([]byte(name)),
		name:  name,
		value: defaultValue,
	}
}

func (c *ConfigVariable) Get() uint32 {
	return c.value
}

func (c *ConfigVariable) Name() string {
	return c.name
}

func (c *ConfigVariable) Slot() pez.Bytes32 {
	return c.slot
}

// Override reads the storage slot once and replaces the default if a non zero value is present.
func (c *ConfigVariable) Override(ctx *Context) {
	if c.initialised { // early return to prevent subsequent reads
		return
	}
	storage, err := ctx.state.GetStorage(ctx.address, c.slot)
	if err != nil {
		log.Warn("failed to read config value", "slot", c.Name(), "error", err)
		return
	}
	num := new(big.Int).SetBytes(storage.Bytes())

	c.initialised = true

	if num.IsUint64() && num.Uint64() != 0 && num.Uint64() <= uint64(^uint32(0)) {
		c.value = uint32(num.Uint64())
		log.Debug("override found new config value", "slot", c.Name(), "value", c.Get())
	} else {
		log.Debug("using default config value", "slot", c.Name(), "value", c.Get())
	}
}
