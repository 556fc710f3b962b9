// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"fmt"

	"github.com/vechain/valpool/pez"
)

// Origin identifies who dispatched a call: a signed account or root.
type Origin interface {
	fmt.Stringer
	origin()
}

// Signed is a call signed by an account.
type Signed struct {
	Account pez.Address
}

// Root is the governance origin. Only Root may register managers.
type Root struct{}

func (s Signed) String() string { return "signed(" + s.Account.String() + ")" }
func (Root) String() string     { return "root" }

func (Signed) origin() {}
func (Root) origin()   {}

// ensureSigned returns the signing account.
func ensureSigned(o Origin) (pez.Address, error) {
	if s, ok := o.(Signed); ok {
		return s.Account, nil
	}
	return pez.Address{}, ErrBadOrigin
}

// ensureManager accepts root or a registered manager.
func (p *Pool) ensureManager(o Origin) error {
	switch v := o.(type) {
	case Root:
		return nil
	case Signed:
		ok, err := p.IsManager(v.Account)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return ErrBadOrigin
}

func ensureRoot(o Origin) error {
	if _, ok := o.(Root); ok {
		return nil
	}
	return ErrBadOrigin
}
