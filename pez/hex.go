// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pez

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// decodeFixed decodes s, with or without 0x prefix, into exactly len(out) bytes.
func decodeFixed(s string, out []byte) error {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	} else if len(s) == len(out)*2+2 {
		return errors.New("invalid prefix")
	}
	if len(s) != len(out)*2 {
		return errors.Errorf("invalid length %d, want %d hex chars", len(s), len(out)*2)
	}
	_, err := hex.Decode(out, []byte(s))
	return err
}
