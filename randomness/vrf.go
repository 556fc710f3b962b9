// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package randomness

import (
	"crypto/ecdsa"
	"encoding/binary"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/vechain/go-ecvrf"

	"github.com/vechain/valpool/log"
	"github.com/vechain/valpool/pez"
)

var logger = log.WithContext("pkg", "randomness")

// ProofLen is the length of a secp256k1 ECVRF proof.
const ProofLen = 81

// VRF draws randomness by proving alpha = Blake2b(subject, block, parent hash)
// with the node key. The output is Blake2b of the VRF beta.
type VRF struct {
	lock   sync.RWMutex
	key    *ecdsa.PrivateKey
	number uint32
	parent pez.Bytes32
	last   *Draw
}

// Draw is the full evidence of one randomness draw.
type Draw struct {
	Alpha  []byte
	Beta   []byte
	Proof  []byte
	Output pez.Bytes32
	Block  uint32
}

func NewVRF(key *ecdsa.PrivateKey) *VRF {
	return &VRF{key: key}
}

// PublicKey returns the compressed public key of the prover.
func (v *VRF) PublicKey() []byte {
	return crypto.CompressPubkey(&v.key.PublicKey)
}

func (v *VRF) Feed(number uint32, hash pez.Bytes32) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.number = number
	v.parent = hash
}

// Alpha builds the VRF input for subject at the given chain position.
func Alpha(subject []byte, number uint32, parent pez.Bytes32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], number)
	return pez.Blake2b(subject, b[:], parent[:]).Bytes()
}

// Prove draws randomness for subject and returns the evidence.
func (v *VRF) Prove(subject []byte) (*Draw, error) {
	v.lock.Lock()
	defer v.lock.Unlock()

	alpha := Alpha(subject, v.number, v.parent)
	beta, proof, err := ecvrf.Secp256k1Sha256Tai.Prove(v.key, alpha)
	if err != nil {
		return nil, errors.Wrap(err, "vrf prove")
	}
	v.last = &Draw{
		Alpha:  alpha,
		Beta:   beta,
		Proof:  proof,
		Output: pez.Blake2b(beta),
		Block:  v.number,
	}
	return v.last, nil
}

// Last returns the most recent draw, or nil.
func (v *VRF) Last() *Draw {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return v.last
}

func (v *VRF) Random(subject []byte) (pez.Bytes32, uint32) {
	draw, err := v.Prove(subject)
	if err != nil {
		// a valid key never fails to prove; fall back to the unproven input
		logger.Error("failed to draw vrf randomness", "error", err)
		v.lock.RLock()
		defer v.lock.RUnlock()
		return pez.Blake2b(Alpha(subject, v.number, v.parent)), v.number
	}
	return draw.Output, draw.Block
}

// Verify checks proof against a compressed public key and returns the randomness output.
func Verify(pub, alpha, proof []byte) (pez.Bytes32, error) {
	if len(proof) != ProofLen {
		return pez.Bytes32{}, errors.Errorf("invalid proof length %d, %d bytes needed", len(proof), ProofLen)
	}
	pk, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return pez.Bytes32{}, errors.Wrap(err, "parse public key")
	}
	beta, err := ecvrf.Secp256k1Sha256Tai.Verify(pk.ToECDSA(), alpha, proof)
	if err != nil {
		return pez.Bytes32{}, err
	}
	return pez.Blake2b(beta), nil
}
