// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apipool "github.com/vechain/valpool/api/pool"
	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/eventdb"
	"github.com/vechain/valpool/lvldb"
	"github.com/vechain/valpool/node"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/randomness"
	"github.com/vechain/valpool/scores"
)

var (
	ts       *httptest.Server
	testNode *node.Node
	table    *scores.Table
)

func account(i int) pez.Address {
	return pez.BytesToAddress([]byte{0xa1, byte(i)})
}

func initServer(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	edb, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { edb.Close() })

	table = scores.NewTable()
	for i := 1; i <= 3; i++ {
		table.Set(account(i), scores.Scores{Role: 1, Training: uint32(i)})
	}
	cached, err := scores.NewCached(table, 64)
	require.NoError(t, err)

	testNode, err = node.New(db, edb, pool.DefaultConfig(), cached, randomness.NewRecentHashes(0), node.Options{
		AllowRoot:         true,
		AllowManagerCalls: true,
		BlockInterval:     5 * time.Millisecond,
	})
	require.NoError(t, err)
	_, err = testNode.Bootstrap(context.Background(), func(p *pool.Pool) error {
		for i := 1; i <= 3; i++ {
			if err := p.Join(pool.Signed{Account: account(i)}, membership.ParliamentaryValidator{}); err != nil {
				return err
			}
		}
		return p.AddManager(pool.Root{}, account(1))
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	apipool.New(testNode, 10).Mount(router, "/pool")
	ts = httptest.NewServer(router)
	t.Cleanup(ts.Close)
}

func httpDo(t *testing.T, method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func TestPool(t *testing.T) {
	initServer(t)

	for name, tt := range map[string]func(*testing.T){
		"getMembers":        testGetMembers,
		"getMember":         testGetMember,
		"getEraBeforeFirst": testGetEraBeforeFirst,
		"getEvents":         testGetEvents,
		"badEventsQuery":    testBadEventsQuery,
		"putScores":         testPutScores,
		"badExtrinsics":     testBadExtrinsics,
	} {
		t.Run(name, tt)
	}
	// mutates the pool, keep last
	t.Run("rotate", testRotate)
}

func testGetMembers(t *testing.T) {
	code, body := httpDo(t, http.MethodGet, "/pool/members", nil)
	require.Equal(t, http.StatusOK, code, string(body))

	var members []*apipool.Member
	require.NoError(t, json.Unmarshal(body, &members))
	require.Len(t, members, 3)
	assert.Equal(t, account(1), members[0].Account)
	assert.Equal(t, "parliamentary", members[0].Category.Kind)
	assert.True(t, members[0].Manager)
	assert.False(t, members[1].Manager)
	require.NotNil(t, members[0].Performance)
	assert.Equal(t, pez.NeutralReputation, members[0].Performance.ReputationScore)
	assert.Empty(t, members[0].History)
}

func testGetMember(t *testing.T) {
	code, body := httpDo(t, http.MethodGet, "/pool/members/"+account(2).String(), nil)
	require.Equal(t, http.StatusOK, code, string(body))

	var m apipool.Member
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Equal(t, account(2), m.Account)
	assert.Equal(t, uint32(2), m.Scores.Training)

	code, _ = httpDo(t, http.MethodGet, "/pool/members/"+account(9).String(), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = httpDo(t, http.MethodGet, "/pool/members/0x12", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func testGetEraBeforeFirst(t *testing.T) {
	code, body := httpDo(t, http.MethodGet, "/pool/era", nil)
	require.Equal(t, http.StatusOK, code, string(body))

	var era apipool.Era
	require.NoError(t, json.Unmarshal(body, &era))
	assert.Equal(t, uint32(0), era.Era)
	assert.Equal(t, uint32(3), era.PoolSize)
	assert.Equal(t, pez.DefaultEraLength, era.Length)
	require.NotNil(t, era.NextRotation)
	assert.Equal(t, pez.DefaultEraLength, *era.NextRotation)
	require.NotNil(t, era.Head)

	code, _ = httpDo(t, http.MethodGet, "/pool/validators", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = httpDo(t, http.MethodGet, "/pool/validators/next", nil)
	require.Equal(t, http.StatusOK, code)
	var next apipool.NextValidators
	require.NoError(t, json.Unmarshal(body, &next))
	assert.False(t, next.Ready)
	assert.Empty(t, next.Validators)
}

func testGetEvents(t *testing.T) {
	code, body := httpDo(t, http.MethodGet, "/pool/events?name=Joined&from=0&to=0", nil)
	require.Equal(t, http.StatusOK, code, string(body))

	var events []*eventdb.Event
	require.NoError(t, json.Unmarshal(body, &events))
	require.Len(t, events, 3)
	assert.Equal(t, account(1), *events[0].Account)

	code, body = httpDo(t, http.MethodGet, "/pool/events?account="+account(1).String()+"&order=desc", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &events))
	require.Len(t, events, 2)
	assert.Equal(t, "ManagerAdded", events[0].Name)
	assert.Equal(t, "Joined", events[1].Name)

	code, body = httpDo(t, http.MethodGet, "/pool/events?from=100", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(body))
}

func testBadEventsQuery(t *testing.T) {
	for _, q := range []string{"from=x", "from=5&to=1", "order=up", "account=0x1", "limit=11"} {
		code, _ := httpDo(t, http.MethodGet, "/pool/events?"+q, nil)
		assert.GreaterOrEqual(t, code, 400, q)
		assert.Less(t, code, 500, q)
	}
}

func testPutScores(t *testing.T) {
	a := account(5)
	code, body := httpDo(t, http.MethodPut, "/pool/scores/"+a.String(),
		scores.Scores{Trust: uint256.NewInt(70), Role: 2, Referral: 9})
	require.Equal(t, http.StatusOK, code, string(body))

	assert.Equal(t, uint32(2), table.RoleScoreOf(a))
	assert.Equal(t, uint32(2), testNode.Scores().RoleScoreOf(a))

	code, _ = httpDo(t, http.MethodPut, "/pool/scores/"+a.String(), map[string]any{"unknown": 1})
	assert.Equal(t, http.StatusBadRequest, code)
}

func testBadExtrinsics(t *testing.T) {
	code, _ := httpDo(t, http.MethodPost, "/pool/extrinsics", map[string]any{"call": "mint", "origin": account(1).String()})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = httpDo(t, http.MethodPost, "/pool/extrinsics", map[string]any{"call": "join", "origin": "root"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func testRotate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go testNode.Run(ctx)

	code, body := httpDo(t, http.MethodPost, "/pool/extrinsics?wait=true",
		node.Extrinsic{Call: node.CallForceRotate, Origin: account(1).String()})
	require.Equal(t, http.StatusOK, code, string(body))

	var res apipool.Submitted
	require.NoError(t, json.Unmarshal(body, &res))
	require.NotNil(t, res.Receipt)
	assert.False(t, res.Receipt.Reverted, res.Receipt.Error)
	cancel()

	code, body = httpDo(t, http.MethodGet, "/pool/validators", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var set apipool.ValidatorSet
	require.NoError(t, json.Unmarshal(body, &set))
	assert.Equal(t, uint32(1), set.Era)
	assert.Equal(t, 3, set.Total)
	assert.Len(t, set.Parliamentary, 3)
	assert.Empty(t, set.Stake)

	code, body = httpDo(t, http.MethodGet, "/pool/validators/next", nil)
	require.Equal(t, http.StatusOK, code)
	var next apipool.NextValidators
	require.NoError(t, json.Unmarshal(body, &next))
	assert.True(t, next.Ready)
	assert.ElementsMatch(t, set.Parliamentary, next.Validators)
}
