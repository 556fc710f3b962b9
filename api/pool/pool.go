// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/valpool/api/utils"
	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/eventdb"
	"github.com/vechain/valpool/node"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/scores"
)

type Pool struct {
	node        *node.Node
	eventsLimit uint64
}

func New(n *node.Node, eventsLimit uint64) *Pool {
	return &Pool{node: n, eventsLimit: eventsLimit}
}

func (p *Pool) member(v *pool.Pool, m *membership.Member) (*Member, error) {
	rec, err := v.Performance(m.Account)
	if err != nil {
		return nil, err
	}
	eras, err := v.History(m.Account)
	if err != nil {
		return nil, err
	}
	manager, err := v.IsManager(m.Account)
	if err != nil {
		return nil, err
	}
	if eras == nil {
		eras = []uint32{}
	}
	return &Member{
		Account:     m.Account,
		Category:    membership.Describe(m.Category),
		JoinedEra:   m.JoinedEra,
		Performance: rec,
		History:     eras,
		Scores:      scores.Snapshot(p.node.Scores(), m.Account),
		Manager:     manager,
	}, nil
}

func (p *Pool) handleGetMembers(w http.ResponseWriter, _ *http.Request) error {
	result := make([]*Member, 0)
	err := p.node.View(func(v *pool.Pool) error {
		members, err := v.Members()
		if err != nil {
			return err
		}
		for _, m := range members {
			info, err := p.member(v, m)
			if err != nil {
				return err
			}
			result = append(result, info)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (p *Pool) handleGetMember(w http.ResponseWriter, req *http.Request) error {
	account, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var result *Member
	err = p.node.View(func(v *pool.Pool) error {
		m, err := v.Member(account)
		if err != nil || m == nil {
			return err
		}
		result, err = p.member(v, m)
		return err
	})
	if err != nil {
		return err
	}
	if result == nil {
		return utils.NotFound(pool.ErrNotInPool)
	}
	return utils.WriteJSON(w, result)
}

func (p *Pool) handleGetValidators(w http.ResponseWriter, _ *http.Request) error {
	var set *pool.ValidatorSet
	err := p.node.View(func(v *pool.Pool) (err error) {
		set, err = v.CurrentValidatorSet()
		return
	})
	if err != nil {
		return err
	}
	if set == nil {
		return utils.NotFound(errors.New("no era selected yet"))
	}
	return utils.WriteJSON(w, convertSet(set))
}

func (p *Pool) handleGetNextValidators(w http.ResponseWriter, _ *http.Request) error {
	result := &NextValidators{Validators: []pez.Address{}}
	err := p.node.View(func(v *pool.Pool) error {
		list, ok, err := v.ValidatorsForNextSession()
		if err != nil || !ok {
			return err
		}
		result.Ready = true
		result.Validators = list
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func (p *Pool) handleGetEra(w http.ResponseWriter, _ *http.Request) error {
	result := &Era{Head: p.node.Head()}
	err := p.node.View(func(v *pool.Pool) (err error) {
		if result.Era, err = v.CurrentEra(); err != nil {
			return
		}
		if result.Start, err = v.EraStart(); err != nil {
			return
		}
		if result.Length, err = v.EraLength(); err != nil {
			return
		}
		if result.PoolSize, err = v.PoolSize(); err != nil {
			return
		}
		next, enabled, err := v.NextRotationBlock()
		if enabled {
			result.NextRotation = &next
		}
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, result)
}

func parseUint(req *http.Request, name string, bits int) (uint64, bool, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, false, utils.BadRequest(errors.WithMessage(err, name))
	}
	return v, true, nil
}

func (p *Pool) parseFilter(req *http.Request) (*eventdb.Filter, error) {
	query := req.URL.Query()
	filter := &eventdb.Filter{
		Name:    query.Get("name"),
		Order:   eventdb.ASC,
		Options: &eventdb.Options{Limit: p.eventsLimit},
	}

	from, hasFrom, err := parseUint(req, "from", 32)
	if err != nil {
		return nil, err
	}
	to, hasTo, err := parseUint(req, "to", 32)
	if err != nil {
		return nil, err
	}
	if hasFrom || hasTo {
		if !hasTo {
			to = uint64(^uint32(0))
		}
		if to < from {
			return nil, utils.BadRequest(errors.New("to must not be less than from"))
		}
		filter.Range = &eventdb.Range{From: uint32(from), To: uint32(to)}
	}

	if s := query.Get("account"); s != "" {
		addr, err := pez.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = &addr
	}

	switch order := eventdb.Order(query.Get("order")); order {
	case "", eventdb.ASC:
	case eventdb.DESC:
		filter.Order = eventdb.DESC
	default:
		return nil, utils.BadRequest(errors.Errorf("invalid order %q", order))
	}

	if offset, ok, err := parseUint(req, "offset", 64); err != nil {
		return nil, err
	} else if ok {
		filter.Options.Offset = offset
	}
	if limit, ok, err := parseUint(req, "limit", 64); err != nil {
		return nil, err
	} else if ok {
		if p.eventsLimit > 0 && limit > p.eventsLimit {
			return nil, utils.Forbidden(errors.Errorf("limit exceeds the maximum of %d", p.eventsLimit))
		}
		filter.Options.Limit = limit
	}
	return filter, nil
}

func (p *Pool) handleGetEvents(w http.ResponseWriter, req *http.Request) error {
	db := p.node.EventDB()
	if db == nil {
		return utils.HTTPError(errors.New("event archive disabled"), http.StatusServiceUnavailable)
	}
	filter, err := p.parseFilter(req)
	if err != nil {
		return err
	}
	events, err := db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*eventdb.Event{}
	}
	return utils.WriteJSON(w, events)
}

func (p *Pool) handlePostExtrinsic(w http.ResponseWriter, req *http.Request) error {
	var x node.Extrinsic
	if err := utils.ParseJSON(req.Body, &x); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := x.Validate(p.node.Options()); err != nil {
		if errors.Is(err, node.ErrRootDisabled) || errors.Is(err, node.ErrManagerCallsDisabled) {
			return utils.Forbidden(err)
		}
		return utils.BadRequest(err)
	}

	done, err := p.node.Submit(req.Context(), &x)
	if err != nil {
		if errors.Is(err, node.ErrQueueFull) {
			return utils.HTTPError(err, http.StatusServiceUnavailable)
		}
		return err
	}

	if req.URL.Query().Get("wait") != "true" {
		return utils.WriteJSON(w, &Submitted{Queued: true})
	}
	select {
	case receipt := <-done:
		return utils.WriteJSON(w, &Submitted{Queued: true, Receipt: receipt})
	case <-req.Context().Done():
		return req.Context().Err()
	}
}

func (p *Pool) handlePutScores(w http.ResponseWriter, req *http.Request) error {
	account, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var s scores.Scores
	if err := utils.ParseJSON(req.Body, &s); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	switch provider := p.node.Scores().(type) {
	case *scores.Cached:
		if err := provider.Set(account, s); err != nil {
			return utils.Forbidden(err)
		}
	case scores.Writer:
		provider.Set(account, s)
	default:
		return utils.Forbidden(scores.ErrReadOnly)
	}
	return utils.WriteJSON(w, scores.Snapshot(p.node.Scores(), account))
}

func (p *Pool) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/members").
		Methods(http.MethodGet).
		Name("pool_get_members").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetMembers))
	sub.Path("/members/{address}").
		Methods(http.MethodGet).
		Name("pool_get_member").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetMember))
	sub.Path("/validators").
		Methods(http.MethodGet).
		Name("pool_get_validators").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetValidators))
	sub.Path("/validators/next").
		Methods(http.MethodGet).
		Name("pool_get_next_validators").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetNextValidators))
	sub.Path("/era").
		Methods(http.MethodGet).
		Name("pool_get_era").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetEra))
	sub.Path("/events").
		Methods(http.MethodGet).
		Name("pool_get_events").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetEvents))
	sub.Path("/extrinsics").
		Methods(http.MethodPost).
		Name("pool_post_extrinsic").
		HandlerFunc(utils.WrapHandlerFunc(p.handlePostExtrinsic))
	sub.Path("/scores/{address}").
		Methods(http.MethodPut).
		Name("pool_put_scores").
		HandlerFunc(utils.WrapHandlerFunc(p.handlePutScores))
}
