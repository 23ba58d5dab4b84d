// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/thor-vault/api/restutil"
	"github.com/vechain/thor-vault/logdb"
	"github.com/vechain/thor-vault/thor"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

// parseFilter builds the filter of the query parameters. The subject matches either the
// delegator (topic1) or the delegate (topic2).
func (e *Events) parseFilter(query url.Values) (*logdb.EventFilter, error) {
	var topic0 *thor.Bytes32
	if name := query.Get("topic"); name != "" {
		var symbol thor.Bytes32
		if strings.HasPrefix(name, "0x") {
			parsed, err := thor.ParseBytes32(name)
			if err != nil {
				return nil, errors.WithMessage(err, "topic")
			}
			symbol = parsed
		} else {
			symbol = thor.NameToSlot(name)
		}
		topic0 = &symbol
	}

	criteria := []*logdb.EventCriteria{{Topics: [4]*thor.Bytes32{topic0}}}
	if s := query.Get("subject"); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, "subject")
		}
		subject := thor.BytesToBytes32(addr.Bytes())
		criteria = []*logdb.EventCriteria{
			{Topics: [4]*thor.Bytes32{topic0, &subject}},
			{Topics: [4]*thor.Bytes32{topic0, nil, &subject}},
		}
	}

	rng := &logdb.Range{}
	hasTo := false
	for _, p := range []struct {
		name string
		dst  *uint32
	}{{"from", &rng.From}, {"to", &rng.To}} {
		v := query.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 0, 32)
		if err != nil {
			return nil, errors.WithMessage(err, p.name)
		}
		*p.dst = uint32(n)
		hasTo = hasTo || p.name == "to"
	}
	if hasTo && rng.To < rng.From {
		return nil, errors.New("to must be greater than or equal to from")
	}
	if !hasTo {
		if rng.From == 0 {
			rng = nil
		} else {
			rng.To = rng.From - 1 // no upper bound
		}
	}

	// one more than the limit by default, to detect results beyond it
	opts := &logdb.Options{Limit: e.limit + 1}
	if v := query.Get("offset"); v != "" {
		n, err := strconv.ParseUint(v, 0, 63)
		if err != nil {
			return nil, errors.WithMessage(err, "offset")
		}
		opts.Offset = n
	}
	if v := query.Get("limit"); v != "" {
		n, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return nil, errors.WithMessage(err, "limit")
		}
		opts.Limit = n
	}

	order := logdb.ASC
	switch v := strings.ToLower(query.Get("order")); v {
	case "", string(logdb.ASC):
	case string(logdb.DESC):
		order = logdb.DESC
	default:
		return nil, fmt.Errorf("invalid order %q", v)
	}

	return &logdb.EventFilter{
		CriteriaSet: criteria,
		Range:       rng,
		Options:     opts,
		Order:       order,
	}, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()
	filter, err := e.parseFilter(query)
	if err != nil {
		return restutil.BadRequest(err)
	}
	if query.Has("limit") && filter.Options.Limit > e.limit {
		return restutil.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
	}

	evs, err := e.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	// ensure the result size is less than the configured limit
	if len(evs) > int(e.limit) {
		return restutil.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}

	fes := make([]*FilteredEvent, len(evs))
	for i, ev := range evs {
		fes[i] = convertEvent(ev)
	}
	return restutil.WriteJSON(w, fes)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(restutil.WrapHandlerFunc(e.handleFilter))
}
