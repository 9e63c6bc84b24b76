package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/alibaba/RedisKeyTrie/common"
	"github.com/alibaba/RedisKeyTrie/key_index"
	"github.com/alibaba/RedisKeyTrie/metric"
	"github.com/alibaba/RedisKeyTrie/store"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

// KeyView is the json form of an indexed key.
type KeyView struct {
	Key       string `json:"key"`
	Db        int32  `json:"db"`
	Type      string `json:"type"`
	ItemCount int64  `json:"item_count"`
	Value     string `json:"value,omitempty"`
}

type MatchResponse struct {
	Db      int32      `json:"db"`
	Pattern string     `json:"pattern"`
	Keys    []*KeyView `json:"keys"`
}

type DumpResponse struct {
	Db   int32      `json:"db"`
	Keys []*KeyView `json:"keys"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers queries against a built KeyIndex. When a store is given
// every query and its results are recorded.
type Server struct {
	index  *key_index.KeyIndex
	store  *store.Store
	server *http.Server
}

func NewServer(addr string, index *key_index.KeyIndex, result *store.Store) *Server {
	s := &Server{
		index: index,
		store: result,
	}

	// keys may contain "//" or "/../", serve them as they are
	r := mux.NewRouter().SkipClean(true)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			common.Logger.Debugf("received request: %s %s", r.Method, r.URL.String())
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/stat", s.stat).Methods("GET")
	r.HandleFunc("/db/{db}/keys/{key:.+}", s.getKey).Methods("GET")
	r.HandleFunc("/db/{db}/match", s.match).Methods("GET")
	r.HandleFunc("/db/{db}/prefix", s.prefix).Methods("GET")
	r.HandleFunc("/db/{db}/dump", s.dump).Methods("GET")

	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is done, then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		common.Logger.Infof("serving http on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("serve http on %s failed[%v]", s.server.Addr, err)
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server failed[%v]", err)
	}
	return <-errChan
}

func (s *Server) respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respond(w, status, errorResponse{Error: err.Error()})
}

func parseDB(r *http.Request) (int32, error) {
	input := mux.Vars(r)["db"]
	db, err := strconv.ParseInt(input, 10, 32)
	if err != nil || db < 0 {
		return 0, fmt.Errorf("invalid db[%v]", input)
	}
	return int32(db), nil
}

func newKeyView(key *common.Key) *KeyView {
	return &KeyView{
		Key:       string(key.Key),
		Db:        key.Db,
		Type:      key.Tp.Name,
		ItemCount: key.ItemCount,
		Value:     string(key.Value),
	}
}

func newKeyViews(keys []*common.Key) []*KeyView {
	views := make([]*KeyView, len(keys))
	for i, key := range keys {
		views[i] = newKeyView(key)
	}
	return views
}

// record stores the query, failures are only logged.
func (s *Server) record(kind, input string, db int32, keys []*common.Key) {
	if s.store == nil {
		return
	}
	if err := s.store.WriteAll(kind, input, db, keys); err != nil {
		common.Logger.Warnf("record %s query[%v] failed[%v]", kind, input, err)
	}
}

func (s *Server) getKey(w http.ResponseWriter, r *http.Request) {
	db, err := parseDB(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	name := mux.Vars(r)["key"]
	key, ok := s.index.Get(db, name)
	if !ok {
		s.record("get", name, db, nil)
		s.respondError(w, http.StatusNotFound, fmt.Errorf("key[%v] not found in db[%v]", name, db))
		return
	}
	s.record("get", name, db, []*common.Key{key})
	s.respond(w, http.StatusOK, newKeyView(key))
}

func (s *Server) match(w http.ResponseWriter, r *http.Request) {
	db, err := parseDB(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	pattern := r.URL.Query().Get("pattern")
	keys := s.index.Match(db, pattern)
	s.record("match", pattern, db, keys)
	s.respond(w, http.StatusOK, MatchResponse{Db: db, Pattern: pattern, Keys: newKeyViews(keys)})
}

func (s *Server) prefix(w http.ResponseWriter, r *http.Request) {
	db, err := parseDB(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	str := r.URL.Query().Get("str")
	key, ok := s.index.LongestPrefix(db, str)
	if !ok {
		s.record("prefix", str, db, nil)
		s.respondError(w, http.StatusNotFound, fmt.Errorf("no key of db[%v] is a prefix of [%v]", db, str))
		return
	}
	s.record("prefix", str, db, []*common.Key{key})
	s.respond(w, http.StatusOK, newKeyView(key))
}

func (s *Server) dump(w http.ResponseWriter, r *http.Request) {
	db, err := parseDB(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	keys := s.index.Dump(db)
	s.record("dump", "", db, keys)
	s.respond(w, http.StatusOK, DumpResponse{Db: db, Keys: newKeyViews(keys)})
}

func (s *Server) stat(w http.ResponseWriter, r *http.Request) {
	stat := s.index.Stat()
	dbKeys := make(map[string]int)
	for _, db := range s.index.Dbs() {
		dbKeys[strconv.Itoa(int(db))] = s.index.Len(db)
	}
	s.respond(w, http.StatusOK, struct {
		DbKeys     map[string]int      `json:"db_keys"`
		KeyIndexed *metric.CounterStat `json:"key_indexed"`
		Queries    *metric.CounterStat `json:"queries"`
		Matches    *metric.CounterStat `json:"matches"`
	}{
		DbKeys:     dbKeys,
		KeyIndexed: stat.Indexed.Json(),
		Queries:    stat.Queries.Json(),
		Matches:    stat.Matches.Json(),
	})
}
