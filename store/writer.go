package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alibaba/RedisKeyTrie/common"
)

// Writer appends the keys returned by one query. Rows are written inside a
// transaction that is committed every commitBatch rows.
type Writer struct {
	store   *Store
	kind    string
	db      int32
	queryID int64
	count   int64

	tx   *sql.Tx
	stmt *sql.Stmt
}

func (s *Store) NewWriter(kind, input string, db int32) (*Writer, error) {
	result, err := s.db.Exec(fmt.Sprintf("insert into %s (kind, input, db, hits, created_at) values(?,?,?,?,?)", QueryTable),
		kind, input, db, 0, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("insert query[%v %v] failed[%v]", kind, input, err)
	}
	queryID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("fetch query id failed[%v]", err)
	}

	w := &Writer{store: s, kind: kind, db: db, queryID: queryID}
	if err = w.begin(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) QueryID() int64 {
	return w.queryID
}

func (w *Writer) begin() error {
	var err error
	if w.tx, err = w.store.db.Begin(); err != nil {
		return fmt.Errorf("begin transaction failed[%v]", err)
	}
	w.stmt, err = w.tx.Prepare(fmt.Sprintf("insert into %s (query_id, key_name, key_type, item_count, value) values(?,?,?,?,?)",
		ResultTable))
	if err != nil {
		w.tx.Rollback()
		w.tx, w.stmt = nil, nil
		return fmt.Errorf("prepare insert failed[%v]", err)
	}
	return nil
}

func (w *Writer) commit() error {
	w.stmt.Close()
	tx := w.tx
	w.tx, w.stmt = nil, nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results of query[%v] failed[%v]", w.queryID, err)
	}
	return nil
}

func (w *Writer) Write(key *common.Key) error {
	if key.Tp == nil {
		return fmt.Errorf("key[%s] has no type", key.Key)
	}
	if w.count > 0 && w.count%commitBatch == 0 {
		if err := w.commit(); err != nil {
			return err
		}
		if err := w.begin(); err != nil {
			return err
		}
	}
	w.count++

	if _, err := w.stmt.Exec(w.queryID, string(key.Key), key.Tp.Name, key.ItemCount, key.Value); err != nil {
		return fmt.Errorf("insert result[%s] failed[%v]", key.Key, err)
	}
	w.store.writeResultFile(w.db, w.kind, key)
	return nil
}

// Close commits the pending rows and records the number of hits.
func (w *Writer) Close() error {
	if err := w.commit(); err != nil {
		return err
	}
	_, err := w.store.db.Exec(fmt.Sprintf("update %s set hits=? where id=?", QueryTable), w.count, w.queryID)
	if err != nil {
		return fmt.Errorf("update hits of query[%v] failed[%v]", w.queryID, err)
	}
	common.Logger.Debugf("query[%v] %s stored %d results", w.queryID, w.kind, w.count)
	return nil
}

// Abort drops the query together with the results committed so far.
func (w *Writer) Abort() error {
	if w.stmt != nil {
		w.stmt.Close()
	}
	if w.tx != nil {
		w.tx.Rollback()
	}
	w.tx, w.stmt = nil, nil

	if _, err := w.store.db.Exec(fmt.Sprintf("delete from %s where query_id=?", ResultTable), w.queryID); err != nil {
		return fmt.Errorf("delete results of query[%v] failed[%v]", w.queryID, err)
	}
	if _, err := w.store.db.Exec(fmt.Sprintf("delete from %s where id=?", QueryTable), w.queryID); err != nil {
		return fmt.Errorf("delete query[%v] failed[%v]", w.queryID, err)
	}
	return nil
}

// WriteAll records one query together with all of its results.
func (s *Store) WriteAll(kind, input string, db int32, keys []*common.Key) error {
	w, err := s.NewWriter(kind, input, db)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err = w.Write(key); err != nil {
			if abortErr := w.Abort(); abortErr != nil {
				common.Logger.Warnf("abort query[%v] failed[%v]", w.queryID, abortErr)
			}
			return err
		}
	}
	return w.Close()
}
