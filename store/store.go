package store

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alibaba/RedisKeyTrie/common"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSqlite = "sqlite3"
	DriverMysql  = "mysql"

	commitBatch = 1000

	QueryTable  = "query"
	ResultTable = "query_result"
)

var autoIncrement = map[string]string{
	DriverSqlite: "INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL",
	DriverMysql:  "BIGINT PRIMARY KEY AUTO_INCREMENT NOT NULL",
}

// Store records every query answered by the index and the keys it returned.
type Store struct {
	driver string
	db     *sql.DB

	mu         sync.Mutex
	resultFile *os.File
}

/*
 * Open connects to the result db and creates the tables. A sqlite3 file is
 * removed first so every run starts empty. When resultFile isn't empty every
 * written key is also appended there as 'db\tquery-kind\tkey\ttype'.
 */
func Open(driver, dsn, resultFile string) (*Store, error) {
	if _, ok := autoIncrement[driver]; !ok {
		return nil, fmt.Errorf("unknown result db driver[%v]", driver)
	}

	if driver == DriverSqlite {
		os.Remove(dsn)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open result db[%v] failed[%v]", dsn, err)
	}
	if driver == DriverSqlite {
		// sqlite allows one writer only
		db.SetMaxOpenConns(1)
	}

	s := &Store{driver: driver, db: db}
	if err = s.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	if len(resultFile) > 0 {
		s.resultFile, err = os.OpenFile(resultFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("open result file[%v] failed[%v]", resultFile, err)
		}
	}
	return s, nil
}

func (s *Store) createTable() error {
	querySql := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s(
   id             %s,
   kind           VARCHAR(16) NOT NULL,
   input          TEXT NOT NULL,
   db             INTEGER NOT NULL,
   hits           INTEGER NOT NULL,
   created_at     INTEGER NOT NULL
);
`, QueryTable, autoIncrement[s.driver])
	if _, err := s.db.Exec(querySql); err != nil {
		return fmt.Errorf("exec sql %s failed[%v]", querySql, err)
	}

	resultSql := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s(
   id             %s,
   query_id       INTEGER NOT NULL,
   key_name       TEXT NOT NULL,
   key_type       VARCHAR(16) NOT NULL,
   item_count     INTEGER NOT NULL,
   value          BLOB
);
`, ResultTable, autoIncrement[s.driver])
	if _, err := s.db.Exec(resultSql); err != nil {
		return fmt.Errorf("exec sql %s failed[%v]", resultSql, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.resultFile != nil {
		s.resultFile.Close()
	}
	return s.db.Close()
}

func (s *Store) writeResultFile(db int32, kind string, key *common.Key) {
	if s.resultFile == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resultFile.WriteString(fmt.Sprintf("%d\t%s\t%s\t%s\n", db, kind, key.Key, key.Tp))
}

type Query struct {
	Id        int64
	Kind      string
	Input     string
	Db        int32
	Hits      int64
	CreatedAt time.Time
}

type Result struct {
	Key       string
	Type      string
	ItemCount int64
	Value     []byte
}

// Query returns the query record with the given id.
func (s *Store) Query(id int64) (*Query, error) {
	row := s.db.QueryRow(fmt.Sprintf("select id,kind,input,db,hits,created_at from %s where id=?", QueryTable), id)
	q := new(Query)
	var createdAt int64
	if err := row.Scan(&q.Id, &q.Kind, &q.Input, &q.Db, &q.Hits, &createdAt); err != nil {
		return nil, fmt.Errorf("read query[%v] failed[%v]", id, err)
	}
	q.CreatedAt = time.Unix(createdAt, 0)
	return q, nil
}

// Results returns the keys written for a query in insertion order.
func (s *Store) Results(queryID int64) ([]Result, error) {
	rows, err := s.db.Query(fmt.Sprintf("select key_name,key_type,item_count,value from %s where query_id=? order by id",
		ResultTable), queryID)
	if err != nil {
		return nil, fmt.Errorf("read results of query[%v] failed[%v]", queryID, err)
	}
	defer rows.Close()

	result := make([]Result, 0)
	for rows.Next() {
		var r Result
		if err = rows.Scan(&r.Key, &r.Type, &r.ItemCount, &r.Value); err != nil {
			return nil, fmt.Errorf("scan result of query[%v] failed[%v]", queryID, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
