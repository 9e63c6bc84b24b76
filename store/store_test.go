package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alibaba/RedisKeyTrie/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite

	dir   string
	store *Store
}

func (suite *StoreTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
	s, err := Open(DriverSqlite, filepath.Join(suite.dir, "result.db"), filepath.Join(suite.dir, "result.txt"))
	require.Nil(suite.T(), err, "should be nil")
	suite.store = s
}

func (suite *StoreTestSuite) TearDownTest() {
	suite.store.Close()
}

func (suite *StoreTestSuite) TestWriteAndRead() {
	t := suite.T()

	w, err := suite.store.NewWriter("match", "ab*", 2)
	require.Nil(t, err, "should be nil")
	require.Nil(t, w.Write(&common.Key{Key: []byte("abc"), Db: 2, Tp: common.StringKeyType, ItemCount: 3, Value: []byte("xyz")}))
	require.Nil(t, w.Write(&common.Key{Key: []byte("abd"), Db: 2, Tp: common.HashKeyType, ItemCount: 7}))
	require.Nil(t, w.Close())

	q, err := suite.store.Query(w.QueryID())
	require.Nil(t, err, "should be nil")
	assert.Equal(t, "match", q.Kind, "should be equal")
	assert.Equal(t, "ab*", q.Input, "should be equal")
	assert.Equal(t, int32(2), q.Db, "should be equal")
	assert.Equal(t, int64(2), q.Hits, "should be equal")

	results, err := suite.store.Results(w.QueryID())
	require.Nil(t, err, "should be nil")
	assert.Equal(t, []Result{
		{Key: "abc", Type: "string", ItemCount: 3, Value: []byte("xyz")},
		{Key: "abd", Type: "hash", ItemCount: 7},
	}, results, "should be equal")

	content, err := os.ReadFile(filepath.Join(suite.dir, "result.txt"))
	require.Nil(t, err, "should be nil")
	assert.Equal(t, "2\tmatch\tabc\tstring\n2\tmatch\tabd\thash\n", string(content), "should be equal")
}

func (suite *StoreTestSuite) TestEmptyQuery() {
	t := suite.T()

	w, err := suite.store.NewWriter("prefix", "!@#$", 0)
	require.Nil(t, err, "should be nil")
	require.Nil(t, w.Close())

	q, err := suite.store.Query(w.QueryID())
	require.Nil(t, err, "should be nil")
	assert.Equal(t, int64(0), q.Hits, "should be equal")

	results, err := suite.store.Results(w.QueryID())
	require.Nil(t, err, "should be nil")
	assert.Equal(t, 0, len(results), "should be equal")
}

func (suite *StoreTestSuite) TestBatchCommit() {
	t := suite.T()

	total := commitBatch*2 + 10
	w, err := suite.store.NewWriter("dump", "", 0)
	require.Nil(t, err, "should be nil")
	for i := 0; i < total; i++ {
		key := &common.Key{Key: []byte(fmt.Sprintf("key:%05d", i)), Tp: common.SetKeyType, ItemCount: int64(i)}
		require.Nil(t, w.Write(key))
	}
	require.Nil(t, w.Close())

	results, err := suite.store.Results(w.QueryID())
	require.Nil(t, err, "should be nil")
	require.Equal(t, total, len(results), "should be equal")
	assert.Equal(t, "key:00000", results[0].Key, "should be equal")
	assert.Equal(t, fmt.Sprintf("key:%05d", total-1), results[total-1].Key, "should be equal")
}

func (suite *StoreTestSuite) TestWriteAllFailure() {
	t := suite.T()

	keys := []*common.Key{
		{Key: []byte("abc"), Tp: common.StringKeyType, ItemCount: 3},
		{Key: []byte("broken")},
	}
	err := suite.store.WriteAll("match", "*", 0, keys)
	require.NotNil(t, err, "should not be nil")

	// a failed query leaves nothing behind
	_, err = suite.store.Query(1)
	assert.NotNil(t, err, "should not be nil")
	results, err := suite.store.Results(1)
	require.Nil(t, err, "should be nil")
	assert.Equal(t, 0, len(results), "should be equal")

	// the connection is released, the next query is recorded
	require.Nil(t, suite.store.WriteAll("get", "abc", 0, keys[:1]), "should be nil")
	q, err := suite.store.Query(2)
	require.Nil(t, err, "should be nil")
	assert.Equal(t, int64(1), q.Hits, "should be equal")
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("postgres", "whatever", "")
	assert.NotNil(t, err, "should not be nil")
}
