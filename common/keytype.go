package common

import "fmt"

type KeyTypeIndex int

const (
	StringTypeIndex KeyTypeIndex = iota
	HashTypeIndex
	ListTypeIndex
	SetTypeIndex
	ZsetTypeIndex
	StreamTypeIndex
	NoneTypeIndex
	EndKeyTypeIndex
)

func (p KeyTypeIndex) String() string {
	if p < 0 || p >= EndKeyTypeIndex {
		return "unknown"
	}
	return keyTypes[p].Name
}

type KeyType struct {
	Name            string // reply of TYPE
	Index           KeyTypeIndex
	FetchLenCommand string
}

func (p KeyType) String() string {
	return p.Name
}

var (
	StringKeyType = &KeyType{Name: "string", Index: StringTypeIndex, FetchLenCommand: "strlen"}
	HashKeyType   = &KeyType{Name: "hash", Index: HashTypeIndex, FetchLenCommand: "hlen"}
	ListKeyType   = &KeyType{Name: "list", Index: ListTypeIndex, FetchLenCommand: "llen"}
	SetKeyType    = &KeyType{Name: "set", Index: SetTypeIndex, FetchLenCommand: "scard"}
	ZsetKeyType   = &KeyType{Name: "zset", Index: ZsetTypeIndex, FetchLenCommand: "zcard"}
	StreamKeyType = &KeyType{Name: "stream", Index: StreamTypeIndex, FetchLenCommand: "xlen"}
	NoneKeyType   = &KeyType{Name: "none", Index: NoneTypeIndex, FetchLenCommand: "strlen"}
	EndKeyType    = &KeyType{Name: "unknown", Index: EndKeyTypeIndex, FetchLenCommand: "unknown"}
)

var keyTypes = [EndKeyTypeIndex]*KeyType{
	StringKeyType, HashKeyType, ListKeyType, SetKeyType, ZsetKeyType, StreamKeyType, NoneKeyType,
}

func NewKeyType(a string) *KeyType {
	for _, tp := range keyTypes {
		if tp.Name == a {
			return tp
		}
	}
	return EndKeyType
}

// Key is what the index stores for one redis key. ItemCount and Value are
// filled according to the value mode the index was built with.
type Key struct {
	Key       []byte
	Db        int32
	Tp        *KeyType
	ItemCount int64
	Value     []byte
}

func (p *Key) String() string {
	return fmt.Sprintf("db[%d] key[%s] type[%v] len[%d]", p.Db, p.Key, p.Tp, p.ItemCount)
}
