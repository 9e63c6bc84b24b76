package common

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseInfo convert result of info command to map[string]string.
// For example, "opapply_source_count:1\r\nopapply_source_0:server_id=3171317,applied_opid=1\r\n" is converted to map[string]string{"opapply_source_count": "1", "opapply_source_0": "server_id=3171317,applied_opid=1"}.
func ParseInfo(content []byte) map[string]string {
	result := make(map[string]string, 10)
	lines := bytes.Split(content, []byte("\r\n"))
	for i := 0; i < len(lines); i++ {
		items := bytes.SplitN(lines[i], []byte(":"), 2)
		if len(items) != 2 {
			continue
		}
		result[string(items[0])] = string(items[1])
	}
	return result
}

// ParseKeyspace turns the "Keyspace" info section into db -> key count,
// e.g. "db0:keys=3,expires=0,avg_ttl=0" gives {0: 3}.
func ParseKeyspace(content []byte) (map[int32]int64, error) {
	result := make(map[int32]int64)
	for name, value := range ParseInfo(content) {
		if !strings.HasPrefix(name, "db") {
			continue
		}
		db, err := strconv.ParseInt(strings.TrimPrefix(name, "db"), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse db[%v] failed[%v]", name, err)
		}

		var keys int64 = -1
		for _, item := range strings.Split(value, ",") {
			kv := strings.SplitN(item, "=", 2)
			if len(kv) == 2 && kv[0] == "keys" {
				if keys, err = strconv.ParseInt(kv[1], 10, 64); err != nil {
					return nil, fmt.Errorf("parse keys of db[%v] failed[%v]", name, err)
				}
			}
		}
		if keys < 0 {
			return nil, fmt.Errorf("keys of db[%v] not found in[%v]", name, value)
		}
		result[int32(db)] = keys
	}
	return result, nil
}

// FilterDBList parses a db white list like "0;5;15". "-1" or "" means all dbs and returns nil.
func FilterDBList(input string) (map[int]struct{}, error) {
	if input == "" || input == "-1" {
		return nil, nil
	}
	result := make(map[int]struct{})
	for _, item := range strings.Split(input, Splitter) {
		db, err := strconv.Atoi(item)
		if err != nil || db < 0 {
			return nil, fmt.Errorf("invalid db[%v] in db filter list[%v]", item, input)
		}
		result[db] = struct{}{}
	}
	return result, nil
}

/*
 * ParseClusterNodes picks one column of the nodes with the given role out of
 * the reply of "cluster nodes". column is "address" (ip:port without the bus
 * port) or "id". Failed nodes are skipped.
 */
func ParseClusterNodes(content []byte, role, column string) ([]string, error) {
	result := make([]string, 0)
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items := strings.Fields(line)
		if len(items) < 8 {
			return nil, fmt.Errorf("invalid cluster nodes line[%v]", line)
		}

		flags := strings.Split(items[2], ",")
		hit := false
		for _, flag := range flags {
			if flag == "fail" || flag == "noaddr" {
				hit = false
				break
			}
			if flag == role {
				hit = true
			}
		}
		if !hit {
			continue
		}

		switch column {
		case "id":
			result = append(result, items[0])
		case "address":
			address := items[1]
			if idx := strings.Index(address, "@"); idx != -1 {
				address = address[:idx]
			}
			result = append(result, address)
		default:
			return nil, fmt.Errorf("unknown cluster nodes column[%v]", column)
		}
	}
	return result, nil
}

func CompareUnorderedList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
