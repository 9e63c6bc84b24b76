package trie

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	var nr int
	{
		nr++
		fmt.Printf("TestGetSet case %d.\n", nr)

		tr := New[int]()
		assert.Equal(t, false, tr.Contains("abc"), "should be equal")
		assert.Equal(t, false, tr.Contains(""), "should be equal")
		_, ok := tr.Get("abc")
		assert.Equal(t, false, ok, "should be equal")
		assert.Equal(t, 0, tr.Len(), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestGetSet case %d.\n", nr)

		tr := New[int]()
		insertList := []string{"she", "sells", "sea", "shells", "by", "the", "sea", "shore"}
		for i, element := range insertList {
			tr.Set(element, i)
		}

		assert.Equal(t, 7, tr.Len(), "should be equal")
		for _, element := range []string{"she", "sells", "shells", "by", "the", "shore"} {
			assert.Equal(t, true, tr.Contains(element), element)
		}
		v, ok := tr.Get("sea")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, 6, v, "overwritten value")

		assert.Equal(t, false, tr.Contains("sh"), "should be equal")
		assert.Equal(t, false, tr.Contains("shel"), "should be equal")
		assert.Equal(t, false, tr.Contains("shelter"), "should be equal")
		assert.Equal(t, false, tr.Contains("a"), "should be equal")
		assert.Equal(t, false, tr.Contains(""), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestGetSet case %d.\n", nr)

		// prefix sharing
		tr := New[string]()
		tr.Set("cart", "2")
		tr.Set("car", "1")

		v, ok := tr.Get("car")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, "1", v, "should be equal")
		v, ok = tr.Get("cart")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, "2", v, "should be equal")
		assert.Equal(t, false, tr.Contains("ca"), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestGetSet case %d.\n", nr)

		// empty key is a no-op
		tr := New[int]()
		tr.Set("", 1)
		assert.Equal(t, 0, tr.Len(), "should be equal")
		assert.Equal(t, false, tr.Contains(""), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestGetSet case %d.\n", nr)

		// nil is a value like any other
		tr := New[*int]()
		tr.Set("k", nil)
		v, ok := tr.Get("k")
		assert.Equal(t, true, ok, "should be equal")
		assert.Nil(t, v)
	}

	{
		nr++
		fmt.Printf("TestGetSet case %d.\n", nr)

		tr := New[int]()
		tr.Set("héllo", 1)
		tr.Set("日本語", 2)
		v, ok := tr.Get("日本語")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, 2, v, "should be equal")
		assert.Equal(t, true, tr.Contains("héllo"), "should be equal")
		assert.Equal(t, false, tr.Contains("hello"), "should be equal")
	}
}

func TestOverwrite(t *testing.T) {
	tr := New[int]()
	tr.Set("key", 1)
	tr.Set("key", 2)

	v, ok := tr.Get("key")
	assert.Equal(t, true, ok, "should be equal")
	assert.Equal(t, 2, v, "should be equal")
	assert.Equal(t, 1, tr.Len(), "should be equal")
	assert.Equal(t, map[string]int{"key": 2}, tr.PatternMatch("*"), "should be equal")
}

func TestPatternMatch(t *testing.T) {
	var nr int
	{
		nr++
		fmt.Printf("TestPatternMatch case %d.\n", nr)

		tr := New[int]()
		assert.Equal(t, map[string]int{}, tr.PatternMatch("*"), "should be equal")
		assert.Equal(t, map[string]int{}, tr.PatternMatch("a.c"), "should be equal")
		assert.Equal(t, map[string]int{}, tr.PatternMatch(""), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestPatternMatch case %d.\n", nr)

		tr := New[int]()
		tr.Set("abolish", 1)
		tr.Set("abominate", 2)
		tr.Set("xxxxxxx", 3)

		assert.Equal(t, map[string]int{"abolish": 1}, tr.PatternMatch("ab....."), "should be equal")
		assert.Equal(t, map[string]int{"abominate": 2}, tr.PatternMatch("ab......."), "should be equal")
		assert.Equal(t, map[string]int{}, tr.PatternMatch("ab......"), "should be equal")
		assert.Equal(t, map[string]int{"abolish": 1, "xxxxxxx": 3}, tr.PatternMatch("......."), "should be equal")
		assert.Equal(t, map[string]int{"abolish": 1}, tr.PatternMatch("abolish"), "should be equal")
		assert.Equal(t, map[string]int{}, tr.PatternMatch("abolis"), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestPatternMatch case %d.\n", nr)

		tr := New[int]()
		tr.Set("abolish", 1)
		tr.Set("abominate", 2)
		tr.Set("abcdilololomghey", 3)
		tr.Set("xyz", 4)

		expect := map[string]int{"abolish": 1, "abominate": 2, "abcdilololomghey": 3}
		assert.Equal(t, expect, tr.PatternMatch("ab*"), "should be equal")
		// trailing characters after '*' are ignored
		assert.Equal(t, expect, tr.PatternMatch("ab*zzz"), "should be equal")
		assert.Equal(t, map[string]int{"abolish": 1, "abominate": 2, "abcdilololomghey": 3, "xyz": 4},
			tr.PatternMatch("*"), "should be equal")
		assert.Equal(t, map[string]int{"abolish": 1, "abominate": 2, "abcdilololomghey": 3},
			tr.PatternMatch("ab..i*"), "should be equal")
		assert.Equal(t, map[string]int{"xyz": 4}, tr.PatternMatch(".y*"), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestPatternMatch case %d.\n", nr)

		// '*' matches the remainder after the consumed prefix, not the prefix itself
		tr := New[int]()
		tr.Set("ab", 1)
		tr.Set("abc", 2)
		assert.Equal(t, map[string]int{"abc": 2}, tr.PatternMatch("ab*"), "should be equal")
		assert.Equal(t, map[string]int{"ab": 1, "abc": 2}, tr.PatternMatch("a*"), "should be equal")
	}
}

func TestLongestPrefixOf(t *testing.T) {
	var nr int
	{
		nr++
		fmt.Printf("TestLongestPrefixOf case %d.\n", nr)

		tr := New[int]()
		_, ok := tr.LongestPrefixOf("hello")
		assert.Equal(t, false, ok, "should be equal")
		_, ok = tr.LongestPrefixOf("")
		assert.Equal(t, false, ok, "should be equal")
	}

	{
		nr++
		fmt.Printf("TestLongestPrefixOf case %d.\n", nr)

		tr := New[int]()
		tr.Set("hello", 1)

		prefix, ok := tr.LongestPrefixOf("helloh")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, "hello", prefix, "should be equal")

		prefix, ok = tr.LongestPrefixOf("hello")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, "hello", prefix, "should be equal")

		_, ok = tr.LongestPrefixOf("hel")
		assert.Equal(t, false, ok, "should be equal")
		_, ok = tr.LongestPrefixOf("!@#$")
		assert.Equal(t, false, ok, "should be equal")
	}

	{
		nr++
		fmt.Printf("TestLongestPrefixOf case %d.\n", nr)

		tr := New[int]()
		tr.Set("a", 1)
		tr.Set("abc", 2)
		tr.Set("abcdef", 3)
		tr.Set("b", 4)

		prefix, _ := tr.LongestPrefixOf("abcde")
		assert.Equal(t, "abc", prefix, "should be equal")
		prefix, _ = tr.LongestPrefixOf("abcdefgh")
		assert.Equal(t, "abcdef", prefix, "should be equal")
		prefix, _ = tr.LongestPrefixOf("ab")
		assert.Equal(t, "a", prefix, "should be equal")
		prefix, _ = tr.LongestPrefixOf("bcd")
		assert.Equal(t, "b", prefix, "should be equal")
		_, ok := tr.LongestPrefixOf("cab")
		assert.Equal(t, false, ok, "should be equal")
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	tr := New[int]()
	for i, k := range []string{"alpha", "alps", "beta", "bet", "gamma"} {
		tr.Set(k, i)
	}

	first := tr.PatternMatch("al*")
	prefix, _ := tr.LongestPrefixOf("betamax")
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, tr.PatternMatch("al*"), "should be equal")
		p, _ := tr.LongestPrefixOf("betamax")
		assert.Equal(t, prefix, p, "should be equal")
		v, ok := tr.Get("gamma")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, 4, v, "should be equal")
	}
	assert.Equal(t, 5, tr.Len(), "should be equal")
}

func TestRange(t *testing.T) {
	tr := New[int]()
	for i, k := range []string{"m", "b", "z", "ba", "a", "bab"} {
		tr.Set(k, i)
	}

	var keys []string
	tr.Range(func(key string, value int) bool {
		keys = append(keys, key)
		return true
	})
	assert.Equal(t, []string{"a", "b", "ba", "bab", "m", "z"}, keys, "should be equal")

	keys = keys[:0]
	tr.Range(func(key string, value int) bool {
		keys = append(keys, key)
		return len(keys) < 2
	})
	assert.Equal(t, []string{"a", "b"}, keys, "should be equal")
}

func TestBinaryKeys(t *testing.T) {
	var nr int
	{
		nr++
		fmt.Printf("TestBinaryKeys case %d.\n", nr)

		tr := New[int]()
		tr.Set("\xff", 1)
		tr.Set("\xfe", 2)
		assert.Equal(t, 2, tr.Len(), "invalid utf-8 bytes are distinct keys")

		v, ok := tr.Get("\xff")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, 1, v, "should be equal")
		v, ok = tr.Get("\xfe")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, 2, v, "should be equal")
		assert.Equal(t, false, tr.Contains("\xfd"), "should be equal")
		assert.Equal(t, false, tr.Contains("\uFFFD"), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestBinaryKeys case %d.\n", nr)

		tr := New[int]()
		tr.Set("user:\xff", 1)
		tr.Set("user:\xfe", 2)
		tr.Set("\xff", 3)

		prefix, ok := tr.LongestPrefixOf("\xffabc")
		assert.Equal(t, true, ok, "should be equal")
		assert.Equal(t, "\xff", prefix, "should be equal")

		assert.Equal(t, map[string]int{"user:\xff": 1, "user:\xfe": 2}, tr.PatternMatch("user:."), "should be equal")
		assert.Equal(t, map[string]int{"user:\xff": 1, "user:\xfe": 2}, tr.PatternMatch("user*"), "should be equal")

		var keys []string
		tr.Range(func(key string, value int) bool {
			keys = append(keys, key)
			return true
		})
		assert.Equal(t, []string{"user:\xfe", "user:\xff", "\xff"}, keys, "should be equal")
	}

	{
		nr++
		fmt.Printf("TestBinaryKeys case %d.\n", nr)

		// '.' stands for one byte of a multi-byte character
		tr := New[int]()
		tr.Set("é", 1)
		assert.Equal(t, map[string]int{"é": 1}, tr.PatternMatch(".."), "should be equal")
		assert.Equal(t, 0, len(tr.PatternMatch(".")), "should be equal")
	}
}
