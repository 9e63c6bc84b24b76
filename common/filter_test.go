package common

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFilter(t *testing.T) {
	var nr int
	{
		nr++
		fmt.Printf("TestKeyFilter case %d.\n", nr)

		filter, err := NewKeyFilter("")
		assert.Nil(t, err, "should be nil")
		assert.Equal(t, true, filter.Pass([]byte("abc")), "should be equal")
		assert.Equal(t, true, filter.Pass([]byte("df")), "should be equal")
		assert.Equal(t, true, filter.Pass([]byte("")), "should be equal")
		assert.Equal(t, "*", filter.String(), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestKeyFilter case %d.\n", nr)

		filter, err := NewKeyFilter("abc|adf|bdf*|m*")
		assert.Nil(t, err, "should be nil")
		assert.Equal(t, true, filter.Pass([]byte("abc")), "should be equal")
		assert.Equal(t, false, filter.Pass([]byte("abcd")), "should be equal")
		assert.Equal(t, false, filter.Pass([]byte("adff")), "should be equal")
		assert.Equal(t, false, filter.Pass([]byte("ab")), "should be equal")
		assert.Equal(t, true, filter.Pass([]byte("bdf")), "should be equal")
		assert.Equal(t, true, filter.Pass([]byte("bdfff")), "should be equal")
		assert.Equal(t, true, filter.Pass([]byte("m")), "should be equal")
		assert.Equal(t, true, filter.Pass([]byte("m1")), "should be equal")
		assert.Equal(t, false, filter.Pass([]byte("")), "should be equal")
		assert.Equal(t, "abc|adf|bdf*|m*", filter.String(), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestKeyFilter case %d.\n", nr)

		filter, err := NewKeyFilter("*")
		assert.Nil(t, err, "should be nil")
		assert.Equal(t, true, filter.Pass([]byte("abc")), "should be equal")
		assert.Equal(t, true, filter.Pass([]byte("m1")), "should be equal")
		assert.Equal(t, true, filter.Pass([]byte("")), "should be equal")
	}

	{
		nr++
		fmt.Printf("TestKeyFilter case %d.\n", nr)

		_, err := NewKeyFilter("abc||m*")
		assert.NotNil(t, err, "should not be nil")
		_, err = NewKeyFilter("abc|")
		assert.NotNil(t, err, "should not be nil")
	}

	{
		nr++
		fmt.Printf("TestKeyFilter case %d.\n", nr)

		var filter *KeyFilter
		assert.Equal(t, true, filter.Pass([]byte("anything")), "nil filter passes all")
	}
}
