package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	vars := map[string]string{"B": "2", "A": "1", "C": "3"}
	assert.Equal(t, []string{"A", "B", "C"}, sortedKeys(vars))
}
