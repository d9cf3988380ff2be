package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 20))
	assert.Equal(t, 40, CalculateOffset(3, 20))
	assert.Equal(t, 0, CalculateOffset(0, 20))
	assert.Equal(t, 0, CalculateOffset(-5, 20))
}

func TestCalculateOffset_HugePageSaturates(t *testing.T) {
	offset := CalculateOffset(922337203685477581, 20)
	assert.Equal(t, math.MaxInt, offset)

	assert.Equal(t, math.MaxInt, CalculateOffset(math.MaxInt, MaxPerPage))
	assert.GreaterOrEqual(t, CalculateOffset(math.MaxInt/MaxPerPage, MaxPerPage), 0)
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
}
