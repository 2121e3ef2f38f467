package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueUint(t *testing.T) {
	assert.Equal(t, []uint{1, 2, 3}, UniqueUint([]uint{1, 2, 1, 3, 2}))
	assert.Equal(t, []uint{}, UniqueUint(nil))
}

func TestContainsUint(t *testing.T) {
	assert.True(t, ContainsUint([]uint{1, 2, 3}, 2))
	assert.False(t, ContainsUint([]uint{1, 2, 3}, 4))
	assert.False(t, ContainsUint(nil, 1))
}

func TestRemoveUint(t *testing.T) {
	assert.Equal(t, []uint{1, 3}, RemoveUint([]uint{1, 2, 3}, 2))
	assert.Equal(t, []uint{1, 3}, RemoveUint([]uint{2, 1, 2, 3, 2}, 2))
	assert.Equal(t, []uint{1, 2}, RemoveUint([]uint{1, 2}, 5))
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, "UTC", LoadLocation("").String())
	assert.Equal(t, "UTC", LoadLocation("Not/AZone").String())
	assert.Equal(t, "America/New_York", LoadLocation("America/New_York").String())
}
