package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundFloat64(t *testing.T) {
	assert.Equal(t, 62.07, RoundFloat64(180.0/290.0*100, 2))
	assert.Equal(t, 33.33, RoundFloat64(100.0/3.0, 2))
	assert.Equal(t, 66.67, RoundFloat64(200.0/3.0, 2))
	assert.Equal(t, 100.0, RoundFloat64(100, 2))
	assert.Equal(t, 0.0, RoundFloat64(0, 2))
}
