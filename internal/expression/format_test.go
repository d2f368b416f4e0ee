package expression_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expression-calculator/internal/expression"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-0.001, "0"},
		{4, "4"},
		{2.5, "2.5"},
		{2.50, "2.5"},
		{2.005, "2.01"},
		{2.675, "2.68"},
		{-2.675, "-2.68"},
		{1.0 / 3.0, "0.33"},
		{2.0 / 3.0, "0.67"},
		{0.995, "1"},
		{-99999980000001, "-99999980000001"},
		{1e21, "1000000000000000000000"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
		{math.NaN(), "NaN"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, expression.Format(c.v), "Format(%v)", c.v)
	}
}

func TestFormatIdempotent(t *testing.T) {
	values := []float64{0, 1, -1, 0.1, 0.125, 2.675, 1.0 / 7.0, -1234.5678, 1e15 / 3}
	for _, v := range values {
		once := expression.Format(v)
		parsed, err := strconv.ParseFloat(once, 64)
		require.NoError(t, err)
		assert.Equal(t, once, expression.Format(parsed), "Format(%v)", v)
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2.68, expression.Round(2.675))
	assert.Equal(t, -1.5, expression.Round(-1.499999))
	assert.Equal(t, 3.0, expression.Round(3))
	assert.True(t, math.IsInf(expression.Round(math.Inf(1)), 1))
}
