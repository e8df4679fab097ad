package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberRow(t *testing.T) {
	t.Run("empty columns stay absent", func(t *testing.T) {
		line := buildRow("P06", 3, "", "6", "", "100", "0")
		values := numberRow("")(line, 3, ParseNumber)
		require.Len(t, values, 5)

		assert.Nil(t, values[0].scalar)
		assert.Nil(t, values[2].scalar)
		require.NotNil(t, values[1].scalar)
		assert.Equal(t, 6.0, values[1].scalar.Number.Value)
		require.NotNil(t, values[3].scalar)
		assert.Equal(t, 100.0, values[3].scalar.Number.Value)
		require.NotNil(t, values[4].scalar)
		assert.Equal(t, 0.0, values[4].scalar.Number.Value)
	})

	t.Run("wind direction postfix restores tens of degrees", func(t *testing.T) {
		line := buildRow("WDR", 3, "31", "02", "36")
		values := numberRow("0")(line, 3, ParseNumber)
		require.Len(t, values, 3)

		require.NotNil(t, values[0].scalar)
		assert.Equal(t, 310.0, values[0].scalar.Number.Value)
		assert.Equal(t, "310", values[0].scalar.Number.Repr)
		require.NotNil(t, values[1].scalar)
		assert.Equal(t, 20.0, values[1].scalar.Number.Value)
		require.NotNil(t, values[2].scalar)
		assert.Equal(t, 360.0, values[2].scalar.Number.Value)
	})

	t.Run("unconvertible token stays absent", func(t *testing.T) {
		line := buildRow("CIG", 3, "8", "NG", "7")
		values := numberRow("")(line, 3, ParseNumber)
		require.Len(t, values, 3)
		assert.NotNil(t, values[0].scalar)
		assert.Nil(t, values[1].scalar)
		assert.NotNil(t, values[2].scalar)
	})
}

func TestCodeRow(t *testing.T) {
	line := buildRow("CLD", 3, "CL", "", "SC", "BK", "OV")
	values := codeRow(line, 3, ParseNumber)
	require.Len(t, values, 5)

	assert.Equal(t, "CL", values[0].scalar.Code)
	assert.Nil(t, values[1].scalar)
	assert.Equal(t, "SC", values[2].scalar.Code)
	assert.Equal(t, "BK", values[3].scalar.Code)
	assert.Equal(t, "OV", values[4].scalar.Code)
}

func TestPairRow(t *testing.T) {
	t.Run("pairs complete on the second value", func(t *testing.T) {
		// Cells: "12", "", "34", "56": 34 completes the pair opened by 12;
		// 56 never finds a partner and must not surface anywhere.
		line := "T06   12    34 56"
		values := pairRow(line, 3, ParseNumber)
		require.Len(t, values, 4)

		assert.Nil(t, values[0].pair)
		assert.Nil(t, values[1].pair)
		require.NotNil(t, values[2].pair)
		assert.Equal(t, 12.0, values[2].pair[0].Value)
		assert.Equal(t, 34.0, values[2].pair[1].Value)
		assert.Nil(t, values[3].pair)
	})

	t.Run("slash-separated adjacent cells", func(t *testing.T) {
		line := "T06    6/ 1    12/ 3"
		values := pairRow(line, 3, ParseNumber)
		require.Len(t, values, 5)

		assert.Nil(t, values[0].pair)
		require.NotNil(t, values[1].pair)
		assert.Equal(t, 6.0, values[1].pair[0].Value)
		assert.Equal(t, 1.0, values[1].pair[1].Value)
		assert.Nil(t, values[2].pair)
		assert.Nil(t, values[3].pair)
		require.NotNil(t, values[4].pair)
		assert.Equal(t, 12.0, values[4].pair[0].Value)
		assert.Equal(t, 3.0, values[4].pair[1].Value)
	})

	t.Run("blank row yields all absent", func(t *testing.T) {
		values := pairRow("T06                 ", 3, ParseNumber)
		require.Len(t, values, 5)
		for i, v := range values {
			assert.Nil(t, v.pair, "slot %d", i)
			assert.Nil(t, v.scalar, "slot %d", i)
		}
	})

	t.Run("unconvertible first value does not open a pair", func(t *testing.T) {
		// "XX" converts to nil, so "34" opens a fresh pair completed by "56".
		line := "T06   XX 34 56"
		values := pairRow(line, 3, ParseNumber)
		require.Len(t, values, 3)
		assert.Nil(t, values[0].pair)
		assert.Nil(t, values[1].pair)
		require.NotNil(t, values[2].pair)
		assert.Equal(t, 34.0, values[2].pair[0].Value)
		assert.Equal(t, 56.0, values[2].pair[1].Value)
	})
}
