package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteJSONEncodesNonFiniteAsNull(t *testing.T) {
	q := OptionQuote{
		Inputs:    DemoInputs(),
		Call:      math.NaN(),
		Put:       math.Inf(-1),
		ParityGap: math.NaN(),
	}
	q.Inputs.Volatility = math.NaN()

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["call"])
	assert.Nil(t, decoded["put"])
	assert.Nil(t, decoded["inputs"].(map[string]interface{})["volatility"])
	assert.Equal(t, 100.0, decoded["inputs"].(map[string]interface{})["spot"])
}
