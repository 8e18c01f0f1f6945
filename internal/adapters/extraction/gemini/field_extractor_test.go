package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_PlainJSON(t *testing.T) {
	text := `{"description":"Lunch","amount":12.5,"currency":"eur","date":"2026-02-03","category":"Meals","confidence":0.85,"fieldConfidence":{"description":0.9,"amount":0.8,"currency":0.95,"date":0.7,"category":0.6}}`

	result, err := parsePayload(text)

	require.NoError(t, err)
	require.NotNil(t, result.Description)
	assert.Equal(t, "Lunch", *result.Description)
	require.NotNil(t, result.Amount)
	assert.Equal(t, "12.5", result.Amount.String())
	require.NotNil(t, result.Currency)
	assert.Equal(t, "EUR", *result.Currency)
	require.NotNil(t, result.Date)
	assert.Equal(t, 2026, result.Date.Year())
	assert.InDelta(t, 0.85, result.Confidence, 1e-9)
	assert.InDelta(t, 0.8, result.FieldConfidence.Amount, 1e-9)
}

func TestParsePayload_StripsCodeFence(t *testing.T) {
	text := "```json\n{\"description\":null,\"amount\":null,\"currency\":null,\"date\":null,\"category\":null,\"confidence\":0.1,\"fieldConfidence\":{}}\n```"

	result, err := parsePayload(text)

	require.NoError(t, err)
	assert.Nil(t, result.Description)
	assert.Nil(t, result.Amount)
	assert.InDelta(t, 0.1, result.Confidence, 1e-9)
}

func TestParsePayload_InvalidJSON(t *testing.T) {
	_, err := parsePayload("sorry, I could not read the receipt")
	assert.Error(t, err)
}

func TestParsePayload_UnparseableDateDropped(t *testing.T) {
	text := `{"description":"Taxi","amount":9,"currency":"EUR","date":"tomorrow","category":null,"confidence":0.5,"fieldConfidence":{"date":0.9}}`

	result, err := parsePayload(text)

	require.NoError(t, err)
	assert.Nil(t, result.Date)
}
