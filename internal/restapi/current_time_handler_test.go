package restapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTimeHandler(t *testing.T) {
	before := time.Now().UnixMilli()
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/current-time.json")
	after := time.Now().UnixMilli()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, "OK", model.Text)
	assert.Equal(t, 2, model.Version)
	assert.GreaterOrEqual(t, model.CurrentTime, before)

	entry := entryOf(t, model)
	ms := int64(entry["time"].(float64))
	assert.GreaterOrEqual(t, ms, before)
	assert.LessOrEqual(t, ms, after)

	readable, err := time.Parse(time.RFC3339, entry["readableTime"].(string))
	require.NoError(t, err)
	assert.Equal(t, ms/1000, readable.Unix())

	assert.Equal(t, "en", entry["locale"])
	assert.Contains(t, entry["localTime"], "UTC")
	assert.LessOrEqual(t, entry["ratesAsOf"].(float64), float64(after))
	assert.GreaterOrEqual(t, entry["ratesAgeSeconds"].(float64), float64(0))
}
