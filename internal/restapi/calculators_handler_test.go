package restapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMIHandlerMetric(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/bmi.json?height=180&weight=70")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.InDelta(t, 21.6, entry["bmi"], 0.01)
	assert.Equal(t, "21.6", entry["formatted"])
	assert.Equal(t, "Normal", entry["category"])
	assert.Equal(t, "ok", entry["severity"])
	assert.Equal(t, 1.8, entry["heightMeters"])
	assert.Equal(t, 70.0, entry["weightKg"])
}

func TestBMIHandlerImperial(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/bmi.json?system=imperial&feet=5&inches=10&weight=200")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, "28.7", entry["formatted"])
	assert.Equal(t, "Overweight", entry["category"])
	assert.InDelta(t, 90.7184, entry["weightKg"], 1e-9)
}

func TestBMIHandlerExplicitUnits(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/bmi.json?height=1.6&heightUnit=m&weight=11&weightUnit=st")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, "27.3", entry["formatted"])
	assert.Equal(t, "Overweight", entry["category"])
}

func TestBMIHandlerValidation(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		field    string
	}{
		{"missing weight", "/api/v1/bmi.json?height=180", "weight"},
		{"missing height", "/api/v1/bmi.json?weight=70", "height"},
		{"negative weight", "/api/v1/bmi.json?height=180&weight=-3", "weight"},
		{"non-numeric height", "/api/v1/bmi.json?height=tall&weight=70", "height"},
		{"unknown height unit", "/api/v1/bmi.json?height=6&heightUnit=ft&weight=70", "heightUnit"},
		{"unknown weight unit", "/api/v1/bmi.json?height=180&weight=70&weightUnit=oz", "weightUnit"},
		{"unknown system", "/api/v1/bmi.json?system=martian&height=180&weight=70", "system"},
		{"zero imperial height", "/api/v1/bmi.json?system=imperial&weight=150", "height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := createTestApi(t)
			resp, body := serveApiAndRetrieveBody(t, api, http.MethodGet, tt.endpoint)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, fieldErrorsOf(t, body), tt.field)
		})
	}
}

func TestBMICategoriesHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/bmi/categories.json")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := listOf(t, model)
	require.Len(t, list, 8)

	first := list[0].(map[string]interface{})
	assert.Equal(t, 0.0, first["min"])
	assert.Equal(t, 16.0, first["max"])
	assert.Equal(t, "Severe Thinness", first["label"])

	last := list[7].(map[string]interface{})
	assert.Equal(t, 40.0, last["min"])
	assert.Nil(t, last["max"])
	assert.Equal(t, "Obese Class III", last["label"])
}

func TestAgeHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/age.json?birthDate=1990-05-20&endDate=2024-03-10")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, "1990-05-20", entry["birthDate"])
	assert.Equal(t, "2024-03-10", entry["endDate"])
	assert.Equal(t, 33.0, entry["years"])
	assert.Equal(t, 9.0, entry["months"])
	assert.Equal(t, 19.0, entry["days"])
	assert.Equal(t, 12348.0, entry["totalDays"])
	assert.Equal(t, 405.0, entry["totalMonths"])
	assert.Equal(t, 1764.0, entry["totalWeeks"])
	assert.Equal(t, 296352.0, entry["totalHours"])
}

func TestAgeHandlerAcceptsLooseDates(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/age.json?birthDate=05/20/1990&endDate=March%2010,%202024")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, "1990-05-20", entry["birthDate"])
	assert.Equal(t, "2024-03-10", entry["endDate"])
	assert.Equal(t, 33.0, entry["years"])
}

func TestAgeHandlerDefaultsEndDateToToday(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/age.json?birthDate=2000-01-01")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, time.Now().UTC().Format(dateLayout), entry["endDate"])
	assert.GreaterOrEqual(t, entry["years"], 24.0)
}

func TestAgeHandlerValidation(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		field    string
	}{
		{"missing birth date", "/api/v1/age.json", "birthDate"},
		{"unparseable birth date", "/api/v1/age.json?birthDate=someday", "birthDate"},
		{"unparseable end date", "/api/v1/age.json?birthDate=2000-01-01&endDate=never", "endDate"},
		{"birth after end", "/api/v1/age.json?birthDate=2024-01-02&endDate=2024-01-01", "birthDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := createTestApi(t)
			resp, body := serveApiAndRetrieveBody(t, api, http.MethodGet, tt.endpoint)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, fieldErrorsOf(t, body), tt.field)
		})
	}
}
