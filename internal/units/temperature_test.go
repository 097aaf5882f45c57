package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convertkit.dev/internal/domain"
)

func TestConvertTemperature(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{0, Celsius, Fahrenheit, 32},
		{100, Celsius, Fahrenheit, 212},
		{0, Celsius, Kelvin, 273.15},
		{0, Kelvin, Celsius, -273.15},
		{32, Fahrenheit, Celsius, 0},
		{0, Celsius, Rankine, 491.67},
		{491.67, Rankine, Celsius, 0},
		{-40, Celsius, Fahrenheit, -40},
		{0, Kelvin, Fahrenheit, -459.67},
		{-10, Kelvin, Celsius, -283.15},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			got, err := ConvertTemperature(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConvertTemperatureRoundTrip(t *testing.T) {
	scales := []string{Celsius, Fahrenheit, Kelvin, Rankine}
	for _, a := range scales {
		for _, b := range scales {
			there, err := ConvertTemperature(36.6, a, b)
			require.NoError(t, err)
			back, err := ConvertTemperature(there, b, a)
			require.NoError(t, err)
			assert.InDelta(t, 36.6, back, 1e-9)
		}
	}
}

func TestConvertTemperatureUnknownScale(t *testing.T) {
	_, err := ConvertTemperature(1, "x", Celsius)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnknownUnit))
	assert.Equal(t, "from", domain.FieldOf(err))

	_, err = ConvertTemperature(1, Celsius, "x")
	require.Error(t, err)
	assert.Equal(t, "to", domain.FieldOf(err))
}
