package units

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convertkit.dev/internal/domain"
)

func loadRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := LoadDefault()
	require.NoError(t, err)
	return reg
}

func TestLoadDefault(t *testing.T) {
	reg := loadRegistry(t)

	tests := []struct {
		domain domain.Domain
		count  int
		first  string
	}{
		{domain.DomainLength, 9, "m"},
		{domain.DomainArea, 10, "m2"},
		{domain.DomainVolume, 14, "l"},
		{domain.DomainWeight, 9, "kg"},
		{domain.DomainTemperature, 4, "c"},
	}

	for _, tt := range tests {
		t.Run(string(tt.domain), func(t *testing.T) {
			list, err := reg.ListUnits(tt.domain)
			require.NoError(t, err)
			assert.Len(t, list, tt.count)
			assert.Equal(t, tt.first, list[0].ID)
		})
	}
}

func TestBaseUnitsHaveFactorOne(t *testing.T) {
	reg := loadRegistry(t)

	for _, d := range domain.LinearDomains {
		table, err := reg.Table(d)
		require.NoError(t, err)

		f, ok := table.Factor(table.Base())
		require.True(t, ok)
		assert.Equal(t, 1.0, f, "base of %s", d)
	}
}

func TestListUnitsUnknownDomain(t *testing.T) {
	reg := loadRegistry(t)

	_, err := reg.ListUnits(domain.DomainCurrency)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnknownDomain))
}

func TestListUnitsReturnsCopy(t *testing.T) {
	reg := loadRegistry(t)

	list, err := reg.ListUnits(domain.DomainLength)
	require.NoError(t, err)
	list[0].Name = "changed"

	again, err := reg.ListUnits(domain.DomainLength)
	require.NoError(t, err)
	assert.Equal(t, "Meter", again[0].Name)
}

func TestRoundTripLaw(t *testing.T) {
	reg := loadRegistry(t)
	values := []float64{0, 1, -3.5, 42.125, 1e-6, 123456.789}

	for _, d := range domain.LinearDomains {
		list, err := reg.ListUnits(d)
		require.NoError(t, err)

		for _, a := range list {
			for _, b := range list {
				for _, v := range values {
					there, err := reg.Convert(d, v, a.ID, b.ID)
					require.NoError(t, err)
					back, err := reg.Convert(d, there, b.ID, a.ID)
					require.NoError(t, err)
					assert.InDelta(t, v, back, 1e-9*math.Max(1, math.Abs(v)), "%s %s->%s", d, a.ID, b.ID)
				}
			}
		}
	}
}

func TestIdentityLaw(t *testing.T) {
	reg := loadRegistry(t)

	for _, d := range []domain.Domain{domain.DomainLength, domain.DomainArea, domain.DomainVolume, domain.DomainWeight, domain.DomainTemperature} {
		list, err := reg.ListUnits(d)
		require.NoError(t, err)
		for _, u := range list {
			got, err := reg.Convert(d, 17.3, u.ID, u.ID)
			require.NoError(t, err)
			assert.Equal(t, 17.3, got, "%s %s", d, u.ID)
		}
	}
}

func TestKnownLinearConversions(t *testing.T) {
	reg := loadRegistry(t)

	tests := []struct {
		name     string
		domain   domain.Domain
		value    float64
		from, to string
		want     float64
	}{
		{"km to m", domain.DomainLength, 1, "km", "m", 1000},
		{"mile to km", domain.DomainLength, 1, "mi", "km", 1.609344},
		{"foot to inch", domain.DomainLength, 1, "ft", "in", 12},
		{"hectare to m2", domain.DomainArea, 1, "ha", "m2", 10000},
		{"gallon to liter", domain.DomainVolume, 1, "gal_us", "l", 3.78541},
		{"stone to pound", domain.DomainWeight, 1, "st", "lb", 6.35029 / 0.453592},
		{"negative area passes through", domain.DomainArea, -2, "km2", "m2", -2000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Convert(tt.domain, tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	reg := loadRegistry(t)

	_, err := reg.Convert(domain.DomainLength, 1, "parsec", "m")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindUnknownUnit))
	assert.Equal(t, "from", domain.FieldOf(err))

	_, err = reg.Convert(domain.DomainLength, 1, "m", "parsec")
	require.Error(t, err)
	assert.Equal(t, "to", domain.FieldOf(err))
}

func TestConvertNonFiniteValue(t *testing.T) {
	reg := loadRegistry(t)

	_, err := reg.Convert(domain.DomainWeight, math.NaN(), "kg", "lb")
	assert.True(t, domain.IsKind(err, domain.KindInvalidNumericInput))

	_, err = reg.Convert(domain.DomainTemperature, math.Inf(1), "c", "f")
	assert.True(t, domain.IsKind(err, domain.KindInvalidNumericInput))
}

func TestConvertRejectsOverflow(t *testing.T) {
	reg := loadRegistry(t)

	tests := []struct {
		name     string
		d        domain.Domain
		value    float64
		from, to string
	}{
		{"length up", domain.DomainLength, 1e308, "km", "mm"},
		{"length down", domain.DomainLength, -1e308, "km", "mm"},
		{"area", domain.DomainArea, 1e305, "km2", "cm2"},
		{"temperature", domain.DomainTemperature, math.MaxFloat64, "k", "r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Convert(tt.d, tt.value, tt.from, tt.to)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidNumericInput))
			assert.Equal(t, "value", domain.FieldOf(err))
		})
	}

	got, err := reg.Convert(domain.DomainLength, 1e300, "km", "mm")
	require.NoError(t, err)
	assert.InDelta(t, 1e306, got, 1e292)
}

func TestQuickSkipsOverflowingUnits(t *testing.T) {
	reg := loadRegistry(t)

	quick, err := reg.Quick(domain.DomainLength, 1e304, "km", "m", DefaultQuickCount)
	require.NoError(t, err)

	ids := make([]string, 0, len(quick))
	for _, q := range quick {
		ids = append(ids, q.Unit.ID)
	}
	assert.Equal(t, []string{"mi", "yd", "ft", "nm"}, ids)
}

func TestFindUnit(t *testing.T) {
	reg := loadRegistry(t)

	u, ok := reg.FindUnit(domain.DomainLength, "nm")
	require.True(t, ok)
	assert.Equal(t, "Nautical Mile", u.Name)
	assert.Equal(t, "NM", u.Symbol)

	_, ok = reg.FindUnit(domain.DomainLength, "furlong")
	assert.False(t, ok)
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"base factor not one", `
domains:
  - {name: length, kind: linear, base: m, units: [{id: m, name: Meter, symbol: m, factor: 2}]}
`},
		{"negative factor", `
domains:
  - {name: length, kind: linear, base: m, units: [{id: m, name: Meter, symbol: m, factor: 1}, {id: km, name: Kilometer, symbol: km, factor: -1}]}
`},
		{"missing factor", `
domains:
  - {name: length, kind: linear, base: m, units: [{id: m, name: Meter, symbol: m}]}
`},
		{"duplicate unit", `
domains:
  - {name: length, kind: linear, base: m, units: [{id: m, name: Meter, symbol: m, factor: 1}, {id: m, name: Meter, symbol: m, factor: 1}]}
`},
		{"unknown domain", `
domains:
  - {name: torque, kind: linear, base: nm, units: [{id: nm, name: Newton meter, symbol: N·m, factor: 1}]}
`},
		{"unknown field", `
domains:
  - {name: length, kind: linear, base: m, offset: 3, units: []}
`},
		{"missing domains", `
domains:
  - {name: length, kind: linear, base: m, units: [{id: m, name: Meter, symbol: m, factor: 1}]}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidTable), "got %v", err)
		})
	}
}
