package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesValid(t *testing.T) {
	assert.NoError(t, DefaultTables().Validate())
}

func TestAhFootprintUnits(t *testing.T) {
	tb := DefaultTables()
	// 0.175 kgCO2eq/kWh at 25 V: 1 Ah = 25 Wh = 0.025 kWh.
	assert.InDelta(t, 0.004375, tb.AhFootprint(), 1e-12, "kgCO2eq per Ah")

	tb.OperatingVoltage = 48
	tb.EnergyFootprint = 0.5
	assert.InDelta(t, 0.024, tb.AhFootprint(), 1e-12)

	// 1000 Ah through a 25 V system is 25 kWh.
	sys, err := NewSystem(Panel{Area: 10, Efficiency: 0.2, Country: "France", RatedPower: 2000, Material: "Monosillicium"},
		DefaultTables(), 1)
	require.NoError(t, err)
	sys.footprint.Add(1000)
	assert.InDelta(t, 25*0.175, sys.CarbonFootprint()-sys.EmbodiedFootprint(), 1e-9)
}

func TestTablesValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"version", func(tb *Tables) { tb.Version = 2 }},
		{"unit", func(tb *Tables) { tb.Unit = "kgCO2eq/Wc" }},
		{"missing distance", func(tb *Tables) { tb.CountryFootprint["Peru"] = 300 }},
		{"voltage", func(tb *Tables) { tb.OperatingVoltage = 0 }},
		{"fractions", func(tb *Tables) { tb.DischargeFraction = 0.9; tb.ChargeFraction = 0.5 }},
		{"charge above one", func(tb *Tables) { tb.ChargeFraction = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tb := DefaultTables()
			tc.mutate(&tb)
			assert.ErrorIs(t, tb.Validate(), ErrInvalidTables)
		})
	}
}

func TestTablesSetDefaults(t *testing.T) {
	tb := Tables{OperatingVoltage: 48}
	tb.SetDefaults()
	assert.NoError(t, tb.Validate())
	assert.Equal(t, 48.0, tb.OperatingVoltage)
	assert.Equal(t, 1.8, tb.CapacityCoefficient)
	assert.Contains(t, tb.CountryFootprint, "Asia")
}

func TestFootprintAccumulator(t *testing.T) {
	var f Footprint
	f.Add(3)
	f.Add(-2)
	f.Add(0)
	assert.Equal(t, 3.0, f.Lifetime())
	f.ResetEpoch()
	f.Add(1)
	assert.Equal(t, 4.0, f.Lifetime())
	assert.Equal(t, 1.0, f.Epoch())
}

func TestStateEdges(t *testing.T) {
	assert.Equal(t, MainBattery, ActiveMain.Serving())
	assert.Equal(t, BackupBattery, ActiveMain.Standby())
	assert.Equal(t, BackupBattery, ActiveBackup.Serving())
	assert.Equal(t, MainBattery, ActiveBackup.Standby())
	assert.Equal(t, "active_backup", ActiveBackup.String())
	assert.Equal(t, "main", MainBattery.String())
}
