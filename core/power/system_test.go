package power

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/solar4farm/core/weather"
)

const (
	activeLoad  = 13.25
	passiveLoad = 2.5
)

func referencePanel() Panel {
	return Panel{Area: 10, Efficiency: 0.2, Country: "France", RatedPower: 2000, Material: "Monosillicium"}
}

func newReferenceSystem(t *testing.T) *System {
	t.Helper()
	s, err := NewSystem(referencePanel(), DefaultTables(), activeLoad)
	require.NoError(t, err)
	return s
}

func TestNewSystemCapacities(t *testing.T) {
	s := newReferenceSystem(t)
	assert.InDelta(t, 144, s.MaxCapacity(), 1e-9)
	assert.InDelta(t, 14.4, s.LowThreshold(), 1e-9)
	assert.InDelta(t, 129.6, s.HighThreshold(), 1e-9)
	assert.Equal(t, s.MaxCapacity(), s.Main())
	assert.Equal(t, s.MaxCapacity(), s.Backup())
	assert.Equal(t, ActiveMain, s.State())
}

func TestNoSunPassiveLoad(t *testing.T) {
	s := newReferenceSystem(t)
	dark := weather.Sample{}

	prev := s.Main()
	steps := 0
	for s.State() == ActiveMain {
		ok, err := s.Step(passiveLoad, dark)
		require.NoError(t, err)
		require.True(t, ok)
		if s.State() == ActiveMain {
			require.Less(t, s.Main(), prev, "main discharges monotonically")
			prev = s.Main()
		}
		steps++
		require.Less(t, steps, 1000)
	}
	// 52 draws of 2.5 take main from 144 to 14, below the 14.4 threshold
	assert.Equal(t, 53, steps)
	assert.InDelta(t, 14.0, s.Main(), 1e-9)
	assert.InDelta(t, 144-passiveLoad, s.Backup(), 1e-9)

	satisfied := 1
	for {
		ok, err := s.Step(passiveLoad, dark)
		require.NoError(t, err)
		if !ok {
			break
		}
		satisfied++
	}
	assert.Equal(t, 52, satisfied, "backup serves until it drops below the low threshold")
	assert.Less(t, s.Backup(), s.LowThreshold())
	assert.Less(t, s.Main(), s.HighThreshold())
	assert.Equal(t, ActiveBackup, s.State())

	ok, err := s.Step(passiveLoad, dark)
	require.NoError(t, err)
	assert.False(t, ok, "stays unsatisfied without sun")
}

func TestSunChargesStandby(t *testing.T) {
	s := newReferenceSystem(t)
	// irradiance giving exactly half the capacity: 72 A * 25 V / (10 m² * 0.2)
	sunny := weather.Sample{Irradiance: 900}
	require.InDelta(t, 72, s.SolarCurrent(sunny), 1e-9)

	s.batteries[BackupBattery] = 100
	ok, err := s.Step(activeLoad, sunny)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 144-activeLoad, s.Main(), 1e-9)
	assert.Equal(t, s.MaxCapacity(), s.Backup(), "standby charge is capped")

	s.batteries[BackupBattery] = 10
	_, err = s.Step(activeLoad, weather.Sample{Irradiance: 899})
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Backup(), "weak sun does not charge")
}

func TestBackupReturnsToMainAboveHighThreshold(t *testing.T) {
	s := newReferenceSystem(t)
	s.state = ActiveBackup
	s.batteries[BackupBattery] = 1
	s.batteries[MainBattery] = s.HighThreshold() - 0.01

	ok, err := s.Step(passiveLoad, weather.Sample{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, ActiveBackup, s.State())

	s.batteries[MainBattery] = s.HighThreshold()
	ok, err = s.Step(passiveLoad, weather.Sample{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ActiveMain, s.State())
	assert.InDelta(t, s.HighThreshold()-passiveLoad, s.Main(), 1e-9)
}

func TestDoubleTransitionIsReported(t *testing.T) {
	s := newReferenceSystem(t)
	// corrupt the thresholds so the recovery guard always passes
	s.high = 0
	s.batteries[MainBattery] = 0
	s.batteries[BackupBattery] = 0
	_, err := s.Step(passiveLoad, weather.Sample{})
	assert.ErrorIs(t, err, ErrDoubleTransition)
}

func TestStepRejectsNegativeLoad(t *testing.T) {
	s := newReferenceSystem(t)
	_, err := s.Step(-1, weather.Sample{})
	assert.ErrorIs(t, err, ErrInvalidLoad)
}

func TestRandomWalkInvariants(t *testing.T) {
	s := newReferenceSystem(t)
	rng := rand.New(rand.NewPCG(5, 8))
	prevFootprint := s.CarbonFootprint()
	for i := 0; i < 20000; i++ {
		load := passiveLoad
		if rng.Float64() < 0.2 {
			load = activeLoad
		}
		w := weather.Sample{Temperature: 15, Irradiance: rng.Float64() * 1100}
		ok, err := s.Step(load, w)
		require.NoError(t, err)

		require.GreaterOrEqual(t, s.Main(), 0.0)
		require.LessOrEqual(t, s.Main(), s.MaxCapacity())
		require.GreaterOrEqual(t, s.Backup(), 0.0)
		require.LessOrEqual(t, s.Backup(), s.MaxCapacity())

		fp := s.CarbonFootprint()
		require.GreaterOrEqual(t, fp, prevFootprint)
		prevFootprint = fp

		if !ok {
			require.Equal(t, ActiveBackup, s.State(), "unsatisfied only once backup is serving")
			backupFails := s.Backup() < load || s.Backup() < s.LowThreshold()
			require.True(t, backupFails)
			require.Less(t, s.Main(), s.HighThreshold())
		}
		if i%8760 == 8759 {
			s.Reset()
		}
	}
}

func TestResetKeepsLifetimeFootprint(t *testing.T) {
	s := newReferenceSystem(t)
	embodied := s.CarbonFootprint()
	assert.Equal(t, s.EmbodiedFootprint(), embodied)
	assert.Equal(t, embodied, s.EpochCarbonFootprint())

	for i := 0; i < 10; i++ {
		_, err := s.Step(passiveLoad, weather.Sample{})
		require.NoError(t, err)
	}
	lifetime := s.CarbonFootprint()
	assert.InDelta(t, 25, s.DischargedAh(), 1e-9)
	assert.Greater(t, lifetime, embodied)
	assert.Equal(t, lifetime, s.EpochCarbonFootprint())

	s.state = ActiveBackup
	s.Reset()
	assert.Equal(t, ActiveMain, s.State())
	assert.Equal(t, s.MaxCapacity(), s.Main())
	assert.Equal(t, s.MaxCapacity(), s.Backup())
	assert.Equal(t, lifetime, s.CarbonFootprint(), "lifetime footprint survives reset")
	assert.Equal(t, embodied, s.EpochCarbonFootprint())
	assert.Equal(t, 0.0, s.EpochDischargedAh())
}

func TestCarbonFootprintValues(t *testing.T) {
	s := newReferenceSystem(t)
	// 2 kWc * (355 + 339) / 2 + 100 km * 2.4
	assert.InDelta(t, 694+240, s.EmbodiedFootprint(), 1e-9)
	_, err := s.Step(10, weather.Sample{})
	require.NoError(t, err)
	// 10 Ah at 25 V is 0.25 kWh
	assert.InDelta(t, 934+0.25*0.175, s.CarbonFootprint(), 1e-9)
}

func TestNewSystemValidation(t *testing.T) {
	tables := DefaultTables()
	cases := []struct {
		name  string
		panel Panel
		load  float64
		want  error
	}{
		{"unreachable recovery", Panel{Area: 1, Efficiency: 0.2, Country: "France", RatedPower: 100, Material: "Thin"}, activeLoad, ErrUnreachableRecovery},
		{"unknown country", Panel{Area: 1, Efficiency: 0.2, Country: "Atlantis", RatedPower: 2000, Material: "Thin"}, activeLoad, ErrUnknownCountry},
		{"unknown material", Panel{Area: 1, Efficiency: 0.2, Country: "France", RatedPower: 2000, Material: "Glass"}, activeLoad, ErrUnknownMaterial},
		{"zero area", Panel{Efficiency: 0.2, Country: "France", RatedPower: 2000, Material: "Thin"}, activeLoad, ErrInvalidPanel},
		{"efficiency", Panel{Area: 1, Efficiency: 1.2, Country: "France", RatedPower: 2000, Material: "Thin"}, activeLoad, ErrInvalidPanel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSystem(tc.panel, tables, tc.load)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
