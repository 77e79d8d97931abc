package eco

// Record aggregates the ecological result of one system over one epoch.
type Record struct {
	System string
	Epoch  int
	// EmbodiedKg and OperationalKg are in kgCO2eq.
	EmbodiedKg    float64
	OperationalKg float64
	// Efficiency is the share of satisfied ticks, in percent.
	Efficiency float64
}

// TotalKg returns the epoch footprint.
func (r Record) TotalKg() float64 { return r.EmbodiedKg + r.OperationalKg }

// EfficiencyPerKg returns efficiency points per kgCO2eq, or 0 for a zero
// footprint.
func (r Record) EfficiencyPerKg() float64 {
	total := r.TotalKg()
	if total == 0 {
		return 0
	}
	return r.Efficiency / total
}
