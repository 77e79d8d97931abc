package power

// Footprint accumulates the charge discharged by the batteries, in Ah. The
// lifetime total never decreases; the epoch total restarts at every reset.
type Footprint struct {
	lifetime float64
	epoch    float64
}

// Add records a discharge. Non-positive values are ignored.
func (f *Footprint) Add(ah float64) {
	if ah <= 0 {
		return
	}
	f.lifetime += ah
	f.epoch += ah
}

// Lifetime returns the charge discharged since construction.
func (f *Footprint) Lifetime() float64 { return f.lifetime }

// Epoch returns the charge discharged since the last epoch reset.
func (f *Footprint) Epoch() float64 { return f.epoch }

// ResetEpoch clears the epoch counter only.
func (f *Footprint) ResetEpoch() { f.epoch = 0 }
