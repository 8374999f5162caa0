package reactivity

import "time"

// Instrument observes the engine. Implementations must be cheap; they are
// called synchronously on the hot path.
type Instrument interface {
	EffectRan(d time.Duration, err error)
	ComputedRefreshed(changed bool, d time.Duration)
	BatchFlushed(triggered int, d time.Duration, err error)
}

// Instruments fans every call out to each non-nil instrument.
func Instruments(instruments ...Instrument) Instrument {
	var list multiInstrument
	for _, in := range instruments {
		if in != nil {
			list = append(list, in)
		}
	}
	return list
}

type multiInstrument []Instrument

func (m multiInstrument) EffectRan(d time.Duration, err error) {
	for _, in := range m {
		in.EffectRan(d, err)
	}
}

func (m multiInstrument) ComputedRefreshed(changed bool, d time.Duration) {
	for _, in := range m {
		in.ComputedRefreshed(changed, d)
	}
}

func (m multiInstrument) BatchFlushed(triggered int, d time.Duration, err error) {
	for _, in := range m {
		in.BatchFlushed(triggered, d, err)
	}
}
