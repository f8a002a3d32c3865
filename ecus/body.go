package ecus

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vvtb/bench/core"
	"github.com/vvtb/bench/internal/nvm"
)

// Body is the Body Control Module: tracks total mileage and trip distance
// by integrating WHEEL_SPEED over each step, and owns the NVM file that
// survives an engine restart.
type Body struct {
	name string
	bus  *core.Bus
	log  *logrus.Entry

	storagePath   string
	totalMileageM float64
	tripMeterM    float64
	dt            time.Duration
}

// NewBody constructs a Body ECU, loading any prior odometer state from
// storagePath (tolerant of a missing or corrupt file — defaults to zero).
func NewBody(name string, bus *core.Bus, log *logrus.Entry, storagePath string) *Body {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	rec := nvm.Load(storagePath)
	return &Body{
		name:          name,
		bus:           bus,
		log:           log.WithField("node", name),
		storagePath:   storagePath,
		totalMileageM: rec.TotalMileageM,
		tripMeterM:    rec.TripMeterM,
		dt:            50 * time.Millisecond,
	}
}

func (b *Body) Name() string { return b.name }

func (b *Body) Receive(id core.MessageID, payload core.Payload, sender string) {
	switch id {
	case core.WheelSpeed:
		if f, ok := payload.(core.Float); ok {
			speed := math.Abs(float64(f))
			increment := speed * b.dt.Seconds()
			b.totalMileageM += increment
			b.tripMeterM += increment
		}
	case core.ResetTrip:
		b.tripMeterM = 0
		b.log.Debug("trip meter reset")
	}
}

// Step records the current dt (used for the next WHEEL_SPEED integration)
// and broadcasts the odometer reading.
func (b *Body) Step(dt time.Duration) {
	b.dt = dt
	b.broadcast(core.OdometerData, core.OdometerReading{
		TotalKM: b.totalMileageM / 1000.0,
		TripKM:  b.tripMeterM / 1000.0,
	})
}

func (b *Body) broadcast(id core.MessageID, p core.Payload) {
	if b.bus == nil {
		return
	}
	b.bus.Broadcast(id, p, b.name)
}

// SaveToNVM writes the current odometer state to storagePath explicitly;
// there is no implicit/periodic write.
func (b *Body) SaveToNVM() error {
	return nvm.Save(b.storagePath, nvm.OdometerRecord{
		TotalMileageM: b.totalMileageM,
		TripMeterM:    b.tripMeterM,
	})
}

// TotalMileageKM returns the accumulated total distance in kilometers.
func (b *Body) TotalMileageKM() float64 { return b.totalMileageM / 1000.0 }

// TripKM returns the accumulated trip distance in kilometers.
func (b *Body) TripKM() float64 { return b.tripMeterM / 1000.0 }
