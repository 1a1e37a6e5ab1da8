package toll

import (
	"github.com/tollgrid/tollgrid/internal/distance"
)

// ApplyVehicleRates derives the base toll columns for each long-form
// distance record: vehicle toll = distance times the fixed class rate.
// The function is pure and total; it returns new records and leaves
// the input untouched.
func ApplyVehicleRates(pairs []distance.PairRecord) []RateRecord {
	records := make([]RateRecord, len(pairs))
	for i, p := range pairs {
		records[i] = RateRecord{
			IDStart:  p.IDStart,
			IDEnd:    p.IDEnd,
			Distance: p.Distance,
			Moto:     p.Distance * vehicleRates[VehicleMoto],
			Car:      p.Distance * vehicleRates[VehicleCar],
			RV:       p.Distance * vehicleRates[VehicleRV],
			Bus:      p.Distance * vehicleRates[VehicleBus],
			Truck:    p.Distance * vehicleRates[VehicleTruck],
		}
	}
	return records
}
