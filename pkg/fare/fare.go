package fare

const (
	BaseFare = 1250

	middleBandStart  = 10
	middleBandEnd    = 50
	middleBandUnitKm = 5
	longBandUnitKm   = 8
	extraUnitFare    = 100
)

// Calculate derives the fare for a path from its distance, the highest surcharge of the
// lines it travels on and the rider age. A nil age is charged as an adult.
func Calculate(distance int, surcharge int, age *int) int {
	fee := DistanceFare(distance) + surcharge

	return ClassifyPtr(age).Discount(fee)
}

func DistanceFare(distance int) int {
	switch {
	case distance <= middleBandStart:
		return BaseFare
	case distance <= middleBandEnd:
		return BaseFare + extraFare(distance-middleBandStart, middleBandUnitKm)
	default:
		return BaseFare +
			extraFare(middleBandEnd-middleBandStart, middleBandUnitKm) +
			extraFare(distance-middleBandEnd, longBandUnitKm)
	}
}

// extraFare charges one unit for every started block of unitKm
func extraFare(distance int, unitKm int) int {
	return ((distance-1)/unitKm + 1) * extraUnitFare
}
