package fare

import "fmt"

type AgeBand int

const (
	AgeBandAdult AgeBand = iota
	AgeBandChild
	AgeBandAdolescent
)

const (
	childMinAge      = 6
	adolescentMinAge = 13
	adultMinAge      = 19

	deductibleFare = 350

	childDiscountPercent      = 50
	adolescentDiscountPercent = 20
)

func Classify(age int) AgeBand {
	switch {
	case age >= childMinAge && age < adolescentMinAge:
		return AgeBandChild
	case age >= adolescentMinAge && age < adultMinAge:
		return AgeBandAdolescent
	default:
		return AgeBandAdult
	}
}

func ClassifyPtr(age *int) AgeBand {
	if age == nil {
		return AgeBandAdult
	}

	return Classify(*age)
}

func (b AgeBand) Discount(fee int) int {
	switch b {
	case AgeBandChild:
		return deductThenDiscount(fee, childDiscountPercent)
	case AgeBandAdolescent:
		return deductThenDiscount(fee, adolescentDiscountPercent)
	default:
		return fee
	}
}

func (b AgeBand) String() string {
	switch b {
	case AgeBandAdult:
		return "adult"
	case AgeBandChild:
		return "child"
	case AgeBandAdolescent:
		return "adolescent"
	default:
		return fmt.Sprintf("AgeBand(%d)", int(b))
	}
}

func deductThenDiscount(fee int, percent int) int {
	fee -= deductibleFare
	if fee <= 0 {
		return 0
	}

	return fee * (100 - percent) / 100
}
