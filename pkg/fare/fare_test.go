package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func agePtr(age int) *int {
	return &age
}

func TestDistanceFare(t *testing.T) {
	tests := []struct {
		distance int
		expected int
	}{
		{distance: 1, expected: 1250},
		{distance: 5, expected: 1250},
		{distance: 10, expected: 1250},
		{distance: 11, expected: 1350},
		{distance: 15, expected: 1350},
		{distance: 16, expected: 1450},
		{distance: 50, expected: 2050},
		{distance: 51, expected: 2150},
		{distance: 58, expected: 2150},
		{distance: 59, expected: 2250},
		{distance: 66, expected: 2250},
		{distance: 67, expected: 2350},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DistanceFare(tt.distance), "distance %d", tt.distance)
	}
}

func TestDistanceFareIsMonotonic(t *testing.T) {
	previous := DistanceFare(1)
	for distance := 2; distance <= 200; distance++ {
		current := DistanceFare(distance)
		assert.GreaterOrEqual(t, current, previous, "distance %d", distance)
		previous = current
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		age      int
		expected AgeBand
	}{
		{age: 0, expected: AgeBandAdult},
		{age: 5, expected: AgeBandAdult},
		{age: 6, expected: AgeBandChild},
		{age: 12, expected: AgeBandChild},
		{age: 13, expected: AgeBandAdolescent},
		{age: 18, expected: AgeBandAdolescent},
		{age: 19, expected: AgeBandAdult},
		{age: 65, expected: AgeBandAdult},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.age), "age %d", tt.age)
	}

	assert.Equal(t, AgeBandAdult, ClassifyPtr(nil))
}

func TestAgeBandDiscount(t *testing.T) {
	assert.Equal(t, 1250, AgeBandAdult.Discount(1250))
	assert.Equal(t, 450, AgeBandChild.Discount(1250))
	assert.Equal(t, 720, AgeBandAdolescent.Discount(1250))

	assert.Equal(t, 0, AgeBandChild.Discount(350))
	assert.Equal(t, 0, AgeBandAdolescent.Discount(100))
	assert.Equal(t, 2, AgeBandChild.Discount(355))
}

func TestCalculate(t *testing.T) {
	assert.Equal(t, 1250, Calculate(5, 0, nil))
	assert.Equal(t, 450, Calculate(5, 0, agePtr(12)))
	assert.Equal(t, 720, Calculate(5, 0, agePtr(18)))
	assert.Equal(t, 2150, Calculate(5, 900, nil))
	assert.Equal(t, 2250, Calculate(12, 900, agePtr(30)))
}

func TestCalculateSurchargeIsAddedBeforeDiscount(t *testing.T) {
	for _, surcharge := range []int{0, 100, 500, 900} {
		assert.Equal(t, Calculate(20, 0, nil)+surcharge, Calculate(20, surcharge, nil))
	}

	// (1250 + 900 - 350) * 0.5
	assert.Equal(t, 900, Calculate(5, 900, agePtr(8)))
}
