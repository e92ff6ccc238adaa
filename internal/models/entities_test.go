package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "300.00", FormatAmount(30000))
	assert.Equal(t, "187.50", FormatAmount(18750))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "-1.20", FormatAmount(-120))
}

func TestAmountFromMajor(t *testing.T) {
	assert.Equal(t, int64(30000), AmountFromMajor(300))
	assert.Equal(t, int64(19999), AmountFromMajor(199.99))
}

func TestTrainCloneDoesNotAlias(t *testing.T) {
	train := Train{Number: "101", Classes: []ClassInfo{{Name: "Sleeper", Price: 30000, AvailableSeats: 5}}}
	clone := train.Clone()
	clone.Classes[0].AvailableSeats = 0

	class, ok := train.Class("Sleeper")
	assert.True(t, ok)
	assert.Equal(t, 5, class.AvailableSeats)

	_, ok = train.Class("1A")
	assert.False(t, ok)
}
