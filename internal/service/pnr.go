package service

import "math/rand"

const (
	pnrMin = 100000
	pnrMax = 999999

	defaultPNRMaxAttempts = 16
)

// PNRSource draws candidate PNRs. Uniqueness is checked by the caller.
type PNRSource func() int

// RandomPNR draws a 6-digit PNR uniformly.
func RandomPNR() int {
	return pnrMin + rand.Intn(pnrMax-pnrMin+1)
}
