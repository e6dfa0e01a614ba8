package order_identity

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"
)

const (
	orderNumberPrefix = "LH"
	minCode           = 1000
	maxCode           = 9999
)

type IdentityFactory struct {
	location *time.Location

	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a factory that takes the order year from the given location.
// A nil src draws from the global generator.
func New(location *time.Location, src rand.Source) *IdentityFactory {
	f := &IdentityFactory{location: location}
	if src != nil {
		f.rnd = rand.New(src)
	}
	return f
}

// Generate returns a fresh order number LH-<year>-<NNNN> and an independent
// 4-digit tracking code. Uniqueness is the store's job.
func (f *IdentityFactory) Generate(now time.Time) (orderNumber string, trackingCode string) {
	year := now.In(f.location).Year()
	orderNumber = fmt.Sprintf("%s-%d-%d", orderNumberPrefix, year, f.draw())
	trackingCode = strconv.Itoa(f.draw())
	return orderNumber, trackingCode
}

func (f *IdentityFactory) draw() int {
	if f.rnd == nil {
		return minCode + rand.IntN(maxCode-minCode+1)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return minCode + f.rnd.IntN(maxCode-minCode+1)
}
