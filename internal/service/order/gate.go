package order

import "time"

type GateConfig struct {
	EventDate       time.Time
	Location        *time.Location
	AllowTestOrders bool
}

// Gate admits orders only while the calendar date in the reference location
// equals the event date.
type Gate struct {
	cfg GateConfig
	now func() time.Time
}

// NewGate builds a gate. A nil clock means time.Now.
func NewGate(cfg GateConfig, now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Gate{
		cfg: cfg,
		now: now,
	}
}

func (g *Gate) Check() error {
	if g.cfg.AllowTestOrders {
		return nil
	}

	y, m, d := g.now().In(g.cfg.Location).Date()
	ey, em, ed := g.cfg.EventDate.Date()
	if y == ey && m == em && d == ed {
		return nil
	}

	return &ClosedError{EventDate: g.cfg.EventDate}
}

func (g *Gate) EventDate() time.Time {
	return g.cfg.EventDate
}

func (g *Gate) Now() time.Time {
	return g.now()
}
