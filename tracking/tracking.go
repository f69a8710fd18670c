// Package tracking models the fixed five-stage order progression shown
// to customers. Everything here is a pure function of the order's
// stored status; nothing in this package advances an order on its own.
package tracking

import "time"

type Stage string

const (
	StageConfirmed      Stage = "Order Confirmed"
	StagePreparing      Stage = "Preparing"
	StageReady          Stage = "Ready for Pickup"
	StageOutForDelivery Stage = "Out for Delivery"
	StageDelivered      Stage = "Delivered"
)

// Stages in display order.
var Stages = []Stage{
	StageConfirmed,
	StagePreparing,
	StageReady,
	StageOutForDelivery,
	StageDelivered,
}

var descriptions = map[Stage]string{
	StageConfirmed:      "Your order has been received",
	StagePreparing:      "The vendor is preparing your order",
	StageReady:          "Your order is ready",
	StageOutForDelivery: "Driver is on the way",
	StageDelivered:      "Enjoy your meal!",
}

// Index returns the stage's position in the progression, or -1 for an
// unknown stage.
func Index(s Stage) int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the five stages.
func Valid(s Stage) bool {
	return Index(s) >= 0
}

// Next returns the stage after s. ok is false when s is the final
// stage or unknown.
func Next(s Stage) (next Stage, ok bool) {
	i := Index(s)
	if i < 0 || i >= len(Stages)-1 {
		return "", false
	}
	return Stages[i+1], true
}

type StepState string

const (
	StepCompleted StepState = "completed"
	StepCurrent   StepState = "current"
	StepPending   StepState = "pending"
)

// StateOf classifies the step at position i relative to the current
// stage.
func StateOf(current Stage, i int) StepState {
	cur := Index(current)
	switch {
	case i < cur:
		return StepCompleted
	case i == cur:
		return StepCurrent
	default:
		return StepPending
	}
}

// Progress is the percentage of the progression completed,
// index/(stages-1)*100.
func Progress(current Stage) float64 {
	i := Index(current)
	if i < 0 {
		return 0
	}
	return float64(i) / float64(len(Stages)-1) * 100
}

// Step is one rendered row of the tracking view.
type Step struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       StepState `json:"state"`
}

// View renders every stage against the current one.
func View(current Stage) []Step {
	steps := make([]Step, len(Stages))
	for i, stage := range Stages {
		steps[i] = Step{
			Title:       string(stage),
			Description: descriptions[stage],
			State:       StateOf(current, i),
		}
	}
	return steps
}

// Simulator advances a stage on a fixed delay. It exists as a test and
// demo seam; the server only ever moves orders through vendor requests.
type Simulator struct {
	Interval time.Duration
	Sleep    func(time.Duration) // defaults to time.Sleep
}

// Run walks from the given stage to Delivered, invoking observe after
// each advancement.
func (s *Simulator) Run(from Stage, observe func(Stage)) {
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	current := from
	for {
		next, ok := Next(current)
		if !ok {
			return
		}
		sleep(s.Interval)
		current = next
		observe(current)
	}
}
