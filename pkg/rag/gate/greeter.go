package gate

import (
	"fmt"
	"math/rand"
	"time"
)

// Greeter produces the short-circuit reply for pure greetings. Clock and
// randomness are injected so tests can pin both.
type Greeter struct {
	now  func() time.Time
	pick func(n int) int
}

func NewGreeter() *Greeter {
	return &Greeter{
		now:  time.Now,
		pick: rand.Intn,
	}
}

// NewGreeterWith builds a greeter with an explicit clock and template picker.
func NewGreeterWith(now func() time.Time, pick func(n int) int) *Greeter {
	return &Greeter{now: now, pick: pick}
}

// Salutation maps an hour of day to the time-of-day greeting.
func Salutation(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// Templates returns every greeting reply that can be produced for a given
// salutation. Tests assert membership in this set rather than equality.
func Templates(salutation string) []string {
	return []string{
		fmt.Sprintf("%s! How can I help you today?", salutation),
		fmt.Sprintf("Hello! %s! I'm here to assist you. What would you like to know?", salutation),
		fmt.Sprintf("Hi there! %s! How can I be of service today?", salutation),
		fmt.Sprintf("Greetings! %s! What can I help you with?", salutation),
		fmt.Sprintf("Hello! %s! I'm ready to help. What do you need assistance with?", salutation),
	}
}

// Reply picks a random greeting template for the current wall-clock time.
func (g *Greeter) Reply() string {
	templates := Templates(Salutation(g.now().Hour()))
	return templates[g.pick(len(templates))]
}
