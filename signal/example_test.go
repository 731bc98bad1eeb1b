package signal_test

import (
	"fmt"
	"time"

	"github.com/oshokin/signal-hold/signal"
)

// A motion sensor gates a light: motion must stand for a second before the
// light turns on, and the light stays on for five seconds after motion
// stops.
func Example() {
	sched := signal.NewVirtualScheduler()
	motion := signal.NewSubject()

	light := signal.PersistTrueFor(
		signal.WhenTrueFor(motion, time.Second, sched),
		5*time.Second, sched,
	)

	signal.SubscribeValues(light, func(on bool) {
		fmt.Printf("light on: %v at %s\n", on, sched.Now().UTC().Format("15:04:05"))
	})

	motion.Next(false)
	motion.Next(true)
	sched.AdvanceBy(time.Second)
	motion.Next(false)
	sched.AdvanceBy(10 * time.Second)

	// Output:
	// light on: false at 00:00:00
	// light on: true at 00:00:01
	// light on: false at 00:00:06
}
