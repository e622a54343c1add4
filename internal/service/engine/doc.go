// Package engine runs the countdown: one goroutine owns the timer session,
// the tick driver handle and the alarm driver handle.
//
// Commands arrive through Dispatch and are applied in order with the ticks, so
// a command always takes effect before the next tick. The periodic handles are
// acquired on transition edges into RUNNING/FINISHED and released on every
// edge out of them, including when Run returns.
package engine
