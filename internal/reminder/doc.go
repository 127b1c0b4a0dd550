// Package reminder implements the local reminder scheduling core: the
// wall-clock arithmetic for daily reminder times, the reminder settings
// model, the timer scheduler that decides when to notify, the aggregate
// notification dispatcher, and the daily missed-dose sweep trigger.
//
// The scheduler is a single-goroutine active object owning a min-heap of
// armed timers. It never polls: callers re-configure it whenever settings
// or the pending-dose snapshot change. Every failure in this package
// degrades one firing's effect; nothing here is fatal to the host process.
package reminder
