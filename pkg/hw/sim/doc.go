// Package sim provides simulated feeder peripherals.
//
// Every type is safe for concurrent use: the controller tasks poll them from
// their own goroutines while a console or test drives them.
package sim
