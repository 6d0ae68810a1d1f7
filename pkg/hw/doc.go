// Package hw defines the contracts between the feeder core and its
// peripherals: the real-time clock, the RFID reader, the dispensing servo,
// the two adjustment buttons and the status display.
//
// Drivers for concrete boards live outside this module. Package sim provides
// in-process implementations for simulation and tests.
package hw
