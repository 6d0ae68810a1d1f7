// Package whitelist implements the fixed RFID tag whitelist.
//
// Tags are stored in a small non-volatile store as MaxUsers consecutive slots
// of UIDSize bytes each. A slot filled with EmptyByte is unused. The whitelist
// is read once at startup and never modified at runtime; enrollment happens
// offline by writing a new store image.
//
// Lookup is a linear scan over the populated slots with an exact byte match.
// The first matching slot wins.
package whitelist
