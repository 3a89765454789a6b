// Package engine implements the core sliding-tile puzzle mechanics: board
// generation with a solvability guarantee, move legality and application,
// solved detection, and the difficulty presets that map to board sizes.
//
// The engine is deliberately free of transport and session concerns; it
// operates on a single puzzle with injected randomness and clock so tests
// can drive it deterministically.
package engine
