// Package statetesting provides ready-made state types for exercising the
// fieldstate protocol: a vector type, a player type covering every value
// kind including nesting and both dirty containers, and helpers to build
// seeded instances. It is used by the codec tests and by the bench command,
// and doubles as a reference for implementing IStateObject by hand.
package statetesting
