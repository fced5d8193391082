// Package strategy provides placement strategies for the draw engine.
//
// A strategy produces one complete seat assignment per call. The engine's
// restart optimizer invokes the strategy repeatedly with derived seeds and
// keeps the lowest-collision result, so strategies must keep all mutable
// placement state local to the call.
//
// Systematic is the production strategy: it commits fixed positions first,
// then distributes the remaining competitors country by country into the
// groups currently holding the fewest competitors of that country.
package strategy
