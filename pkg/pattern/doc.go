// Package pattern compiles pattern text into immutable format/parse plans
// for the span value types.
//
// A pattern string ("H:mm", "uuuu/MM", "-D:hh:mm:ss.FFFFFFFFF") is compiled
// exactly once into a step sequence; the resulting facade formats any value
// totally and parses text into a Result carrying either the value or a
// structured *ParseError. Malformed pattern text is rejected at compile time
// with a *PatternError; the two error spaces never overlap.
//
// Facades are bound to a culture snapshot. Rebinding with WithCulture shares
// the compiled steps, so a pattern compiled once can serve any number of
// locales. Single-character pattern text names a standard pattern, which is
// culture-invariant.
package pattern
