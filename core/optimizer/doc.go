// Package optimizer finds the rebelay spacing that minimizes the time a party
// needs to pass a rope.
//
// The search is a sweep followed by interpolation:
//  1. Evaluate the timing model for every rebelay count in [0, MaxRebelays).
//  2. Sort the samples by section length ascending; the sweep produces them in
//     descending order and interpolants require strictly increasing x.
//  3. Fit a cubic interpolant (not-a-knot by default) through the samples.
//  4. Evaluate it on Points evenly spaced section lengths between the shortest
//     and longest section, and report the first minimum rounded to 0.1 m.
//
// The round-trip variant sums ascent and descent time for the same rebelay
// layout before interpolating.
//
// Every function is pure: there is no shared state besides the method
// registry, and identical inputs give bit-identical results.
package optimizer
