// Package analysis looks at per-frame series after the fact.
//
// [DominantPeriod] finds the strongest oscillation in a series such as
// the link count per frame, which rises and falls as particles drift in
// and out of range of each other.
package analysis
