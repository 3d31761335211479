// Package pipeline runs the scope classifier over batches of URLs.
//
// The batch classifier backs the classify command: it fans candidate URLs
// out to a bounded set of goroutines, collects each verdict together with
// the rejecting rule name, and returns the results in input order so the
// output is directly comparable to the input file.
package pipeline
