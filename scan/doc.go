// Package scan parses batches of URLs concurrently and summarizes the outcome.
//
// A Scanner bounds concurrency with an errgroup, optionally throttles parses
// with a token bucket, and stops early through a circuit breaker when too
// many consecutive inputs fail to parse. Results always come back in input
// order, and every parse is recorded in the metrics package.
//
//	inputs, err := scan.ReadInputs(f)
//	if err != nil {
//		return err
//	}
//	report, err := scan.New(scan.Options{Workers: 8, FailureThreshold: 50}).Scan(ctx, inputs)
//	if errors.Is(err, scan.ErrTooManyFailures) {
//		// the input is probably not a URL list
//	}
package scan
