// Package metrics exposes Prometheus instrumentation for URL parsing and
// batch scans.
//
// Collectors are registered on the default registry through promauto when
// the package is loaded:
//
//	urlkit_parse_total{scheme,status}
//	urlkit_parse_errors_total{kind}
//	urlkit_parse_duration_seconds
//	urlkit_encoding_expansion_ratio
//	urlkit_scan_inputs_total
//	urlkit_scan_breaker_state
//
// Use CreateMetricsServer to expose them over HTTP:
//
//	srv := metrics.CreateMetricsServer(":9464")
//	go func() { _ = srv.ListenAndServe() }()
//	defer srv.Close()
package metrics
