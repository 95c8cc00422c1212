// Package metrics provides the Prometheus metric registry for the application.
//
// Unlike the prometheus default registry, all state here is explicitly
// constructed and owned: the Registry instance is created in main and passed
// to the HTTP instrumentation middleware and the system sampler. Instruments
// are registered once at startup with a fixed label schema; observing an
// unregistered metric or using the wrong label arity is rejected, which keeps
// label cardinality bounded by construction instead of caller discipline.
package metrics
