package metrics

import "fmt"

// DuplicateMetricError indicates that a metric name is already registered
// with a different schema (kind, label names, or buckets). Registration with
// an identical schema is idempotent and does not produce this error.
type DuplicateMetricError struct {
	Name string
}

func (e *DuplicateMetricError) Error() string {
	return fmt.Sprintf("metric %q already registered with a different schema", e.Name)
}

// UnknownMetricError indicates an observation against a metric that was
// never registered. This is a programmer error: instruments must be declared
// at startup, not at observation time.
type UnknownMetricError struct {
	Name string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("metric %q is not registered", e.Name)
}

// LabelCardinalityError indicates an observation whose label value count
// does not match the instrument's declared label names.
type LabelCardinalityError struct {
	Name string
	Want int
	Got  int
}

func (e *LabelCardinalityError) Error() string {
	return fmt.Sprintf("metric %q expects %d label values, got %d", e.Name, e.Want, e.Got)
}
