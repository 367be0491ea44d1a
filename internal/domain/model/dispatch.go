package model

// DeliveryResult is one sink adapter's report for a single event.
type DeliveryResult struct {
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// OverallStatus is the combined outcome across every requested destination.
type OverallStatus string

const (
	// OverallSuccess means every adapter reported delivered.
	OverallSuccess OverallStatus = "success"
	// OverallPartial means some adapters delivered and some failed.
	OverallPartial OverallStatus = "partial"
	// OverallError means validation or resolution failed before dispatch.
	OverallError OverallStatus = "error"
)

// DispatchOutcome aggregates per-destination delivery results for one event.
// Err is set only when Overall is OverallError.
type DispatchOutcome struct {
	Overall        OverallStatus
	PerDestination map[Destination]DeliveryResult
	Err            error
}

// FailedDestinations lists destinations whose delivery failed, in dispatch order.
func (o DispatchOutcome) FailedDestinations() []Destination {
	var failed []Destination
	for _, d := range DispatchOrder() {
		if res, ok := o.PerDestination[d]; ok && !res.Delivered {
			failed = append(failed, d)
		}
	}
	return failed
}
