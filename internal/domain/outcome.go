package domain

// SequenceID identifies one submitted search. IDs start at 1 and only grow.
type SequenceID uint64

// ErrorKind classifies a failed search for the presentation layer.
type ErrorKind int

const (
	// Unavailable means the fare service could not be reached or failed internally.
	Unavailable ErrorKind = iota + 1

	// Timeout means the fare service did not answer within the configured bound.
	Timeout

	// Rejected means the fare service refused the query; see Failure.Reason.
	Rejected
)

// String returns a stable, lowercase name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case Timeout:
		return "timeout"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Message returns user-facing text for the kind.
func (k ErrorKind) Message() string {
	switch k {
	case Unavailable:
		return "Fare service is unavailable, try again later"
	case Timeout:
		return "Fare service took too long to answer"
	case Rejected:
		return "Fare service rejected the search"
	default:
		return "Search failed"
	}
}

// Failure is the error arm of a SearchOutcome.
type Failure struct {
	Kind   ErrorKind
	Reason string
}

// SearchOutcome is the single result of a submitted search.
// Exactly one of Fare and Failure is non-nil.
type SearchOutcome struct {
	Fare    *Fare
	Failure *Failure
}

// Success builds a successful outcome.
func Success(fare Fare) SearchOutcome {
	return SearchOutcome{Fare: &fare}
}

// Failed builds a failed outcome.
func Failed(kind ErrorKind, reason string) SearchOutcome {
	return SearchOutcome{Failure: &Failure{Kind: kind, Reason: reason}}
}

// OK reports whether the outcome carries a fare.
func (o SearchOutcome) OK() bool {
	return o.Fare != nil
}

// Describe renders the outcome as a single line for display.
func (o SearchOutcome) Describe() string {
	if o.Fare != nil {
		return o.Fare.Display()
	}
	if o.Failure == nil {
		return ""
	}
	if o.Failure.Kind == Rejected && o.Failure.Reason != "" {
		return o.Failure.Kind.Message() + ": " + o.Failure.Reason
	}
	return o.Failure.Kind.Message()
}
