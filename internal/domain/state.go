package domain

// Phase is the lifecycle state of an asynchronous request flow.
type Phase string

// Request lifecycle phases.
const (
	// PhaseIdle means no request has been issued yet.
	PhaseIdle Phase = "idle"

	// PhaseLoading means a request is in flight.
	PhaseLoading Phase = "loading"

	// PhaseSucceeded means the last request completed successfully.
	PhaseSucceeded Phase = "succeeded"

	// PhaseFailed means the last request failed; see RequestState.Message.
	PhaseFailed Phase = "failed"
)

// RequestState tracks the lifecycle of a single asynchronous flow
// (token acquisition or search) together with its failure message.
// Callers must check the phase before reading result data.
type RequestState struct {
	// Phase is the current lifecycle phase.
	Phase Phase `json:"phase"`

	// Message is the human-readable failure message, set only when failed.
	Message string `json:"message,omitempty"`
}

// Loading reports whether a request is currently in flight.
func (s RequestState) Loading() bool {
	return s.Phase == PhaseLoading
}

// Succeeded reports whether the last request completed successfully.
func (s RequestState) Succeeded() bool {
	return s.Phase == PhaseSucceeded
}

// Failed reports whether the last request failed.
func (s RequestState) Failed() bool {
	return s.Phase == PhaseFailed
}
