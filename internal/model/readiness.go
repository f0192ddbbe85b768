package model

// Readiness states.
const (
	ReadyOK       = "ok"
	ReadyDegraded = "degraded"

	CheckOK   = "ok"
	CheckFail = "fail"
)

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ReadinessReport is the response for GET /ready.
type ReadinessReport struct {
	Status string        `json:"status"`
	Checks []CheckResult `json:"checks"`
}
