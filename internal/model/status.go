package model

// StatusHealthy is the only status a live process reports.
const StatusHealthy = "healthy"

// Status is the response for GET /status.
type Status struct {
	Status string `json:"status"`
}

// ErrorDetail is the body of router level errors (404, 405).
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// AppInfo is the response for GET /.
type AppInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}
