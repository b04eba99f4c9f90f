package health

// Status is the backend liveness report.
type Status struct {
	Status  string `json:"status" validate:"required"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// OK reports whether the backend considers itself up.
func (s Status) OK() bool {
	return s.Status == "ok" || s.Status == "UP"
}
