package requests

// SimulateRequest carries the query parameters of one simulation request.
// Count is the number of processes to sample and must be positive; Quantum
// only applies to RR and falls back to the configured default when absent or
// non-positive.
type SimulateRequest struct {
	Count   int `query:"count"`
	Quantum int `query:"quantum"`
}
