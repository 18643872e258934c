package entities

type HealthCheckEntry struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

type HealthStatus struct {
	Status        string                      `json:"status"`
	Checks        map[string]HealthCheckEntry `json:"checks"`
	TotalDuration string                      `json:"totalDuration"`
	Timestamp     string                      `json:"timestamp"`
}

func (h HealthStatus) IsHealthy() bool {
	return h.Status == "Healthy"
}
