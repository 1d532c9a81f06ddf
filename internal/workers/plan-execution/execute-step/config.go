// internal/workers/plan-execution/execute-step/config.go
package executestep

import "time"

type Config struct {
	POIIndex       string
	RoutingBaseURL string
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		POIIndex: "pois",
		Timeout:  30 * time.Second,
	}
}
