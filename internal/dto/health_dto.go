// FILE: internal/dto/health_dto.go
package dto

import "time"

type HealthDatabase struct {
	Ok        bool   `json:"ok"`
	LatencyMs int64  `json:"latencyMs,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthResponse struct {
	Ok            bool           `json:"ok"`
	Env           string         `json:"env"`
	Db            HealthDatabase `json:"db"`
	Timestamp     time.Time      `json:"timestamp"`
	UptimeSeconds int64          `json:"uptimeSeconds"`
}
