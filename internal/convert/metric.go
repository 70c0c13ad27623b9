package convert

import (
	"encoding/json"

	"github.com/Talgatov/MentorWay/internal/models"
	"github.com/Talgatov/MentorWay/pkg/logger"
)

// DecodeMetrics decodes the stringified metric entries of a way. A broken
// entry is skipped and logged; it must never abort decoding of the rest.
func DecodeMetrics(stringified []string) []models.Metric {
	metrics := make([]models.Metric, 0, len(stringified))
	for _, entry := range stringified {
		var metric models.Metric
		if err := json.Unmarshal([]byte(entry), &metric); err != nil {
			logger.Log.WithError(err).Warn("Skipping undecodable metric entry")
			continue
		}
		metrics = append(metrics, metric)
	}
	return metrics
}

// EncodeMetrics serializes metrics back into stringified form.
func EncodeMetrics(metrics []models.Metric) []string {
	stringified := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		bytes, err := json.Marshal(metric)
		if err != nil {
			logger.Log.WithError(err).Warn("Skipping unencodable metric")
			continue
		}
		stringified = append(stringified, string(bytes))
	}
	return stringified
}
