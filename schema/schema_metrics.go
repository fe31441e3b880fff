package schema

// MetricColumn is the formal definition of one emitted statistic column.
type MetricColumn struct {
	Name       string `json:"name"`
	Mode       string `json:"mode"`
	Definition string `json:"definition"`
}

// QCMetricDefinition is the formal definition of one image-quality metric,
// including the outlier direction and the active threshold.
type QCMetricDefinition struct {
	Name      string  `json:"name"`
	Direction string  `json:"direction"`
	Threshold float64 `json:"threshold"`
	Meaning   string  `json:"meaning"`
}

// MetricsRenderModel is the complete model behind the metrics display.
type MetricsRenderModel struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Columns     []MetricColumn       `json:"columns"`
	QCMetrics   []QCMetricDefinition `json:"qc_metrics"`
}
