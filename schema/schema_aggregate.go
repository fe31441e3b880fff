package schema

// AtlasRegionMetrics holds the per-region metrics found in an atlas document.
// Pointers are nil for metrics the extraction did not produce.
type AtlasRegionMetrics struct {
	ThicknessAvgMM  *float64 `json:"thickness_avg_mm"`
	ThicknessStdMM  *float64 `json:"thickness_std_mm"`
	SurfaceAreaMM2  *float64 `json:"surface_area_mm2"`
	GrayVolumeMM3   *float64 `json:"gray_volume_mm3"`
	VolumeMM3       *float64 `json:"volume_mm3"`
	NumVertices     *float64 `json:"num_vertices"`
	MeanCurvature   *float64 `json:"mean_curvature"`
	FoldingIndex    *float64 `json:"folding_index"`
	CurvatureIndex  *float64 `json:"curvature_index"`
	IntegRectGaussC *float64 `json:"integ_rect_gauss_curv"`
}

// AtlasDocument is one per-subject atlas JSON document as written by the
// extraction stage of the pipeline.
type AtlasDocument struct {
	SubjectID       string                        `json:"subject_id"`
	DesikanKilliany map[string]AtlasRegionMetrics `json:"desikan_killiany"`
	Destrieux       map[string]AtlasRegionMetrics `json:"destrieux"`
	DKT             map[string]AtlasRegionMetrics `json:"dkt"`
	Subcortical     map[string]AtlasRegionMetrics `json:"subcortical"`
	Summary         map[string]float64            `json:"summary"`
}

// ThicknessRow is one row of the cross-sectional cortical thickness table.
type ThicknessRow struct {
	SubjectID      string   `json:"subject_id"`
	Atlas          string   `json:"atlas"`
	Region         string   `json:"region"`
	ThicknessMM    float64  `json:"thickness_mm"`
	ThicknessStdMM *float64 `json:"thickness_std_mm"`
	SurfaceAreaMM2 *float64 `json:"surface_area_mm2"`
	GrayVolumeMM3  *float64 `json:"gray_volume_mm3"`
}

// VolumeTable is the wide subject-by-structure subcortical volume table.
// Structures holds the column order; Rows maps subject to structure volumes.
type VolumeTable struct {
	Structures []string                       `json:"structures"`
	Subjects   []string                       `json:"subjects"`
	Rows       map[string]map[string]*float64 `json:"rows"`
}

// SummaryRow is one row of the per-subject summary statistics table.
// Metrics holds the summary key/value pairs; Keys fixes the column order.
type SummaryRow struct {
	SubjectID string             `json:"subject_id"`
	Metrics   map[string]float64 `json:"metrics"`
}

// AggregateOutput bundles all cross-sectional tables for the writers.
// Only the table selected by the config is populated.
type AggregateOutput struct {
	Table     AggregateTable `json:"table"`
	Thickness []ThicknessRow `json:"thickness,omitempty"`
	Volumes   *VolumeTable   `json:"volumes,omitempty"`
	Summaries []SummaryRow   `json:"summaries,omitempty"`
	// SummaryKeys is the union of summary metric names in sorted order,
	// shared by every summary row so columns stay stable across runs.
	SummaryKeys []string `json:"summary_keys,omitempty"`
}
