package schema

// QCThresholds holds the cutoffs used to flag image-quality outliers.
// Min* fields flag values below the cutoff, Max* fields flag values above it.
// Defaults follow the MRIQC recommendations; all values can be overridden
// through the config file or the --thresholds-override flag and are passed
// into the QC aggregation explicitly.
type QCThresholds struct {
	MinCNR      float64 `json:"min_cnr"`       // contrast-to-noise ratio
	MinSNRTotal float64 `json:"min_snr_total"` // signal-to-noise ratio
	MinFBER     float64 `json:"min_fber"`      // foreground-background energy ratio
	MaxEFC      float64 `json:"max_efc"`       // entropy focus criterion
	MaxQI2      float64 `json:"max_qi2"`       // quality index 2
	MaxCJV      float64 `json:"max_cjv"`       // coefficient of joint variation
	MaxWM2Max   float64 `json:"max_wm2max"`    // white matter to max intensity ratio
}

// DefaultQCThresholds returns the MRIQC-recommended cutoffs.
func DefaultQCThresholds() QCThresholds {
	return QCThresholds{
		MinCNR:      2.0,
		MinSNRTotal: 10.0,
		MinFBER:     1000.0,
		MaxEFC:      0.7,
		MaxQI2:      0.0,
		MaxCJV:      0.5,
		MaxWM2Max:   0.5,
	}
}

// QCRecord holds the key image-quality metrics extracted from one MRIQC
// document. Metric pointers are nil when the document omits the metric.
type QCRecord struct {
	SubjectID string   `json:"subject_id"`
	Session   string   `json:"session"`
	CNR       *float64 `json:"cnr"`
	SNRTotal  *float64 `json:"snr_total"`
	SNRGM     *float64 `json:"snr_gm"`
	SNRWM     *float64 `json:"snr_wm"`
	SNRCSF    *float64 `json:"snr_csf"`
	FBER      *float64 `json:"fber"`
	EFC       *float64 `json:"efc"`
	QI1       *float64 `json:"qi_1"`
	QI2       *float64 `json:"qi_2"`
	CJV       *float64 `json:"cjv"`
	WM2Max    *float64 `json:"wm2max"`
	INURange  *float64 `json:"inu_range"`
	INUMed    *float64 `json:"inu_med"`
}

// QCResult is one output row of the QC aggregation: the extracted metrics
// plus outlier flags and z-scores computed across the whole cohort.
type QCResult struct {
	QCRecord

	OutlierCNR    bool `json:"outlier_cnr"`
	OutlierSNR    bool `json:"outlier_snr"`
	OutlierFBER   bool `json:"outlier_fber"`
	OutlierEFC    bool `json:"outlier_efc"`
	OutlierQI2    bool `json:"outlier_qi2"`
	OutlierCJV    bool `json:"outlier_cjv"`
	OutlierWM2Max bool `json:"outlier_wm2max"`
	OutlierAny    bool `json:"outlier_any"`
	OutlierCount  int  `json:"outlier_count"`

	// ZScores maps metric name to the cohort z-score; a metric missing from
	// the map had zero variance across the cohort or was absent.
	ZScores map[string]float64 `json:"z_scores"`
}

// FlaggedMetrics lists the names of the metrics that tripped a threshold.
func (r QCResult) FlaggedMetrics() []string {
	var flagged []string
	checks := []struct {
		name string
		hit  bool
	}{
		{"cnr", r.OutlierCNR},
		{"snr", r.OutlierSNR},
		{"fber", r.OutlierFBER},
		{"efc", r.OutlierEFC},
		{"qi2", r.OutlierQI2},
		{"cjv", r.OutlierCJV},
		{"wm2max", r.OutlierWM2Max},
	}
	for _, c := range checks {
		if c.hit {
			flagged = append(flagged, c.name)
		}
	}
	return flagged
}

// QCOutput bundles QC rows with cohort-level counts for the writers.
type QCOutput struct {
	Results  []QCResult `json:"results"`
	Subjects int        `json:"subjects"`
	Outliers int        `json:"outliers"`
}
