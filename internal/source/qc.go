package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// mriqcDoc mirrors the subset of an MRIQC output document that the QC
// aggregation consumes. Metric keys follow the MRIQC JSON schema.
type mriqcDoc struct {
	BidsMeta struct {
		SubjectID string `json:"subject_id"`
		SessionID string `json:"session_id"`
	} `json:"bids_meta"`

	CNR      *float64 `json:"cnr"`
	SNRTotal *float64 `json:"snr_total"`
	SNRGM    *float64 `json:"snr_gm"`
	SNRWM    *float64 `json:"snr_wm"`
	SNRCSF   *float64 `json:"snr_csf"`
	FBER     *float64 `json:"fber"`
	EFC      *float64 `json:"efc"`
	QI1      *float64 `json:"qi_1"`
	QI2      *float64 `json:"qi_2"`
	CJV      *float64 `json:"cjv"`
	WM2Max   *float64 `json:"wm2max"`
	INURange *float64 `json:"inu_range"`
	INUMed   *float64 `json:"inu_med"`
}

// DirQCSource reads MRIQC JSON documents, one per scan, from a directory,
// or a JSON array of records from a single file.
type DirQCSource struct {
	cfg *contract.Config
}

// NewQCSource creates a QC source for the configured input.
func NewQCSource(cfg *contract.Config) contract.QCSource {
	return &DirQCSource{cfg: cfg}
}

// LoadQCRecords reads every QC record from the input path.
func (s *DirQCSource) LoadQCRecords(ctx context.Context) ([]schema.QCRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if isDir(s.cfg) {
		return loadQCDir(s.cfg.InputPath)
	}
	return loadQCFile(s.cfg.InputPath)
}

// loadQCDir reads one MRIQC document per JSON file in the directory.
func loadQCDir(dir string) ([]schema.QCRecord, error) {
	files, err := listJSONFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list QC documents in %s: %w", dir, err)
	}
	records := make([]schema.QCRecord, 0, len(files))
	for _, path := range files {
		rec, err := loadMRIQCDoc(path)
		if err != nil {
			// One unreadable scan document does not sink the cohort.
			contract.LogWarn("Skipping unreadable QC document", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// loadQCFile reads a JSON array of QC records from one file.
func loadQCFile(path string) ([]schema.QCRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var records []schema.QCRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse QC records from %s: %w", path, err)
	}
	return records, nil
}

// loadMRIQCDoc reads one MRIQC document, falling back to the filename for
// subject and session when the document carries no BIDS metadata.
func loadMRIQCDoc(path string) (schema.QCRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.QCRecord{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc mriqcDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return schema.QCRecord{}, fmt.Errorf("failed to parse MRIQC document %s: %w", path, err)
	}

	subject, session := doc.BidsMeta.SubjectID, doc.BidsMeta.SessionID
	if subject == "" {
		subject, session = subjectFromFilename(path)
	}

	return schema.QCRecord{
		SubjectID: subject,
		Session:   session,
		CNR:       doc.CNR,
		SNRTotal:  doc.SNRTotal,
		SNRGM:     doc.SNRGM,
		SNRWM:     doc.SNRWM,
		SNRCSF:    doc.SNRCSF,
		FBER:      doc.FBER,
		EFC:       doc.EFC,
		QI1:       doc.QI1,
		QI2:       doc.QI2,
		CJV:       doc.CJV,
		WM2Max:    doc.WM2Max,
		INURange:  doc.INURange,
		INUMed:    doc.INUMed,
	}, nil
}

// subjectFromFilename derives subject and session from a BIDS-style file
// name like "sub-001_ses-02_T1w.json". Modality suffixes are dropped.
func subjectFromFilename(path string) (subject, session string) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(stem, "_")

	subject = parts[0]
	for _, p := range parts[1:] {
		if strings.HasPrefix(p, "ses-") {
			session = p
			break
		}
	}
	return subject, session
}
