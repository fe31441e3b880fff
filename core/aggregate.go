package core

import (
	"sort"

	"github.com/hpcneuro/longstat/schema"
)

// Atlas names as they appear in the thickness table.
const (
	atlasDesikanKilliany = "desikan_killiany"
	atlasDestrieux       = "destrieux"
	atlasDKT             = "dkt"
)

// BuildAggregate builds the requested cross-sectional table from per-subject
// atlas documents. Subjects, atlases and regions are emitted in sorted order
// so the output is stable regardless of document order on disk.
func BuildAggregate(docs []schema.AtlasDocument, table schema.AggregateTable) schema.AggregateOutput {
	sorted := make([]schema.AtlasDocument, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SubjectID < sorted[j].SubjectID })

	out := schema.AggregateOutput{Table: table}
	switch table {
	case schema.ThicknessTable:
		out.Thickness = buildThicknessRows(sorted)
	case schema.VolumesTable:
		out.Volumes = buildVolumeTable(sorted)
	case schema.SummaryTable:
		out.Summaries, out.SummaryKeys = buildSummaryRows(sorted)
	}
	return out
}

// buildThicknessRows flattens the cortical atlases of every document into
// long-format rows, one per (subject, atlas, region). Regions without a mean
// thickness are skipped since thickness is the row's anchor metric.
func buildThicknessRows(docs []schema.AtlasDocument) []schema.ThicknessRow {
	var rows []schema.ThicknessRow
	for _, doc := range docs {
		atlases := []struct {
			name    string
			regions map[string]schema.AtlasRegionMetrics
		}{
			{atlasDesikanKilliany, doc.DesikanKilliany},
			{atlasDestrieux, doc.Destrieux},
			{atlasDKT, doc.DKT},
		}
		for _, atlas := range atlases {
			for _, region := range sortedKeys(atlas.regions) {
				metrics := atlas.regions[region]
				if metrics.ThicknessAvgMM == nil {
					continue
				}
				rows = append(rows, schema.ThicknessRow{
					SubjectID:      doc.SubjectID,
					Atlas:          atlas.name,
					Region:         region,
					ThicknessMM:    *metrics.ThicknessAvgMM,
					ThicknessStdMM: metrics.ThicknessStdMM,
					SurfaceAreaMM2: metrics.SurfaceAreaMM2,
					GrayVolumeMM3:  metrics.GrayVolumeMM3,
				})
			}
		}
	}
	return rows
}

// buildVolumeTable pivots subcortical volumes into a wide subject-by-structure
// table. Structure columns are the sorted union over all subjects; a subject
// missing a structure holds a nil cell.
func buildVolumeTable(docs []schema.AtlasDocument) *schema.VolumeTable {
	structureSet := make(map[string]struct{})
	for _, doc := range docs {
		for structure, metrics := range doc.Subcortical {
			if metrics.VolumeMM3 != nil {
				structureSet[structure] = struct{}{}
			}
		}
	}

	table := &schema.VolumeTable{
		Structures: sortedKeys(structureSet),
		Rows:       make(map[string]map[string]*float64, len(docs)),
	}
	for _, doc := range docs {
		table.Subjects = append(table.Subjects, doc.SubjectID)
		row := make(map[string]*float64, len(table.Structures))
		for _, structure := range table.Structures {
			if metrics, ok := doc.Subcortical[structure]; ok {
				row[structure] = metrics.VolumeMM3
			}
		}
		table.Rows[doc.SubjectID] = row
	}
	return table
}

// buildSummaryRows collects the per-subject summary metrics, with the column
// order fixed to the sorted union of metric names across the cohort.
func buildSummaryRows(docs []schema.AtlasDocument) ([]schema.SummaryRow, []string) {
	keySet := make(map[string]struct{})
	rows := make([]schema.SummaryRow, 0, len(docs))
	for _, doc := range docs {
		for k := range doc.Summary {
			keySet[k] = struct{}{}
		}
		rows = append(rows, schema.SummaryRow{
			SubjectID: doc.SubjectID,
			Metrics:   doc.Summary,
		})
	}
	return rows, sortedKeys(keySet)
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
