package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSubject(t *testing.T) {
	tests := []struct {
		name        string
		rawID       string
		wantBase    string
		wantLabel   string
		wantOrdinal *int
	}{
		{
			name:        "BIDS session suffix",
			rawID:       "sub-001_ses-02",
			wantBase:    "sub-001",
			wantLabel:   "ses-02",
			wantOrdinal: intp(2),
		},
		{
			name:        "plain timepoint suffix",
			rawID:       "subject42_tp3",
			wantBase:    "subject42",
			wantLabel:   "tp3",
			wantOrdinal: intp(3),
		},
		{
			name:        "no marker has nil ordinal",
			rawID:       "sub-099",
			wantBase:    "sub-099",
			wantLabel:   "",
			wantOrdinal: nil,
		},
		{
			name:        "session marker beats timepoint marker",
			rawID:       "sub-001_ses-02_tp9",
			wantBase:    "sub-001",
			wantLabel:   "ses-02_tp9",
			wantOrdinal: intp(29),
		},
		{
			name:        "first session marker wins",
			rawID:       "sub-001_ses-01_ses-02",
			wantBase:    "sub-001",
			wantLabel:   "ses-01_ses-02",
			wantOrdinal: intp(102),
		},
		{
			name:        "marker without digits has nil ordinal",
			rawID:       "sub-001_ses-baseline",
			wantBase:    "sub-001",
			wantLabel:   "ses-baseline",
			wantOrdinal: nil,
		},
		{
			name:        "leading zeros parse numerically",
			rawID:       "sub-001_ses-0010",
			wantBase:    "sub-001",
			wantLabel:   "ses-0010",
			wantOrdinal: intp(10),
		},
		{
			name:        "non-numeric timepoint remainder has nil ordinal",
			rawID:       "sub-001_tpv2-a1",
			wantBase:    "sub-001",
			wantLabel:   "tpv2-a1",
			wantOrdinal: nil,
		},
		{
			name:        "timepoint remainder parses as a whole integer",
			rawID:       "sub-001_tp03",
			wantBase:    "sub-001",
			wantLabel:   "tp03",
			wantOrdinal: intp(3),
		},
		{
			name:        "session digits interleaved with letters concatenate",
			rawID:       "sub-001_ses-v2-a1",
			wantBase:    "sub-001",
			wantLabel:   "ses-v2-a1",
			wantOrdinal: intp(21),
		},
		{
			name:        "empty id has nil ordinal",
			rawID:       "",
			wantBase:    "",
			wantLabel:   "",
			wantOrdinal: nil,
		},
		{
			name:        "marker at start leaves empty base",
			rawID:       "_ses-03",
			wantBase:    "",
			wantLabel:   "ses-03",
			wantOrdinal: intp(3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ResolveSubject(tt.rawID)
			assert.Equal(t, tt.wantBase, id.BaseSubject)
			assert.Equal(t, tt.wantLabel, id.TimepointLabel)
			if tt.wantOrdinal == nil {
				assert.Nil(t, id.TimepointOrdinal)
			} else {
				require.NotNil(t, id.TimepointOrdinal)
				assert.Equal(t, *tt.wantOrdinal, *id.TimepointOrdinal)
			}
		})
	}
}

func TestResolveSubjectDeterministic(t *testing.T) {
	// Same input must resolve identically across calls.
	first := ResolveSubject("sub-777_ses-12")
	second := ResolveSubject("sub-777_ses-12")
	assert.Equal(t, first, second)
}

// FuzzResolveSubject fuzzes the identity resolver with arbitrary subject IDs.
func FuzzResolveSubject(f *testing.F) {
	seeds := []string{
		"sub-001_ses-02",
		"subject42_tp3",
		"sub-001",
		"_ses-",
		"_tp",
		"sub_ses-99999999999999999999",
		"",
		"sub-001_ses-02_tp3",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, rawID string) {
		id := ResolveSubject(rawID)

		// Base plus label must never grow beyond the original id plus the
		// re-attached marker prefix.
		if len(id.BaseSubject) > len(rawID) {
			t.Errorf("base %q longer than input %q", id.BaseSubject, rawID)
		}

		// Only a marker can produce an ordinal.
		hasMarker := strings.Contains(rawID, "_ses-") || strings.Contains(rawID, "_tp")
		if id.TimepointOrdinal != nil && !hasMarker {
			t.Errorf("ordinal %d without marker for %q", *id.TimepointOrdinal, rawID)
		}

		// A session ordinal is digit-concatenated, so never negative.
		if id.TimepointOrdinal != nil && strings.Contains(rawID, "_ses-") && *id.TimepointOrdinal < 0 {
			t.Errorf("negative session ordinal %d for %q", *id.TimepointOrdinal, rawID)
		}
	})
}

// intp is a test shorthand for building ordinal pointers.
func intp(v int) *int { return &v }
