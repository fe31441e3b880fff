package core

import (
	"strconv"
	"strings"

	"github.com/hpcneuro/longstat/schema"
)

// Timepoint markers recognized in raw subject identifiers.
const (
	sessionMarker   = "_ses-"
	timepointMarker = "_tp"
)

// ResolveSubject parses a raw subject identifier into a stable base subject
// plus timepoint information. Two naming conventions are recognized:
//
//   - BIDS session suffixes: "sub-001_ses-02" -> base "sub-001", label
//     "ses-02", ordinal 2.
//   - Plain timepoint suffixes: "subject42_tp3" -> base "subject42", label
//     "tp3", ordinal 3.
//
// The first marker found wins, session before timepoint, splitting on the
// first occurrence. Session ordinals concatenate the digit characters of the
// remainder ("02" -> 2, "02_tp9" -> 29); timepoint ordinals require the whole
// remainder to parse as an integer. Identifiers with neither marker, or whose
// marker yields no ordinal, keep a nil ordinal and are excluded from trend
// fits and deltas downstream.
func ResolveSubject(rawID string) schema.SubjectIdentity {
	if base, rest, found := strings.Cut(rawID, sessionMarker); found {
		return schema.SubjectIdentity{
			BaseSubject:      base,
			TimepointLabel:   "ses-" + rest,
			TimepointOrdinal: digitsToOrdinal(rest),
		}
	}

	if base, rest, found := strings.Cut(rawID, timepointMarker); found {
		id := schema.SubjectIdentity{
			BaseSubject:    base,
			TimepointLabel: "tp" + rest,
		}
		if n, err := strconv.Atoi(rest); err == nil {
			id.TimepointOrdinal = schema.IntPtr(n)
		}
		return id
	}

	return schema.SubjectIdentity{BaseSubject: rawID}
}

// digitsToOrdinal extracts all decimal digits from s, in order, and parses
// them as one integer. "02" -> 2, "v2-a1" -> 21, no digits -> nil.
func digitsToOrdinal(s string) *int {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(sb.String())
	if err != nil {
		// Digit runs too long for an int do not order anything meaningfully.
		return nil
	}
	return schema.IntPtr(n)
}
