package seo

import (
	"finitefield.org/hanko-seo/internal/platform/config"
	"finitefield.org/hanko-seo/internal/platform/textutil"
)

// LengthStatus grades a text field against its recommended band.
type LengthStatus string

const (
	LengthEmpty   LengthStatus = "empty"
	LengthShort   LengthStatus = "short"
	LengthOptimal LengthStatus = "optimal"
	LengthLong    LengthStatus = "long"
	LengthOver    LengthStatus = "over"
)

// LengthReport is the analysis of one field.
type LengthReport struct {
	Length int          `json:"length"`
	Status LengthStatus `json:"status"`
	Limit  int          `json:"limit"`
}

// Analysis covers the fields editors are given length guidance for.
type Analysis struct {
	Title       LengthReport `json:"title"`
	Description LengthReport `json:"description"`
}

// AnalyzeLength grades value in runes. Long means past the optimal band but
// within the hard maximum; over means past the maximum.
func AnalyzeLength(value string, limit config.LengthLimit) LengthReport {
	n := textutil.Length(textutil.CollapseSpace(value))
	report := LengthReport{Length: n, Limit: limit.Max}
	switch {
	case n == 0:
		report.Status = LengthEmpty
	case n < limit.OptimalMin:
		report.Status = LengthShort
	case n <= limit.OptimalMax:
		report.Status = LengthOptimal
	case n <= limit.Max:
		report.Status = LengthLong
	default:
		report.Status = LengthOver
	}
	return report
}

// Analyze grades the resolved title and description.
func Analyze(meta Meta, limits config.LimitsConfig) Analysis {
	return Analysis{
		Title:       AnalyzeLength(meta.Title, limits.Title),
		Description: AnalyzeLength(meta.Description, limits.Description),
	}
}
