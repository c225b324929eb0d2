package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"schemac/internal/diag"
	"schemac/internal/source"
)

const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
const sarifVersion = "2.1.0"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name,omitempty"`
	ShortDescription  sarifMultiformatMessage `json:"shortDescription"`
	DefaultConfig     sarifReportingConfig    `json:"defaultConfiguration,omitempty"`
	Properties        map[string]any          `json:"properties,omitempty"`
}

type sarifReportingConfig struct {
	Level string `json:"level"`
}

type sarifMultiformatMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMultiformatMessage `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
	RelatedLocations []sarifRelatedLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifRelatedLocation struct {
	PhysicalLocation sarifPhysicalLocation   `json:"physicalLocation"`
	Message          sarifMultiformatMessage `json:"message"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifLocationOf(span source.Span, fs *source.FileSet) sarifLocation {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	return sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{URI: f.FormatPath("relative", fs.BaseDir())},
			Region: sarifRegion{
				StartLine:   start.Line,
				StartColumn: start.Col,
				EndLine:     end.Line,
				EndColumn:   end.Col,
			},
		},
	}
}

// Sarif formats diagnostics as a SARIF 2.1.0 log with one run, one rule per
// distinct diagnostic code that fired, and one result per diagnostic.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) {
	if bag == nil || fs == nil {
		return
	}

	items := bag.Items()
	rulesSeen := make(map[string]bool)
	var rules []sarifRule
	results := make([]sarifResult, 0, len(items))

	for _, d := range items {
		ruleID := d.Code.ID()
		if !rulesSeen[ruleID] {
			rulesSeen[ruleID] = true
			rules = append(rules, sarifRule{
				ID:               ruleID,
				Name:             ruleID,
				ShortDescription: sarifMultiformatMessage{Text: d.Code.Title()},
				DefaultConfig:    sarifReportingConfig{Level: sarifLevel(d.Severity)},
			})
		}

		result := sarifResult{
			RuleID:    ruleID,
			Level:     sarifLevel(d.Severity),
			Message:   sarifMultiformatMessage{Text: d.Message},
			Locations: []sarifLocation{sarifLocationOf(d.Primary, fs)},
		}
		for _, note := range d.Notes {
			loc := sarifLocationOf(note.Span, fs)
			result.RelatedLocations = append(result.RelatedLocations, sarifRelatedLocation{
				PhysicalLocation: loc.PhysicalLocation,
				Message:          sarifMultiformatMessage{Text: note.Msg},
			})
		}
		results = append(results, result)
	}

	sort.SliceStable(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	log := sarifLog{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{Driver: sarifDriver{
					Name:           meta.ToolName,
					Version:        meta.ToolVersion,
					InformationURI: "",
					Rules:          rules,
				}},
				Results: results,
			},
		},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(log)
}
