package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"intake-reconciler/core/match"
)

// CSVHeader is the first row of the CSV artifact.
var CSVHeader = []string{"primary_id", "name", "email", "timestamp", "matched", "tiers", "matched_secondary_ids"}

// listSeparator joins multi-valued CSV cells.
const listSeparator = "|"

// Document is the JSON artifact layout.
type Document struct {
	Counts  match.Summary `json:"counts"`
	Results []Result      `json:"results"`
}

// Result is one primary record in the JSON artifact.
type Result struct {
	PrimaryID  string            `json:"primary_id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Timestamp  *time.Time        `json:"timestamp"`
	Matched    bool              `json:"matched"`
	Tiers      []match.Tier      `json:"tiers"`
	Matches    []Match           `json:"matches"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Match is the trimmed view of a matched secondary record.
type Match struct {
	ID        string     `json:"id"`
	StartDate *time.Time `json:"start_date"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
}

// NewDocument converts an engine report to the JSON artifact layout.
func NewDocument(r *match.Report) Document {
	doc := Document{Counts: r.Summary, Results: make([]Result, 0, len(r.Results))}
	for _, res := range r.Results {
		out := Result{
			PrimaryID:  res.PrimaryID,
			Name:       res.Name,
			Email:      res.Email,
			Phone:      res.Phone,
			Timestamp:  optionalTime(res.Timestamp),
			Matched:    res.Matched,
			Tiers:      res.Tiers,
			Matches:    make([]Match, 0, len(res.Matches)),
			Attributes: res.Attributes,
		}
		if out.Tiers == nil {
			out.Tiers = []match.Tier{}
		}
		for _, m := range res.Matches {
			out.Matches = append(out.Matches, Match{
				ID:        m.ID,
				StartDate: optionalTime(m.StartTime),
				Email:     m.Email,
				Phone:     m.Phone,
			})
		}
		doc.Results = append(doc.Results, out)
	}
	return doc
}

// WriteJSON writes the indented JSON artifact.
func WriteJSON(w io.Writer, r *match.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(r)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteCSV writes one row per primary record.
func WriteCSV(w io.Writer, r *match.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, res := range r.Results {
		tiers := make([]string, 0, len(res.Tiers))
		for _, t := range res.Tiers {
			tiers = append(tiers, t.String())
		}

		ts := ""
		if !res.Timestamp.IsZero() {
			ts = res.Timestamp.UTC().Format(time.RFC3339)
		}

		row := []string{
			res.PrimaryID,
			res.Name,
			res.Email,
			ts,
			fmt.Sprintf("%t", res.Matched),
			strings.Join(tiers, listSeparator),
			strings.Join(res.MatchedIDs(), listSeparator),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
