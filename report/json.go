package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/poiesic/overlap/ranking"
)

// JSON renders a report as an indented JSON document.
type JSON struct{}

type entryJSON struct {
	Rank     int     `json:"rank"`
	First    string  `json:"first"`
	Second   string  `json:"second"`
	Pair     string  `json:"pair"`
	Score    float64 `json:"score"`
	Risk     string  `json:"risk"`
	Degraded bool    `json:"degraded,omitempty"`
}

type reportJSON struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Threshold   float64        `json:"threshold"`
	TopK        int            `json:"top_k"`
	Documents   int            `json:"documents"`
	Pairs       int            `json:"pairs"`
	Degraded    int            `json:"degraded"`
	Strategies  []StrategyInfo `json:"strategies"`
	Top         []entryJSON    `json:"top"`
	Flagged     []entryJSON    `json:"flagged"`
	Message     string         `json:"message,omitempty"`
}

// Render writes r as JSON followed by a newline.
func (JSON) Render(w io.Writer, r *Report) error {
	if r == nil {
		return ErrReportRequired
	}

	doc := reportJSON{
		RunID:       r.RunID.String(),
		GeneratedAt: r.GeneratedAt,
		Threshold:   r.Threshold,
		TopK:        r.TopK,
		Documents:   r.Documents,
		Pairs:       r.Pairs,
		Degraded:    r.Degraded,
		Strategies:  r.Strategies,
		Top:         entriesJSON(r.Top),
		Flagged:     entriesJSON(r.Flagged),
	}
	if doc.Strategies == nil {
		doc.Strategies = []StrategyInfo{}
	}
	if len(r.Flagged) == 0 {
		doc.Message = r.NoPairsMessage()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func entriesJSON(entries []ranking.Entry) []entryJSON {
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = entryJSON{
			Rank:     i + 1,
			First:    string(e.Key.First),
			Second:   string(e.Key.Second),
			Pair:     e.Key.String(),
			Score:    e.Score,
			Risk:     string(e.Risk),
			Degraded: e.Degraded,
		}
	}
	return out
}
