package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/poiesic/overlap/ranking"
)

// Text renders a report as terminal tables.
type Text struct {
	Styles Styles
}

// NewText returns a Text renderer with DefaultStyles.
func NewText() Text {
	return Text{Styles: DefaultStyles()}
}

// Render writes the header, the top pairs and the flagged pairs.
func (t Text) Render(w io.Writer, r *Report) error {
	if r == nil {
		return ErrReportRequired
	}
	styles := t.Styles
	if styles.Risk == nil {
		styles = NoColorStyles()
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Document Similarity Report"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", styles.Label.Render("Run:      "), r.RunID)
	fmt.Fprintf(&b, "%s %s\n", styles.Label.Render("Generated:"), r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "%s %d documents, %d pairs\n", styles.Label.Render("Compared: "), r.Documents, r.Pairs)
	if len(r.Strategies) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styles.Label.Render("Composite:"), r.Formula())
	}
	if r.Degraded > 0 {
		b.WriteString(styles.Degraded.Render(fmt.Sprintf("%d pairs degraded: a strategy failed to score them", r.Degraded)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Title.Render(fmt.Sprintf("Top %d pairs", len(r.Top))))
	b.WriteString("\n")
	if len(r.Top) > 0 {
		b.WriteString(t.table(styles, r.Top))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Title.Render(fmt.Sprintf("Pairs at or above %.2f", r.Threshold)))
	b.WriteString("\n")
	if len(r.Flagged) == 0 {
		b.WriteString(r.NoPairsMessage())
		b.WriteString("\n")
	} else {
		b.WriteString(t.table(styles, r.Flagged))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (t Text) table(styles Styles, entries []ranking.Entry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		score := fmt.Sprintf("%.2f", e.Score)
		if e.Degraded {
			score = styles.Degraded.Render(score + "*")
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			e.Key.String(),
			score,
			styles.risk(e.Risk),
		}
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers("#", "Pair", "Score", "Risk").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})
	return tbl.String()
}
