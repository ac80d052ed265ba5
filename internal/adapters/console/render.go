package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/scoring"
	"github.com/okian/nsl/internal/domain/squad"
)

func (c *Console) writeSquad(sq *squad.Squad) {
	WriteSquad(c.out, sq)
}

func (c *Console) writeRanking(cs []scoring.Candidate) {
	WriteRanking(c.out, cs)
}

// WriteSquad prints sq grouped by position in menu order.
func WriteSquad(out io.Writer, sq *squad.Squad) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POSITION\tPLAYER NAME\tQUALITIES")
	for _, p := range model.Positions {
		for _, sl := range sq.ByPosition(p) {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p, sl.PlayerName, sl.Qualities)
		}
	}
	_ = w.Flush()
}

// WriteRanking prints ranked candidates best first.
func WriteRanking(out io.Writer, cs []scoring.Candidate) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tTEAM\tATTRIBUTES\tSIMILARITY")
	for _, c := range cs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.3f\n", c.Rank, c.Name, c.Team, c.Attributes, c.Similarity)
	}
	_ = w.Flush()
}
