package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"points_checker/internal/domain/entity"
	"points_checker/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// progressPrinter reports every resolved address on w as "[i/n] address status".
type progressPrinter struct {
	w       io.Writer
	wallets []entity.Wallet
	done    int
}

func newProgressPrinter(w io.Writer, wallets []entity.Wallet) *progressPrinter {
	return &progressPrinter{w: w, wallets: wallets}
}

// observe is a port.BatchObserver. The pipeline resolves addresses in input
// order, so the n-th call belongs to the n-th wallet.
func (p *progressPrinter) observe(snap entity.BatchSnapshot) {
	if p.done >= len(p.wallets) {
		return
	}
	address := p.wallets[p.done].Address
	p.done++

	status := "?"
	for _, r := range snap.Results {
		if r.Address == address {
			status = utils.FormatStatus(r.StatusMessage())
			break
		}
	}
	fmt.Fprintf(p.w, "[%d/%d] %s %s\n", p.done, len(p.wallets), address, status)
}

// writeTable prints results as an aligned text table.
func writeTable(w io.Writer, results []entity.FetchResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WALLET\tTOTAL POINTS\tLAST 24H POINTS\tFETCH STATUS")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Address,
			utils.FormatField(r.Field(entity.TotalPointsField)),
			utils.FormatField(r.Field(entity.Last24hPointsField)),
			utils.FormatStatus(r.StatusMessage()),
		)
	}
	return tw.Flush()
}

// jsonReport is the --json output.
type jsonReport struct {
	Results []entity.FetchResult `json:"results"`
	Summary entity.BatchOutcome  `json:"summary"`
}

func writeJSON(w io.Writer, snap entity.BatchSnapshot, outcome entity.BatchOutcome) error {
	results := snap.Results
	if results == nil {
		results = []entity.FetchResult{}
	}
	data, err := json.MarshalIndent(jsonReport{Results: results, Summary: outcome}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeNotice prints the donation notice and disclaimer.
func writeNotice(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, entity.DonationTitle)
	fmt.Fprintf(w, "%s: %s\n", entity.DonationNetwork, entity.DonationAddress)
	fmt.Fprintf(w, "⚠️ %s ⚠️\n", entity.Disclaimer)
}
