package restapi

import (
	"embed"
	"html/template"
	"strings"

	"points_checker/internal/domain/entity"
	"points_checker/internal/pkg/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

// refreshSeconds is how often the page reloads while a batch is running.
const refreshSeconds = 1

// LoadTemplates parses the embedded HTML templates.
func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// ResultRow is one line of the results table.
type ResultRow struct {
	Address       string
	TotalPoints   string
	Last24hPoints string
	Status        string
	OK            bool
}

// PageView is everything the index template renders.
type PageView struct {
	Input          string
	Checking       string
	Running        bool
	RefreshSeconds int
	Rows           []ResultRow
	ShowModal      bool

	DonationTitle   string
	DonationNetwork string
	DonationAddress string
	Disclaimer      string
}

// NewResultRow formats a result for display. Fields the remote body lacks
// render as utils.MissingValue.
func NewResultRow(r entity.FetchResult) ResultRow {
	problem := r.StatusMessage()
	return ResultRow{
		Address:       r.Address,
		TotalPoints:   utils.FormatField(r.Field(entity.TotalPointsField)),
		Last24hPoints: utils.FormatField(r.Field(entity.Last24hPointsField)),
		Status:        utils.FormatStatus(problem),
		OK:            problem == "",
	}
}

// NewPageView builds the view for a session. snap is nil before the first submission.
func NewPageView(session *entity.Session, snap *entity.BatchSnapshot) PageView {
	view := PageView{
		RefreshSeconds:  refreshSeconds,
		DonationTitle:   entity.DonationTitle,
		DonationNetwork: entity.DonationNetwork,
		DonationAddress: entity.DonationAddress,
		Disclaimer:      entity.Disclaimer,
	}
	if session != nil {
		view.ShowModal = session.ModalVisible()
	}
	if snap == nil {
		return view
	}

	view.Input = strings.Join(snap.Addresses, "\n")
	view.Running = snap.Running()
	view.Checking = strings.Join(snap.Pending, ", ")
	view.Rows = make([]ResultRow, 0, len(snap.Results))
	for _, r := range snap.Results {
		view.Rows = append(view.Rows, NewResultRow(r))
	}
	return view
}
