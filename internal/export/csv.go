// Package export serializes the final lead set to CSV and XLSX.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// utf8BOM marks the CSV as UTF-8 so spreadsheet imports keep Turkish
// characters intact.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// leadColumns defines the ordered output columns, shared by CSV and XLSX.
var leadColumns = []string{
	"name",
	"district",
	"address",
	"phone",
	"website",
	"site_type",
	"rating",
	"reviews",
	"google_maps_url",
	"place_id",
	"sector",
	"types",
	"whatsapp",
}

func leadRow(lead model.Lead) []string {
	rating := ""
	if lead.Rating > 0 {
		rating = strconv.FormatFloat(lead.Rating, 'f', 1, 64)
	}
	return []string{
		lead.Name,
		lead.District,
		lead.Address,
		lead.Phone,
		lead.Website,
		string(lead.SiteType),
		rating,
		strconv.Itoa(lead.ReviewCount),
		lead.MapsURL,
		lead.PlaceID,
		lead.Sector,
		strings.Join(lead.Types, ", "),
		lead.MessagingLink,
	}
}

// WriteCSV writes the leads as UTF-8 CSV with a byte-order mark.
func WriteCSV(w io.Writer, leads []model.Lead) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return eris.Wrap(err, "export: write bom")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(leadColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, lead := range leads {
		if err := cw.Write(leadRow(lead)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return nil
}

// WriteCSVFile writes the leads as CSV to path.
func WriteCSVFile(path string, leads []model.Lead) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	defer f.Close() //nolint:errcheck

	return WriteCSV(f, leads)
}
