// Package export writes users and regions as CSV files for offline analysis.
package export

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/region-service/internal/model"
)

// userColumns defines the ordered user CSV output columns.
var userColumns = []string{
	"ID",
	"Name",
	"Email",
	"Address",
	"Longitude",
	"Latitude",
	"Regions",
	"Created At",
	"Updated At",
}

// regionColumns defines the ordered region CSV output columns.
var regionColumns = []string{
	"ID",
	"Name",
	"Longitude",
	"Latitude",
	"Owner ID",
	"Owner Name",
	"Created At",
	"Updated At",
}

// UserLister supplies the users to export.
type UserLister interface {
	List(ctx context.Context) ([]model.User, error)
}

// RegionLister supplies the regions to export.
type RegionLister interface {
	List(ctx context.Context) ([]model.Region, error)
}

// ExportUsersCSV writes all users to a CSV file.
func ExportUsersCSV(ctx context.Context, users UserLister, outputPath string) error {
	list, err := users.List(ctx)
	if err != nil {
		return eris.Wrap(err, "export users: list")
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export users: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(userColumns); err != nil {
		return eris.Wrap(err, "export users: write header")
	}
	for i := range list {
		if err := w.Write(buildUserRow(&list[i])); err != nil {
			return eris.Wrap(err, "export users: write row")
		}
	}
	return nil
}

// ExportRegionsCSV writes all regions to a CSV file.
func ExportRegionsCSV(ctx context.Context, regions RegionLister, outputPath string) error {
	list, err := regions.List(ctx)
	if err != nil {
		return eris.Wrap(err, "export regions: list")
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export regions: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(regionColumns); err != nil {
		return eris.Wrap(err, "export regions: write header")
	}
	for i := range list {
		if err := w.Write(buildRegionRow(&list[i])); err != nil {
			return eris.Wrap(err, "export regions: write row")
		}
	}
	return nil
}

// buildUserRow maps a User to a CSV row.
func buildUserRow(u *model.User) []string {
	var lng, lat string
	if u.Coordinates != nil {
		lng = formatCoord(u.Coordinates.Longitude())
		lat = formatCoord(u.Coordinates.Latitude())
	}

	return []string{
		u.ID,
		u.Name,
		u.Email,
		u.Address,
		lng,
		lat,
		strings.Join(u.Regions, ";"),
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	}
}

// buildRegionRow maps a Region to a CSV row.
func buildRegionRow(r *model.Region) []string {
	var ownerName string
	if r.User != nil {
		ownerName = r.User.Name
	}

	return []string{
		r.ID,
		r.Name,
		formatCoord(r.Coordinates.Longitude()),
		formatCoord(r.Coordinates.Latitude()),
		r.UserID,
		ownerName,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
