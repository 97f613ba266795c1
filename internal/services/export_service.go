package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tripgems/internal/models/tour_models"
)

var (
	gemColumns  = []string{"name", "category", "location", "lat", "lng", "polarity", "numReviews"}
	trapColumns = []string{"name", "category", "location", "lat", "lng", "polarity", "numReviews", "monthly_reviews", "review_variance"}
)

type ExportServiceInterface interface {
	WriteGems(w io.Writer, places []tour_models.PlaceRecord) error
	WriteTraps(w io.Writer, places []tour_models.TrapPlace) error
	// SaveCityFile writes to <dir>/<prefix>_<city>.csv and returns the path.
	SaveCityFile(dir, prefix, city string, write func(io.Writer) error) (string, error)
}

type ExportService struct{}

func NewExportService() ExportServiceInterface {
	return &ExportService{}
}

func (e *ExportService) WriteGems(w io.Writer, places []tour_models.PlaceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gemColumns); err != nil {
		return err
	}
	for _, p := range places {
		if err := cw.Write(placeColumns(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *ExportService) WriteTraps(w io.Writer, places []tour_models.TrapPlace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trapColumns); err != nil {
		return err
	}
	for _, p := range places {
		months := make([]string, len(p.MonthlyReviews))
		for i, n := range p.MonthlyReviews {
			months[i] = strconv.Itoa(n)
		}
		record := append(placeColumns(p.PlaceRecord),
			"["+strings.Join(months, ", ")+"]",
			formatFloat(p.ReviewVariance),
		)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *ExportService) SaveCityFile(dir, prefix, city string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, strings.ToLower(city)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// placeColumns yields name, category, location, lat, lng, polarity, numReviews.
func placeColumns(p tour_models.PlaceRecord) []string {
	polarity, reviews := "", ""
	if p.Polarity != nil {
		polarity = formatFloat(*p.Polarity)
	}
	if p.NumReviews != nil {
		reviews = strconv.Itoa(*p.NumReviews)
	}
	return []string{
		p.Name,
		string(p.Category),
		p.Location,
		formatFloat(p.Lat),
		formatFloat(p.Lng),
		polarity,
		reviews,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
