package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/spec-kit/mosquito-alert/internal/domain"
)

var exportHeader = []string{"id", "lat", "lng", "address", "description", "status", "created_at"}

// ExportService serializes report listings for download. CSV quoting follows
// RFC 4180, so commas and quotes in free-text fields survive a round trip.
type ExportService struct{}

// NewExportService constructs the service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// CSV renders reports as comma-separated values with a header row.
func (s *ExportService) CSV(reports []domain.MosquitoReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range reports {
		record := []string{
			r.ID,
			strconv.FormatFloat(r.Location.Lat, 'f', -1, 64),
			strconv.FormatFloat(r.Location.Lng, 'f', -1, 64),
			r.Location.Address,
			r.Description,
			string(r.Status),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders reports as an indented JSON array.
func (s *ExportService) JSON(reports []domain.MosquitoReport) ([]byte, error) {
	return json.MarshalIndent(reports, "", "  ")
}

// ParseCSV reads an export back into reports. Used by consumers that re-import
// downloaded data; only the exported fields are populated.
func (s *ExportService) ParseCSV(data []byte) ([]domain.MosquitoReport, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	reports := make([]domain.MosquitoReport, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		lat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, err
		}
		lng, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(time.RFC3339, row[6])
		if err != nil {
			return nil, err
		}
		reports = append(reports, domain.MosquitoReport{
			ID:          row[0],
			Location:    domain.Location{Lat: lat, Lng: lng, Address: row[3]},
			Description: row[4],
			Status:      domain.ReportStatus(row[5]),
			CreatedAt:   createdAt,
		})
	}
	return reports, nil
}
