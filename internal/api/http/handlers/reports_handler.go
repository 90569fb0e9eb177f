package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mosquito-alert/internal/api/dto"
	"github.com/spec-kit/mosquito-alert/internal/domain"
	"github.com/spec-kit/mosquito-alert/internal/service"
	"github.com/spec-kit/mosquito-alert/internal/store"
	"github.com/spec-kit/mosquito-alert/pkg/util"
)

// ReportsHandler exposes report endpoints backed by the report store.
type ReportsHandler struct {
	store    *store.ReportStore
	uploads  *service.UploadService
	geocoder *service.Geocoder
	exports  *service.ExportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportStore *store.ReportStore, uploads *service.UploadService, geocoder *service.Geocoder, exports *service.ExportService) *ReportsHandler {
	return &ReportsHandler{store: reportStore, uploads: uploads, geocoder: geocoder, exports: exports}
}

// Create handles POST /reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Description) == "" {
		return fiber.NewError(http.StatusBadRequest, "description required")
	}

	address := req.Address
	if address == "" {
		address = h.geocoder.ReverseGeocode(req.Lat, req.Lng)
	}
	location := domain.Location{Lat: req.Lat, Lng: req.Lng, Address: address}

	report, err := h.store.CreateReport(c.UserContext(), location, req.Description, req.ImageURL)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"report": report}})
}

// List handles GET /reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"reports": h.store.AllReports()}})
}

// Mine handles GET /reports/mine.
func (h *ReportsHandler) Mine(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"reports": h.store.UserReports()}})
}

// GetByID handles GET /reports/:id.
func (h *ReportsHandler) GetByID(c *fiber.Ctx) error {
	report, ok := h.store.ReportByID(c.Params("id"))
	if !ok {
		return util.NewNotFound("report", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"report": report}})
}

// UploadImage handles POST /reports/image (multipart field "image").
func (h *ReportsHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "image file required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unable to read image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unable to read image")
	}

	uri, err := h.uploads.Upload(c.UserContext(), fileHeader.Filename, fileHeader.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.UploadResponse{ImageURL: uri}})
}

// Export handles GET /reports/export?format=csv|json.
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	reports := h.store.AllReports()

	switch c.Query("format", "csv") {
	case "json":
		payload, err := h.exports.JSON(reports)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reports.json"`)
		return c.Send(payload)
	case "csv":
		payload, err := h.exports.CSV(reports)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reports.csv"`)
		return c.Send(payload)
	default:
		return fiber.NewError(http.StatusBadRequest, "format must be csv or json")
	}
}
