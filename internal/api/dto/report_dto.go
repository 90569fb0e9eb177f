package dto

// CreateReportRequest payload for a new breeding-site report.
type CreateReportRequest struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// UploadResponse carries the placeholder URI of a simulated upload.
type UploadResponse struct {
	ImageURL string `json:"image_url"`
}
