package entity

type TamperStatus string

const (
	TamperStatusClean      TamperStatus = "clean"
	TamperStatusSuspicious TamperStatus = "suspicious"
	TamperStatusFailed     TamperStatus = "failed"
)

type MediaCategory string

const (
	MediaImage    MediaCategory = "image"
	MediaPDF      MediaCategory = "pdf"
	MediaDocument MediaCategory = "document"
)

type TamperAnalysis struct {
	FileName   string                 `json:"fileName"`
	FileHash   string                 `json:"fileHash,omitempty"`
	FileSize   int64                  `json:"fileSize"`
	MediaType  string                 `json:"mediaType"`
	Category   MediaCategory          `json:"category"`
	Status     TamperStatus           `json:"status"`
	Details    string                 `json:"details"`
	Confidence float64                `json:"confidence"`
	Indicators []string               `json:"indicators"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

type TamperBatchSummary struct {
	Total             int     `json:"total"`
	Clean             int     `json:"clean"`
	Suspicious        int     `json:"suspicious"`
	Failed            int     `json:"failed"`
	AverageConfidence float64 `json:"averageConfidence"`
}
