package usecase

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/infrastructure/metrics"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/hashing"
	"truthprevails/pkg/logger"
)

const (
	MaxTamperBatch = 10

	strippedImageConfidence = 0.7
	baseConfidence          = 0.9
	suspiciousBelow         = 0.8
	highRiskBelow           = 0.6
	scanFloor               = 0.5
	perSignaturePenalty     = 0.1

	pdfHeaderWindow  = 8
	pdfScanWindow    = 1000
	docScanWindow    = 2000
	minDocumentBytes = 100

	exifTimeLayout = "2006:01:02 15:04:05"
)

var (
	editingSoftware = []string{
		"photoshop", "gimp", "lightroom", "snapseed", "pixlr",
		"canva", "affinity", "paint.net", "facetune", "picsart",
	}

	pdfEditors = []string{
		"Adobe Acrobat", "PDFtk", "iText", "PDFsharp", "Foxit",
		"Nitro", "PDF-XChange", "Smallpdf", "iLovePDF", "Sejda",
	}

	officeTools = []string{
		"Microsoft Word", "Microsoft Excel", "Microsoft PowerPoint", "LibreOffice",
		"OpenOffice", "Google Docs", "WPS Office",
	}
)

type TamperDetectionUseCase struct {
	metrics *metrics.Metrics
}

func NewTamperDetectionUseCase(m *metrics.Metrics) *TamperDetectionUseCase {
	return &TamperDetectionUseCase{
		metrics: m,
	}
}

type TamperInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

type TamperBatchResult struct {
	Results []*entity.TamperAnalysis  `json:"results"`
	Summary entity.TamperBatchSummary `json:"summary"`
}

// Analyze runs the metadata heuristics for the file's category. It never returns an error;
// unreadable input is reported as a failed analysis.
func (uc *TamperDetectionUseCase) Analyze(ctx context.Context, input TamperInput) *entity.TamperAnalysis {
	analysis := &entity.TamperAnalysis{
		FileName:   input.FileName,
		FileSize:   int64(len(input.Data)),
		Indicators: []string{},
		Metadata:   map[string]interface{}{},
	}

	if len(input.Data) == 0 {
		analysis.Status = entity.TamperStatusFailed
		analysis.Details = "Analysis failed: file is empty"
		analysis.Error = "file is empty"
		uc.metrics.ObserveTamper(string(analysis.Status))
		return analysis
	}

	analysis.FileHash = hashing.HashBytes(input.Data)
	analysis.MediaType = detectContentType(input.ContentType, input.Data)
	analysis.Category = categorize(analysis.MediaType)

	switch analysis.Category {
	case entity.MediaImage:
		analyzeImage(analysis, input.Data)
	case entity.MediaPDF:
		analyzePDF(analysis, input.Data)
	default:
		analyzeDocument(analysis, input.Data)
	}

	logger.Debug("Tamper analysis for %s: status=%s confidence=%.2f", input.FileName, analysis.Status, analysis.Confidence)
	uc.metrics.ObserveTamper(string(analysis.Status))
	return analysis
}

func (uc *TamperDetectionUseCase) AnalyzeBatch(ctx context.Context, inputs []TamperInput) (*TamperBatchResult, error) {
	if len(inputs) == 0 {
		return nil, errors.BadRequest("At least one file is required", nil)
	}
	if len(inputs) > MaxTamperBatch {
		return nil, errors.BadRequest(fmt.Sprintf("Maximum %d files allowed per batch", MaxTamperBatch), nil)
	}

	results := make([]*entity.TamperAnalysis, 0, len(inputs))
	for _, input := range inputs {
		results = append(results, uc.Analyze(ctx, input))
	}

	return &TamperBatchResult{
		Results: results,
		Summary: summarizeTamper(results),
	}, nil
}

func summarizeTamper(results []*entity.TamperAnalysis) entity.TamperBatchSummary {
	summary := entity.TamperBatchSummary{Total: len(results)}

	var sum float64
	for _, r := range results {
		switch r.Status {
		case entity.TamperStatusClean:
			summary.Clean++
		case entity.TamperStatusSuspicious:
			summary.Suspicious++
		default:
			summary.Failed++
			continue
		}
		sum += r.Confidence
	}

	if analysed := summary.Clean + summary.Suspicious; analysed > 0 {
		summary.AverageConfidence = round2(sum / float64(analysed))
	}
	return summary
}

func categorize(mediaType string) entity.MediaCategory {
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return entity.MediaImage
	case mediaType == "application/pdf":
		return entity.MediaPDF
	default:
		return entity.MediaDocument
	}
}

type imageMetadata struct {
	Make             string
	Model            string
	Software         string
	DateTimeOriginal *time.Time
	DateTime         *time.Time
	HasGPS           bool
	Latitude         float64
	Longitude        float64
}

func (m *imageMetadata) fields() map[string]interface{} {
	out := map[string]interface{}{}
	if m.Make != "" {
		out["make"] = m.Make
	}
	if m.Model != "" {
		out["model"] = m.Model
	}
	if m.Software != "" {
		out["software"] = m.Software
	}
	if m.DateTimeOriginal != nil {
		out["dateTimeOriginal"] = m.DateTimeOriginal.Format(time.RFC3339)
	}
	if m.DateTime != nil {
		out["dateTime"] = m.DateTime.Format(time.RFC3339)
	}
	if m.HasGPS {
		out["latitude"] = m.Latitude
		out["longitude"] = m.Longitude
	}
	return out
}

func analyzeImage(analysis *entity.TamperAnalysis, data []byte) {
	meta, err := readImageMetadata(data)
	if err != nil || meta == nil {
		analysis.Status = entity.TamperStatusSuspicious
		analysis.Confidence = strippedImageConfidence
		analysis.Indicators = append(analysis.Indicators, "no_exif")
		analysis.Details = "No EXIF metadata found. Metadata is often stripped when an image is edited or re-saved."
		return
	}

	analysis.Metadata = meta.fields()
	analysis.Confidence, analysis.Indicators = scoreImage(meta)

	switch {
	case analysis.Confidence < highRiskBelow:
		analysis.Status = entity.TamperStatusSuspicious
		analysis.Details = "High likelihood of tampering. Indicators: " + strings.Join(analysis.Indicators, ", ")
	case analysis.Confidence < suspiciousBelow:
		analysis.Status = entity.TamperStatusSuspicious
		analysis.Details = "Image metadata shows possible signs of editing."
	default:
		analysis.Status = entity.TamperStatusClean
		analysis.Details = "No signs of tampering found in image metadata."
	}
}

// scoreImage applies cumulative penalties from the base confidence. The result is not floored.
func scoreImage(meta *imageMetadata) (float64, []string) {
	confidence := baseConfidence
	indicators := []string{}

	if software := strings.ToLower(meta.Software); software != "" {
		for _, editor := range editingSoftware {
			if strings.Contains(software, editor) {
				confidence -= 0.2
				indicators = append(indicators, "editing_software")
				break
			}
		}
	}

	if meta.DateTimeOriginal == nil {
		confidence -= 0.3
		indicators = append(indicators, "missing_original_timestamp")
	}

	if meta.DateTimeOriginal != nil && meta.DateTime != nil && meta.DateTime.Before(*meta.DateTimeOriginal) {
		confidence -= 0.4
		indicators = append(indicators, "modified_before_created")
	}

	if meta.HasGPS && (meta.Latitude < -90 || meta.Latitude > 90 || meta.Longitude < -180 || meta.Longitude > 180) {
		confidence -= 0.3
		indicators = append(indicators, "invalid_gps")
	}

	return round2(confidence), indicators
}

func readImageMetadata(data []byte) (meta *imageMetadata, err error) {
	// malformed IFDs can panic inside the decoder
	defer func() {
		if r := recover(); r != nil {
			meta, err = nil, fmt.Errorf("exif decode panic: %v", r)
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	meta = &imageMetadata{
		Make:     exifString(x, exif.Make),
		Model:    exifString(x, exif.Model),
		Software: exifString(x, exif.Software),
	}
	meta.DateTimeOriginal = exifTime(x, exif.DateTimeOriginal)
	meta.DateTime = exifTime(x, exif.DateTime)

	if lat, long, err := x.LatLong(); err == nil {
		meta.HasGPS = true
		meta.Latitude = lat
		meta.Longitude = long
	}

	return meta, nil
}

func exifString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	v, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(v, "\x00"))
}

func exifTime(x *exif.Exif, name exif.FieldName) *time.Time {
	raw := exifString(x, name)
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation(exifTimeLayout, raw, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

func analyzePDF(analysis *entity.TamperAnalysis, data []byte) {
	header := data[:min(len(data), pdfHeaderWindow)]
	if !bytes.Contains(header, []byte("%PDF-")) {
		analysis.Status = entity.TamperStatusSuspicious
		analysis.Confidence = 0
		analysis.Indicators = append(analysis.Indicators, "invalid_pdf_signature")
		analysis.Details = "File does not carry a valid PDF signature."
		return
	}
	analysis.Metadata["version"] = strings.TrimSpace(strings.TrimPrefix(string(header), "%PDF-"))

	found := scanSignatures(data, pdfScanWindow, pdfEditors)
	analysis.Confidence = degrade(len(found))
	analysis.Metadata["editorSignatures"] = found

	if len(found) > 0 {
		analysis.Status = entity.TamperStatusSuspicious
		analysis.Indicators = append(analysis.Indicators, "pdf_editor_signature")
		analysis.Details = "PDF was processed by editing software: " + strings.Join(found, ", ")
		return
	}
	analysis.Status = entity.TamperStatusClean
	analysis.Details = "No editing software signatures found in PDF header."
}

func analyzeDocument(analysis *entity.TamperAnalysis, data []byte) {
	if len(data) < minDocumentBytes {
		analysis.Status = entity.TamperStatusSuspicious
		analysis.Confidence = 0.3
		analysis.Indicators = append(analysis.Indicators, "unusually_small")
		analysis.Details = "File is unusually small for a document."
		return
	}

	found := scanSignatures(data, docScanWindow, officeTools)
	analysis.Confidence = degrade(len(found))
	analysis.Metadata["tools"] = found

	if analysis.Confidence < suspiciousBelow {
		analysis.Status = entity.TamperStatusSuspicious
		analysis.Indicators = append(analysis.Indicators, "multiple_authoring_tools")
		analysis.Details = "Document references several authoring tools: " + strings.Join(found, ", ")
		return
	}
	analysis.Status = entity.TamperStatusClean
	analysis.Details = "No signs of tampering found in document."
}

// scanSignatures returns the needles found, case-insensitively, in the first window bytes.
func scanSignatures(data []byte, window int, needles []string) []string {
	prefix := strings.ToLower(string(data[:min(len(data), window)]))

	found := []string{}
	for _, needle := range needles {
		if strings.Contains(prefix, strings.ToLower(needle)) {
			found = append(found, needle)
		}
	}
	return found
}

func degrade(count int) float64 {
	return round2(math.Max(scanFloor, baseConfidence-perSignaturePenalty*float64(count)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
