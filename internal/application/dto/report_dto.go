package dto

// Formatos y codificaciones del relatório mensal.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
	ReportFormatXML = "xml"

	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// MonthlyReportRequest query de GET /api/reports/monthly.
type MonthlyReportRequest struct {
	Year     int    `query:"year" json:"year" validate:"required,min=2000,max=2100"`
	Month    int    `query:"month" json:"month" validate:"required,min=1,max=12"`
	Format   string `query:"format" json:"format" validate:"omitempty,oneof=csv pdf xml"`
	Encoding string `query:"encoding" json:"encoding" validate:"omitempty,oneof=utf-8 windows-1252"`
}

// ReportFile archivo generado listo para descargar.
type ReportFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}
