// Package report produces the artifacts handed over at the end of a test:
// the results document, a Markdown summary and a DICOM capture of the
// reaction photo.
package report

import (
	"github.com/mrsinham/quantitest/internal/assets"
)

// Fixed download metadata for the results document.
const (
	ResultsFilename = "Test_Results.pdf"
	ResultsMIME     = "application/pdf"
)

// Document is an exported file ready for download.
type Document struct {
	Filename string
	MIME     string
	Data     []byte
}

// Sink exports the results document.
type Sink interface {
	ExportReport() (Document, error)
}

// TemplateSink returns the installed results template unchanged.
type TemplateSink struct {
	Store *assets.Store
}

// ExportReport implements Sink. A missing template yields *assets.MissingAssetError.
func (s TemplateSink) ExportReport() (Document, error) {
	data, err := s.Store.Read(assets.ReportTemplate)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Filename: ResultsFilename,
		MIME:     ResultsMIME,
		Data:     data,
	}, nil
}
