// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package reports renders report payloads into downloadable artifacts
// and stores the resulting blobs in an embedded BadgerDB keyed by
// report id.
package reports

import (
	"fmt"
	"time"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// Render produces the artifact bytes for a payload in the requested
// format.
func Render(p datatypes.ReportPayload, format datatypes.ReportFormat) ([]byte, error) {
	switch format {
	case datatypes.FormatJSON:
		return renderJSON(p)
	case datatypes.FormatExcel:
		return renderExcel(p)
	case datatypes.FormatPDF:
		return renderPDF(p)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// MimeType returns the Content-Type for a rendered format.
func MimeType(format datatypes.ReportFormat) string {
	switch format {
	case datatypes.FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case datatypes.FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// FileName builds the download name for a report artifact.
func FileName(typ datatypes.ReportType, format datatypes.ReportFormat, now time.Time) string {
	ext := "json"
	switch format {
	case datatypes.FormatExcel:
		ext = "xlsx"
	case datatypes.FormatPDF:
		ext = "pdf"
	}
	return fmt.Sprintf("%s_%d.%s", typ, now.UnixMilli(), ext)
}
