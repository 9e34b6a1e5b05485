package resume

import (
	"bytes"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// MIME types accepted for uploaded resumes
const (
	MIMEPDF  = "application/pdf"
	MIMEDoc  = "application/msword"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var allowedTypes = map[string]bool{
	MIMEPDF:  true,
	MIMEDoc:  true,
	MIMEDocx: true,
}

// IsAllowedType reports whether contentType is an accepted resume format
func IsAllowedType(contentType string) bool {
	return allowedTypes[contentType]
}

// ExtractText converts a resume document to plain text in memory.
// The raw file bytes are never written to disk here.
func ExtractText(data []byte, contentType string) (string, error) {
	if !allowedTypes[contentType] {
		return "", fmt.Errorf("unsupported resume type %q", contentType)
	}
	res, err := docconv.Convert(bytes.NewReader(data), contentType, true)
	if err != nil {
		return "", fmt.Errorf("convert document: %w", err)
	}
	return strings.TrimSpace(res.Body), nil
}
