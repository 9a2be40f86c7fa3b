package format

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ZaguanLabs/doctrans"
)

// containers lists the MIME type each extension's content must descend from.
var containers = map[string]string{
	"xlsx": "application/zip",
	"docx": "application/zip",
	"pptx": "application/zip",
	"pdf":  "application/pdf",
	"csv":  "text/plain",
	"html": "text/plain",
}

// Sniff checks that data looks like a file of the given extension.
// Empty CSV input is accepted.
func Sniff(ext string, data []byte) error {
	want, ok := containers[ext]
	if !ok {
		return nil
	}
	if len(data) == 0 && ext == "csv" {
		return nil
	}

	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(want) {
			return nil
		}
	}

	return &doctrans.UnsupportedFormatError{
		Extension: "." + ext,
		Message:   fmt.Sprintf("content looks like %s", strings.SplitN(detected.String(), ";", 2)[0]),
	}
}

// DetectMediaType returns the sniffed media type of data without parameters.
func DetectMediaType(data []byte) string {
	return strings.SplitN(mimetype.Detect(data).String(), ";", 2)[0]
}
