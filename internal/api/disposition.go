package api

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	extFilenameRe    = regexp.MustCompile(`(?i)filename\*\s*=\s*UTF-8''([^;]+)`)
	quotedFilenameRe = regexp.MustCompile(`(?i)filename\s*=\s*"([^"]+)"`)
)

// FilenameFromDisposition recovers the download name from a
// Content-Disposition header. The RFC 5987 filename* parameter wins over the
// quoted filename parameter; fallback is used when neither is usable.
func FilenameFromDisposition(header, fallback string) string {
	if header != "" {
		if m := extFilenameRe.FindStringSubmatch(header); m != nil {
			if name, err := url.PathUnescape(strings.TrimSpace(m[1])); err == nil {
				if name = cleanFilename(name); name != "" {
					return name
				}
			}
		}
		if m := quotedFilenameRe.FindStringSubmatch(header); m != nil {
			if name := cleanFilename(m[1]); name != "" {
				return name
			}
		}
	}
	return fallback
}

// cleanFilename keeps only the base name so a header cannot steer the file
// outside the export directory, and normalises to NFC.
func cleanFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return norm.NFC.String(name)
}
