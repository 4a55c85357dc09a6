// Utilities for turning a browser "Copy as cURL" request into YouTube Music browser credentials.
package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	headerFlag = regexp.MustCompile(`(?:-H|--header)\s+(?:'([^']+)'|"([^"]+)")`)
	cookieFlag = regexp.MustCompile(`(?:-b|--cookie)\s+(?:'([^']+)'|"([^"]+)")`)
)

// requiredBrowserHeaders must be present for the proxy to sign YouTube Music requests.
var requiredBrowserHeaders = []string{"cookie", "x-goog-authuser"}

// BrowserHeaders holds the request headers of an authenticated music.youtube.com session.
// Keys are lower-cased; the cookie is stored under "cookie".
type BrowserHeaders map[string]string

// ParseCurlFile reads a file containing a cURL command and extracts its headers.
func ParseCurlFile(path string) (BrowserHeaders, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand extracts -H and -b values from a cURL command line.
//
// A -b cookie wins over a "cookie:" header.
func ParseCurlCommand(data []byte) (BrowserHeaders, error) {
	cmd := strings.ReplaceAll(string(data), "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\\r\n", " ")

	headers := BrowserHeaders{}
	for _, m := range headerFlag.FindAllStringSubmatch(cmd, -1) {
		key, value, ok := strings.Cut(firstGroup(m), ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}

	if m := cookieFlag.FindStringSubmatch(cmd); m != nil {
		headers["cookie"] = firstGroup(m)
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}
	return headers, nil
}

// Validate reports the first required header that is missing.
func (h BrowserHeaders) Validate() error {
	for _, key := range requiredBrowserHeaders {
		if h[key] == "" {
			return fmt.Errorf("%w: %q header missing; copy the request from a signed-in music.youtube.com tab", ErrInvalidCredentials, key)
		}
	}
	return nil
}

// WriteBrowserAuth validates h and writes it as browser.json to path, creating parent directories.
func WriteBrowserAuth(h BrowserHeaders, path string) error {
	if err := h.Validate(); err != nil {
		return err
	}

	data, err := MarshalJSON(h, true)
	if err != nil {
		return fmt.Errorf("failed to marshal headers: %w", err)
	}

	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}

func firstGroup(m []string) string {
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
