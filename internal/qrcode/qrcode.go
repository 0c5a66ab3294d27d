package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// SpectatorURL builds the link a phone follows to watch a table.
func SpectatorURL(base, tableID string) string {
	base = strings.TrimRight(base, "/")
	return fmt.Sprintf("%s/api/tables/%s/state", base, url.PathEscape(tableID))
}

// Generate creates a QR code PNG image for the given URL.
func Generate(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qr.Encode(link, qr.Medium, size)
}
