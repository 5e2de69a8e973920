package utils

import (
	"strings"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
)

// NormalizeScan canonicalizes raw scanner input: whitespace trimmed,
// lower-cased. Device identifiers go through the same normalization
// before comparison.
func NormalizeScan(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveDevice matches a scanned string against every identifier field
// of every device: deviceId, internal id, ICCID, IMEI, barcode and
// serial number. The first matching device in list order wins; duplicate
// identifiers across devices are a data-quality assumption this layer
// does not guard against. Returns *entity.NotFoundError when nothing
// matches.
func ResolveDevice(scan string, devices []entity.Device) (*entity.Device, error) {
	clean := NormalizeScan(scan)
	if clean == "" {
		return nil, &entity.NotFoundError{Scan: scan}
	}

	for i := range devices {
		for _, id := range devices[i].Identifiers() {
			if id == "" {
				continue
			}
			if NormalizeScan(id) == clean {
				d := devices[i]
				return &d, nil
			}
		}
	}
	return nil, &entity.NotFoundError{Scan: scan}
}
