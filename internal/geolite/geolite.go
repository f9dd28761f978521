package geolite

import (
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/oschwald/geoip2-golang"
)

const (
	countryFilename = "GeoLite2-Country.mmdb"
	asnFilename     = "GeoLite2-ASN.mmdb"
)

// Info is the offline GeoLite2 view of an address. Fields stay empty when the
// corresponding database is missing or has no entry for the address.
type Info struct {
	CountryName string
	CountryCode string
	ASN         uint
	ASNOrg      string
}

// Lookup resolves ipAddress against the GeoLite2 databases in dataDir. The
// databases are optional; ok is false when neither is present or the address
// does not parse.
func Lookup(dataDir, ipAddress string) (info *Info, ok bool) {
	ip := net.ParseIP(strings.TrimSpace(ipAddress))
	if ip == nil {
		return nil, false
	}

	result := Info{}
	found := false

	if reader, err := readerFromDisk(dataDir, countryFilename); err == nil {
		defer reader.Close()
		if record, err := reader.Country(ip); err == nil {
			result.CountryName = record.Country.Names["en"]
			result.CountryCode = strings.ToUpper(record.Country.IsoCode)
			found = found || result.CountryName != "" || result.CountryCode != ""
		} else {
			log.Debug("GeoLite country lookup failed", "ip", ipAddress, "error", err)
		}
	}

	if reader, err := readerFromDisk(dataDir, asnFilename); err == nil {
		defer reader.Close()
		if record, err := reader.ASN(ip); err == nil {
			result.ASN = record.AutonomousSystemNumber
			result.ASNOrg = record.AutonomousSystemOrganization
			found = found || result.ASN != 0 || result.ASNOrg != ""
		} else {
			log.Debug("GeoLite ASN lookup failed", "ip", ipAddress, "error", err)
		}
	}

	if !found {
		return nil, false
	}
	return &result, true
}

func readerFromDisk(dataDir, filename string) (*geoip2.Reader, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, filename))
	if err != nil {
		return nil, err
	}
	return geoip2.FromBytes(data)
}
