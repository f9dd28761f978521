package report

import (
	"fmt"
	"strconv"
	"strings"

	"iprep/internal/abuseipdb"
	"iprep/internal/geolite"
)

const (
	// NoDataReport is the entire report body when the lookup carried no
	// usable payload.
	NoDataReport = "No data received from API\n"

	maxReportEntries = 5
)

var banner = strings.Repeat("=", 60)

// Render produces the full report text. rec may be nil, in which case the
// no-data variant is returned regardless of the other inputs. geo is the
// optional offline GeoLite2 enrichment; nil omits its section. Render performs
// no I/O and is deterministic for identical inputs.
func Render(ipAddress string, rec *abuseipdb.Record, checkedAt string, geo *geolite.Info) string {
	if rec == nil {
		return NoDataReport
	}

	var b strings.Builder

	b.WriteString(banner + "\n")
	b.WriteString("IP REPUTATION REPORT\n")
	b.WriteString(banner + "\n\n")

	fmt.Fprintf(&b, "IP Address: %s\n", ipAddress)
	fmt.Fprintf(&b, "Check Date: %s\n\n", checkedAt)

	fmt.Fprintf(&b, "Reputation Status: %s\n", Classify(rec.AbuseConfidenceScore))
	fmt.Fprintf(&b, "Abuse Confidence Score: %d%%\n\n", rec.AbuseConfidenceScore)

	fmt.Fprintf(&b, "Country: %s (%s)\n", orDefault(rec.CountryName, "Unknown"), orDefault(rec.CountryCode, "N/A"))
	fmt.Fprintf(&b, "ISP: %s\n", orDefault(rec.ISP, "Unknown"))
	fmt.Fprintf(&b, "Domain: %s\n", orDefault(rec.Domain, "N/A"))
	fmt.Fprintf(&b, "Usage Type: %s\n", orDefault(rec.UsageType, "Unknown"))
	fmt.Fprintf(&b, "Total Reports: %d\n", rec.TotalReports)
	fmt.Fprintf(&b, "Distinct Users Reported: %d\n", rec.NumDistinctUsers)
	fmt.Fprintf(&b, "Last Reported: %s\n", orDefault(rec.LastReportedAt, "Never"))
	fmt.Fprintf(&b, "Whitelisted: %s\n", yesNo(rec.IsWhitelisted))

	if geo != nil {
		b.WriteString("\nLocal GeoIP:\n")
		fmt.Fprintf(&b, "  Country: %s (%s)\n", orDefault(geo.CountryName, "Unknown"), orDefault(geo.CountryCode, "N/A"))
		if geo.ASN != 0 || geo.ASNOrg != "" {
			fmt.Fprintf(&b, "  ASN: AS%d %s\n", geo.ASN, orDefault(geo.ASNOrg, "Unknown"))
		}
	}

	if len(rec.Reports) > 0 {
		b.WriteString("\nRecent Reports:\n")
		entries := rec.Reports
		if len(entries) > maxReportEntries {
			entries = entries[:maxReportEntries]
		}
		for _, entry := range entries {
			fmt.Fprintf(&b, "  - %s: %s\n", orDefault(entry.ReportedAt, "N/A"), joinCategories(entry.Categories))
		}
	}

	b.WriteString("\n" + banner + "\n")

	return b.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func joinCategories(categories []int) string {
	codes := make([]string, len(categories))
	for i, category := range categories {
		codes[i] = strconv.Itoa(category)
	}
	return strings.Join(codes, ", ")
}
