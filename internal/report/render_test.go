package report

import (
	"fmt"
	"strings"
	"testing"

	"iprep/internal/abuseipdb"
	"iprep/internal/geolite"
)

const testCheckedAt = "2026-01-02 15:04:05"

func TestRenderNoData(t *testing.T) {
	if got := Render("1.2.3.4", nil, testCheckedAt, nil); got != NoDataReport {
		t.Fatalf("Render with nil record returned %q, want %q", got, NoDataReport)
	}

	// The variant must not depend on the other inputs.
	if got := Render("", nil, "", nil); got != NoDataReport {
		t.Fatalf("Render with nil record and empty inputs returned %q, want %q", got, NoDataReport)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	rec := &abuseipdb.Record{
		IPAddress:            "1.2.3.4",
		AbuseConfidenceScore: 42,
		CountryName:          "Testland",
		CountryCode:          "TL",
		ISP:                  "Test ISP",
		TotalReports:         3,
		Reports: []abuseipdb.Report{
			{ReportedAt: "2026-01-01T00:00:00+00:00", Categories: []int{18, 22}},
		},
	}

	first := Render("1.2.3.4", rec, testCheckedAt, nil)
	second := Render("1.2.3.4", rec, testCheckedAt, nil)
	if first != second {
		t.Fatal("Render produced different output for identical inputs")
	}
}

func TestRenderContent(t *testing.T) {
	rec := &abuseipdb.Record{
		IPAddress:            "1.2.3.4",
		AbuseConfidenceScore: 42,
		CountryName:          "Testland",
		CountryCode:          "TL",
		ISP:                  "Test ISP",
		Domain:               "example.com",
		UsageType:            "Data Center/Web Hosting/Transit",
		TotalReports:         3,
		NumDistinctUsers:     2,
		LastReportedAt:       "2026-01-01T00:00:00+00:00",
	}

	got := Render("1.2.3.4", rec, testCheckedAt, nil)

	for _, want := range []string{
		"IP REPUTATION REPORT",
		"IP Address: 1.2.3.4",
		"Check Date: " + testCheckedAt,
		"MODERATE RISK",
		"42%",
		"Testland",
		"Total Reports: 3",
		"Distinct Users Reported: 2",
		"Whitelisted: No",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Render output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderDefaultsForAbsentFields(t *testing.T) {
	rec := &abuseipdb.Record{IPAddress: "1.2.3.4"}

	got := Render("1.2.3.4", rec, testCheckedAt, nil)

	for _, want := range []string{
		"Reputation Status: CLEAN",
		"Abuse Confidence Score: 0%",
		"Country: Unknown (N/A)",
		"ISP: Unknown",
		"Domain: N/A",
		"Usage Type: Unknown",
		"Total Reports: 0",
		"Distinct Users Reported: 0",
		"Last Reported: Never",
		"Whitelisted: No",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Render output missing default %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "Recent Reports:") {
		t.Fatal("Render output has a Recent Reports section for a record without reports")
	}
}

func TestRenderDefaultsAreIndependent(t *testing.T) {
	rec := &abuseipdb.Record{
		IPAddress:   "1.2.3.4",
		CountryName: "Testland",
		Domain:      "example.com",
	}

	got := Render("1.2.3.4", rec, testCheckedAt, nil)

	if !strings.Contains(got, "Country: Testland (N/A)") {
		t.Fatalf("Render did not keep the present country while defaulting its code:\n%s", got)
	}
	if !strings.Contains(got, "ISP: Unknown") {
		t.Fatalf("Render did not default the absent ISP:\n%s", got)
	}
	if !strings.Contains(got, "Domain: example.com") {
		t.Fatalf("Render did not keep the present domain:\n%s", got)
	}
}

func TestRenderCapsReportEntries(t *testing.T) {
	rec := &abuseipdb.Record{IPAddress: "1.2.3.4", AbuseConfidenceScore: 80}
	for i := 0; i < 7; i++ {
		rec.Reports = append(rec.Reports, abuseipdb.Report{
			ReportedAt: fmt.Sprintf("2026-01-0%dT00:00:00+00:00", i+1),
			Categories: []int{14, i},
		})
	}

	got := Render("1.2.3.4", rec, testCheckedAt, nil)

	if n := strings.Count(got, "  - "); n != 5 {
		t.Fatalf("Render kept %d report entries, want 5", n)
	}
	if !strings.Contains(got, "2026-01-01T00:00:00+00:00: 14, 0") {
		t.Fatalf("Render dropped the first report entry:\n%s", got)
	}
	if strings.Contains(got, "2026-01-06") || strings.Contains(got, "2026-01-07") {
		t.Fatalf("Render included entries past the first five:\n%s", got)
	}

	// Entries stay in wire order.
	first := strings.Index(got, "2026-01-01")
	third := strings.Index(got, "2026-01-03")
	if first < 0 || third < 0 || first > third {
		t.Fatalf("Render reordered report entries:\n%s", got)
	}
}

func TestRenderGeoSection(t *testing.T) {
	rec := &abuseipdb.Record{IPAddress: "1.2.3.4"}
	geo := &geolite.Info{CountryName: "Germany", CountryCode: "DE", ASN: 3320, ASNOrg: "Deutsche Telekom AG"}

	got := Render("1.2.3.4", rec, testCheckedAt, geo)
	if !strings.Contains(got, "Local GeoIP:") {
		t.Fatalf("Render output missing the Local GeoIP section:\n%s", got)
	}
	if !strings.Contains(got, "Country: Germany (DE)") {
		t.Fatalf("Render output missing the GeoIP country line:\n%s", got)
	}
	if !strings.Contains(got, "ASN: AS3320 Deutsche Telekom AG") {
		t.Fatalf("Render output missing the GeoIP ASN line:\n%s", got)
	}

	if got := Render("1.2.3.4", rec, testCheckedAt, nil); strings.Contains(got, "Local GeoIP:") {
		t.Fatal("Render emitted a Local GeoIP section without enrichment data")
	}
}
