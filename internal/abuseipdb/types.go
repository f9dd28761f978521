package abuseipdb

// Record is the `data` object of an AbuseIPDB check response. Every field is
// optional on the wire; zero values stand in for absent fields and the
// renderer substitutes the documented placeholders.
type Record struct {
	IPAddress            string   `json:"ipAddress"`
	IsPublic             bool     `json:"isPublic"`
	IPVersion            int      `json:"ipVersion"`
	IsWhitelisted        bool     `json:"isWhitelisted"`
	AbuseConfidenceScore int      `json:"abuseConfidenceScore"`
	CountryCode          string   `json:"countryCode"`
	CountryName          string   `json:"countryName"`
	UsageType            string   `json:"usageType"`
	ISP                  string   `json:"isp"`
	Domain               string   `json:"domain"`
	TotalReports         int      `json:"totalReports"`
	NumDistinctUsers     int      `json:"numDistinctUsers"`
	LastReportedAt       string   `json:"lastReportedAt"`
	Reports              []Report `json:"reports"`
}

// Report is a single historical abuse report, present only on verbose checks.
type Report struct {
	ReportedAt string `json:"reportedAt"`
	Comment    string `json:"comment"`
	Categories []int  `json:"categories"`
}

type checkResponse struct {
	Data *Record `json:"data"`
}
