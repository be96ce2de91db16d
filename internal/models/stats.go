package models

// ServerStats is the backend's statistics overview. Every field is optional;
// nil means absent or null and is distinct from a reported zero.
type ServerStats struct {
	TotalJobs         *int `json:"totalJobs,omitempty"`
	TotalWebsites     *int `json:"totalWebsites,omitempty"`
	ActiveWebsites    *int `json:"activeWebsites,omitempty"`
	RecentJobs        *int `json:"recentJobs,omitempty"`
	ScannedWebsites   *int `json:"scannedWebsites,omitempty"`
	TotalJobDocuments *int `json:"totalJobDocuments,omitempty"`
}

// Summary is the derived statistics view. It is recomputed on every
// aggregation and never cached.
type Summary struct {
	TotalJobs          int      `json:"total_jobs"`
	TotalWebsites      int      `json:"total_websites"`
	ActiveWebsites     int      `json:"active_websites"`
	WebsitesWithErrors int      `json:"websites_with_errors"`
	ScannedWebsites    int      `json:"scanned_websites"`
	ScanResults        *int     `json:"scan_results,omitempty"`
	RecentJobs         *int     `json:"recent_jobs,omitempty"`
	Fallbacks          []string `json:"fallbacks,omitempty"`
}

// ScanStatus mirrors GET /jobs/scanning-status.
type ScanStatus struct {
	IsScanning bool `json:"isScanning"`
}

// ScanResult is the backend's reply to a scan trigger.
type ScanResult struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
