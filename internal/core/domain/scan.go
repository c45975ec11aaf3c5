package domain

// ScanResultType classifies a scanned payload
type ScanResultType string

// Scan result types
const (
	ScanInteractionURL         ScanResultType = "iuv"
	ScanOOBInvitation          ScanResultType = "oob_invitation"
	ScanOOBPresentationRequest ScanResultType = "oob_presentation_request"
	ScanUnknown                ScanResultType = "unknown"
)

// ScanResult reports what was done with a scanned payload
type ScanResult struct {
	Type              ScanResultType `json:"type"`
	OobID             string         `json:"oob_id,omitempty"`
	ConnectionID      string         `json:"connection_id,omitempty"`
	Forwarded         bool           `json:"forwarded,omitempty"`
	CredentialsStored int            `json:"credentials_stored,omitempty"`
	PresentationSent  bool           `json:"presentation_sent,omitempty"`
	RedirectURL       string         `json:"redirect_url,omitempty"`
}
