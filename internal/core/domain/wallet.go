package domain

import "time"

// Profile maps an authenticated client to its wallet. It lives in the global tenant.
type Profile struct {
	ClientID string `json:"client_id"`
	WalletID string `json:"wallet_id"`
	Multikey string `json:"multikey"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// DIDKey returns the did:key of the profile holder
func (p *Profile) DIDKey() string {
	return "did:key:" + p.Multikey
}

// Wallet is the agent sub wallet of a tenant, stored in its own profile
type Wallet struct {
	WalletID  string    `json:"wallet_id"`
	WalletKey string    `json:"wallet_key"`
	Token     string    `json:"token,omitempty"`
	Label     string    `json:"label,omitempty"`
	Multikey  string    `json:"multikey,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session binds an http client to a wallet
type Session struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	WalletID string `json:"wallet_id"`
}
