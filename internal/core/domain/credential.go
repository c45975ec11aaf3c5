package domain

import (
	"encoding/json"
	"fmt"
)

// Credential contexts and types used by canonical documents
const (
	ContextCredentialsV2    = "https://www.w3.org/ns/credentials/v2"
	ContextUndefinedTermsV2 = "https://www.w3.org/ns/credentials/undefined-terms/v2"

	TypeVerifiableCredential   = "VerifiableCredential"
	TypeVerifiablePresentation = "VerifiablePresentation"
	TypeAnonCredsSchema        = "AnonCredsSchema"
	TypeDataIntegrityProof     = "DataIntegrityProof"
	TypeEd25519Signature2020   = "Ed25519Signature2020"

	CryptosuiteAnonCreds = "vc-di-ac-2025"
)

// CredentialIssuer is the issuer block of a canonical credential
type CredentialIssuer struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// CredentialSchema describes the schema a credential was issued against
type CredentialSchema struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// DataIntegrityProof is the proof block attached to transformed credentials
type DataIntegrityProof struct {
	Type               string `json:"type"`
	Cryptosuite        string `json:"cryptosuite"`
	Created            string `json:"created,omitempty"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
}

// Credential is the canonical portable credential document.
// Bookkeeping data never goes here, it lives in the storage tags.
type Credential struct {
	Context           []string          `json:"@context"`
	Type              []string          `json:"type"`
	ID                string            `json:"id,omitempty"`
	Name              string            `json:"name,omitempty"`
	Issuer            CredentialIssuer  `json:"issuer"`
	ValidFrom         string            `json:"validFrom"`
	ValidUntil        string            `json:"validUntil,omitempty"`
	CredentialSubject map[string]any    `json:"credentialSubject"`
	CredentialSchema  *CredentialSchema `json:"credentialSchema,omitempty"`
	CredentialStatus  map[string]any    `json:"credentialStatus,omitempty"`
	Proof             any               `json:"proof,omitempty"`
}

// Document returns the generic representation of the credential
func (c *Credential) Document() (Document, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return ParseDocument(raw)
}

// Document is a held credential of any shape
type Document map[string]any

// ParseDocument decodes a json credential
func ParseDocument(raw []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("credential is not an object")
	}
	return d, nil
}

// ID returns the credential id, empty when absent
func (d Document) ID() string {
	s, _ := d["id"].(string)
	return s
}

// Name returns the display name, empty when absent
func (d Document) Name() string {
	s, _ := d["name"].(string)
	return s
}

// Types returns the type labels
func (d Document) Types() []string {
	return StringList(d["type"])
}

// Contexts returns the context uris. Embedded context objects are skipped.
func (d Document) Contexts() []string {
	return StringList(d["@context"])
}

// IssuerID returns the issuer id for both the string and the object forms
func (d Document) IssuerID() string {
	switch v := d["issuer"].(type) {
	case string:
		return v
	case map[string]any:
		s, _ := v["id"].(string)
		return s
	}
	return ""
}

// IssuerName returns the issuer display name when the issuer is an object
func (d Document) IssuerName() string {
	if v, ok := d["issuer"].(map[string]any); ok {
		s, _ := v["name"].(string)
		return s
	}
	return ""
}

// Subject returns the credentialSubject claims. A list of subjects yields the first one.
func (d Document) Subject() map[string]any {
	switch v := d["credentialSubject"].(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) > 0 {
			m, _ := v[0].(map[string]any)
			return m
		}
	}
	return nil
}

// Proofs returns the proof block normalised to a list
func (d Document) Proofs() []map[string]any {
	switch v := d["proof"].(type) {
	case map[string]any:
		return []map[string]any{v}
	case []any:
		proofs := make([]map[string]any, 0, len(v))
		for _, p := range v {
			if m, ok := p.(map[string]any); ok {
				proofs = append(proofs, m)
			}
		}
		return proofs
	}
	return nil
}

// Clone returns a deep copy
func (d Document) Clone() Document {
	raw, err := json.Marshal(d)
	if err != nil {
		return Document{}
	}
	c, err := ParseDocument(raw)
	if err != nil {
		return Document{}
	}
	return c
}

// StringList reads a json value that may be a string or a list of strings
func StringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, i := range t {
			if s, ok := i.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
