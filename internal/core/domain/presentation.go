package domain

import (
	"bytes"
	"encoding/json"
)

// VC API query types
const (
	QueryDIDAuthentication = "DIDAuthentication"
	QueryByExample         = "QueryByExample"

	DIDMethodKey = "key"

	ProofPurposeAuthentication  = "authentication"
	ProofPurposeAssertionMethod = "assertionMethod"
)

// VerifiablePresentationRequest is a VC API presentation request
type VerifiablePresentationRequest struct {
	Query     Queries `json:"query"`
	Challenge string  `json:"challenge,omitempty"`
	Domain    string  `json:"domain,omitempty"`
}

// Query is one typed query of a presentation request
type Query struct {
	Type            string            `json:"type"`
	AcceptedMethods []AcceptedMethod  `json:"acceptedMethods,omitempty"`
	CredentialQuery CredentialQueries `json:"credentialQuery,omitempty"`
}

// Methods returns the accepted did method names
func (q Query) Methods() []string {
	out := make([]string, 0, len(q.AcceptedMethods))
	for _, m := range q.AcceptedMethods {
		out = append(out, m.Method)
	}
	return out
}

// AcceptedMethod is an accepted DID method. Both {"method": "key"} and "key" are understood.
type AcceptedMethod struct {
	Method string `json:"method"`
}

// UnmarshalJSON implements json.Unmarshaler
func (m *AcceptedMethod) UnmarshalJSON(b []byte) error {
	if isJSONString(b) {
		return json.Unmarshal(b, &m.Method)
	}
	type plain AcceptedMethod
	return json.Unmarshal(b, (*plain)(m))
}

// CredentialQuery asks for one credential by example
type CredentialQuery struct {
	Required             *bool             `json:"required,omitempty"`
	Reason               string            `json:"reason,omitempty"`
	Example              CredentialExample `json:"example"`
	AcceptedCryptosuites Cryptosuites      `json:"acceptedCryptosuites,omitempty"`
}

// IsRequired reports whether the query must be satisfied. Queries are required unless told otherwise.
func (q CredentialQuery) IsRequired() bool {
	return q.Required == nil || *q.Required
}

// CredentialExample is the shape a matching credential must have
type CredentialExample struct {
	Context StringSet `json:"@context"`
	Type    StringSet `json:"type"`
}

// Queries accepts a single query object or a list of them
type Queries []Query

// UnmarshalJSON implements json.Unmarshaler
func (q *Queries) UnmarshalJSON(b []byte) error {
	return unmarshalOneOrMany(b, (*[]Query)(q))
}

// CredentialQueries accepts a single credential query object or a list of them
type CredentialQueries []CredentialQuery

// UnmarshalJSON implements json.Unmarshaler
func (q *CredentialQueries) UnmarshalJSON(b []byte) error {
	return unmarshalOneOrMany(b, (*[]CredentialQuery)(q))
}

// StringSet accepts a string or a list of strings. Non string items are ignored.
type StringSet []string

// UnmarshalJSON implements json.Unmarshaler
func (s *StringSet) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = StringList(v)
	return nil
}

// Cryptosuites accepts items as plain names or as {"cryptosuite": name} objects
type Cryptosuites []string

// UnmarshalJSON implements json.Unmarshaler
func (c *Cryptosuites) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := unmarshalOneOrMany(b, &items); err != nil {
		return err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if isJSONString(item) {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			out = append(out, s)
			continue
		}
		var obj struct {
			Cryptosuite string `json:"cryptosuite"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return err
		}
		if obj.Cryptosuite != "" {
			out = append(out, obj.Cryptosuite)
		}
	}
	*c = out
	return nil
}

// Contains reports whether name is an accepted cryptosuite
func (c Cryptosuites) Contains(name string) bool {
	for _, s := range c {
		if s == name {
			return true
		}
	}
	return false
}

// ProofOptions are the options given to the agent when signing a presentation
type ProofOptions struct {
	ProofType          string `json:"proofType"`
	Cryptosuite        string `json:"cryptosuite,omitempty"`
	Domain             string `json:"domain,omitempty"`
	Challenge          string `json:"challenge,omitempty"`
	ProofPurpose       string `json:"proofPurpose"`
	VerificationMethod string `json:"verificationMethod,omitempty"`
}

// Presentation is an unsigned verifiable presentation
type Presentation struct {
	Context              []string   `json:"@context"`
	Type                 []string   `json:"type"`
	Holder               string     `json:"holder,omitempty"`
	VerifiableCredential []Document `json:"verifiableCredential,omitempty"`
}

// VCAPIExchangeResponse is the answer of a VC API exchange endpoint
type VCAPIExchangeResponse struct {
	VerifiablePresentation        *VerifiablePresentation        `json:"verifiablePresentation,omitempty"`
	VerifiablePresentationRequest *VerifiablePresentationRequest `json:"verifiablePresentationRequest,omitempty"`
	RedirectURL                   string                         `json:"redirectUrl,omitempty"`
}

// VerifiablePresentation is a presentation received from or sent to a VC API exchange
type VerifiablePresentation struct {
	Context              StringSet  `json:"@context,omitempty"`
	Type                 StringSet  `json:"type,omitempty"`
	Holder               string     `json:"holder,omitempty"`
	VerifiableCredential []Document `json:"verifiableCredential,omitempty"`
	Proof                any        `json:"proof,omitempty"`
}

func unmarshalOneOrMany[T any](b []byte, out *[]T) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, out)
	}
	if bytes.Equal(b, []byte("null")) {
		*out = nil
		return nil
	}
	var one T
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*out = []T{one}
	return nil
}

func isJSONString(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '"'
}
