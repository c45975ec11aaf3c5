package domain

import "strings"

// PreviewAttribute is one attribute of a credential preview
type PreviewAttribute struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	MimeType string `json:"mime-type,omitempty"`
}

// CredentialPreview lists the attributes offered by the issuer
type CredentialPreview struct {
	Type       string             `json:"@type,omitempty"`
	Attributes []PreviewAttribute `json:"attributes"`
}

// CredOfferMessage is the offer message held by a credential exchange record
type CredOfferMessage struct {
	Comment           string            `json:"comment,omitempty"`
	CredentialPreview CredentialPreview `json:"credential_preview"`
}

// AnonCredsFilter identifies schema and credential definition of an anoncreds exchange
type AnonCredsFilter struct {
	SchemaID  string `json:"schema_id,omitempty"`
	CredDefID string `json:"cred_def_id,omitempty"`
	IssuerID  string `json:"issuer_id,omitempty"`
}

// CredExFormat holds the format specific part of an exchange message
type CredExFormat struct {
	AnonCreds *AnonCredsFilter `json:"anoncreds,omitempty"`
	Indy      *AnonCredsFilter `json:"indy,omitempty"`
}

// Filter returns the anoncreds data, falling back to the legacy indy format
func (f CredExFormat) Filter() AnonCredsFilter {
	if f.AnonCreds != nil {
		return *f.AnonCreds
	}
	if f.Indy != nil {
		return *f.Indy
	}
	return AnonCredsFilter{}
}

// CredExByFormat holds the format specific messages of an exchange
type CredExByFormat struct {
	CredOffer CredExFormat `json:"cred_offer"`
}

// CredExRecord is an issue-credential v2 exchange record, as sent in webhooks
type CredExRecord struct {
	CredExID     string                  `json:"cred_ex_id"`
	ConnectionID string                  `json:"connection_id"`
	State        CredentialExchangeState `json:"state"`
	Role         string                  `json:"role,omitempty"`
	CreatedAt    string                  `json:"created_at,omitempty"`
	UpdatedAt    string                  `json:"updated_at,omitempty"`
	CredOffer    *CredOfferMessage       `json:"cred_offer,omitempty"`
	CredPreview  *CredentialPreview      `json:"cred_preview,omitempty"`
	ByFormat     CredExByFormat          `json:"by_format"`
	ErrorMsg     string                  `json:"error_msg,omitempty"`
}

// Attributes returns the previewed attributes keyed by name
func (r *CredExRecord) Attributes() map[string]string {
	var attrs []PreviewAttribute
	switch {
	case r.CredOffer != nil && len(r.CredOffer.CredentialPreview.Attributes) > 0:
		attrs = r.CredOffer.CredentialPreview.Attributes
	case r.CredPreview != nil:
		attrs = r.CredPreview.Attributes
	}
	preview := make(map[string]string, len(attrs))
	for _, a := range attrs {
		preview[a.Name] = a.Value
	}
	return preview
}

// Comment returns the offer comment
func (r *CredExRecord) Comment() string {
	if r.CredOffer == nil {
		return ""
	}
	return r.CredOffer.Comment
}

// SchemaID returns the anoncreds schema id of the offer
func (r *CredExRecord) SchemaID() string {
	return r.ByFormat.CredOffer.Filter().SchemaID
}

// CredDefID returns the anoncreds credential definition id of the offer
func (r *CredExRecord) CredDefID() string {
	return r.ByFormat.CredOffer.Filter().CredDefID
}

// CredExDetail is the agent answer when fetching one credential exchange
type CredExDetail struct {
	CredExRecord CredExRecord `json:"cred_ex_record"`
}

// RequestedAttribute is a requested attribute group of an anoncreds proof request
type RequestedAttribute struct {
	Name         string           `json:"name,omitempty"`
	Names        []string         `json:"names,omitempty"`
	Restrictions []map[string]any `json:"restrictions,omitempty"`
	NonRevoked   map[string]any   `json:"non_revoked,omitempty"`
}

// AttributeNames returns names, or name when names is not used
func (a RequestedAttribute) AttributeNames() []string {
	if len(a.Names) > 0 {
		return a.Names
	}
	if a.Name != "" {
		return []string{a.Name}
	}
	return nil
}

// RequestedPredicate is a requested predicate of an anoncreds proof request
type RequestedPredicate struct {
	Name         string           `json:"name"`
	PType        string           `json:"p_type"`
	PValue       any              `json:"p_value"`
	Restrictions []map[string]any `json:"restrictions,omitempty"`
	NonRevoked   map[string]any   `json:"non_revoked,omitempty"`
}

// AnonCredsProofRequest is the anoncreds part of a presentation request
type AnonCredsProofRequest struct {
	Name                string                        `json:"name,omitempty"`
	Version             string                        `json:"version,omitempty"`
	Nonce               string                        `json:"nonce,omitempty"`
	RequestedAttributes map[string]RequestedAttribute `json:"requested_attributes"`
	RequestedPredicates map[string]RequestedPredicate `json:"requested_predicates"`
}

// PresExFormat holds the format specific proof request
type PresExFormat struct {
	AnonCreds *AnonCredsProofRequest `json:"anoncreds,omitempty"`
	Indy      *AnonCredsProofRequest `json:"indy,omitempty"`
}

// Request returns the anoncreds request, falling back to the legacy indy format
func (f PresExFormat) Request() AnonCredsProofRequest {
	if f.AnonCreds != nil {
		return *f.AnonCreds
	}
	if f.Indy != nil {
		return *f.Indy
	}
	return AnonCredsProofRequest{}
}

// PresExByFormat holds the format specific messages of a presentation exchange
type PresExByFormat struct {
	PresRequest PresExFormat `json:"pres_request"`
}

// PresRequestMessage is the request message held by a presentation exchange record
type PresRequestMessage struct {
	Comment string `json:"comment,omitempty"`
}

// PresExRecord is a present-proof v2 exchange record
type PresExRecord struct {
	PresExID     string                    `json:"pres_ex_id"`
	ConnectionID string                    `json:"connection_id"`
	State        PresentationExchangeState `json:"state"`
	Role         string                    `json:"role,omitempty"`
	CreatedAt    string                    `json:"created_at,omitempty"`
	UpdatedAt    string                    `json:"updated_at,omitempty"`
	PresRequest  *PresRequestMessage       `json:"pres_request,omitempty"`
	ByFormat     PresExByFormat            `json:"by_format"`
}

// ConnectionRecord is a connection record of the agent
type ConnectionRecord struct {
	ConnectionID string          `json:"connection_id"`
	State        ConnectionState `json:"state"`
	RFC23State   string          `json:"rfc23_state,omitempty"`
	TheirLabel   string          `json:"their_label,omitempty"`
	TheirDID     string          `json:"their_did,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}

// AnonCredsSchema is an anoncreds schema
type AnonCredsSchema struct {
	IssuerID  string   `json:"issuerId"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	AttrNames []string `json:"attrNames"`
}

// SchemaResult is the agent answer when resolving a schema
type SchemaResult struct {
	SchemaID string          `json:"schema_id"`
	Schema   AnonCredsSchema `json:"schema"`
}

// AnonCredsCredDef is an anoncreds credential definition
type AnonCredsCredDef struct {
	IssuerID string `json:"issuerId"`
	SchemaID string `json:"schemaId"`
	Type     string `json:"type"`
	Tag      string `json:"tag"`
}

// CredDefResult is the agent answer when resolving a credential definition
type CredDefResult struct {
	CredentialDefinitionID string           `json:"credential_definition_id"`
	CredentialDefinition   AnonCredsCredDef `json:"credential_definition"`
}

// IssuerFromCredDefID returns the part of the credential definition id before its first slash
func IssuerFromCredDefID(credDefID string) string {
	if credDefID == "" {
		return ""
	}
	issuer, _, _ := strings.Cut(credDefID, "/")
	return issuer
}

// CredInfo describes a wallet credential matching a presentation request
type CredInfo struct {
	Referent  string            `json:"referent"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	SchemaID  string            `json:"schema_id,omitempty"`
	CredDefID string            `json:"cred_def_id,omitempty"`
	RevRegID  string            `json:"rev_reg_id,omitempty"`
	CredRevID string            `json:"cred_rev_id,omitempty"`
}

// NonRevokedInterval is a revocation interval
type NonRevokedInterval struct {
	From *int64 `json:"from,omitempty"`
	To   *int64 `json:"to,omitempty"`
}

// MatchingCredential is a wallet credential able to answer some referents of a request
type MatchingCredential struct {
	CredInfo              CredInfo            `json:"cred_info"`
	Interval              *NonRevokedInterval `json:"interval,omitempty"`
	PresentationReferents []string            `json:"presentation_referents"`
}

// BasicMessage is a basicmessages webhook payload
type BasicMessage struct {
	ConnectionID string            `json:"connection_id"`
	MessageID    string            `json:"message_id,omitempty"`
	Content      string            `json:"content"`
	State        BasicMessageState `json:"state"`
	SentTime     string            `json:"sent_time,omitempty"`
}

// SubWallet is the agent answer when creating a tenant wallet
type SubWallet struct {
	WalletID  string `json:"wallet_id"`
	Token     string `json:"token"`
	CreatedAt string `json:"created_at,omitempty"`
}

// WalletKey is a key created in a tenant wallet
type WalletKey struct {
	Kid      string `json:"kid,omitempty"`
	Multikey string `json:"multikey"`
}

// RequestedCredential binds a proof request referent to a wallet credential
type RequestedCredential struct {
	CredID    string `json:"cred_id"`
	Revealed  *bool  `json:"revealed,omitempty"`
	Timestamp *int64 `json:"timestamp,omitempty"`
}

// AnonCredsPresSpec is the anoncreds part of a presentation response
type AnonCredsPresSpec struct {
	RequestedAttributes    map[string]RequestedCredential `json:"requested_attributes"`
	RequestedPredicates    map[string]RequestedCredential `json:"requested_predicates"`
	SelfAttestedAttributes map[string]string              `json:"self_attested_attributes"`
}

// PresentationSpec is the body of a send-presentation call
type PresentationSpec struct {
	AnonCreds AnonCredsPresSpec `json:"anoncreds"`
	Trace     bool              `json:"trace"`
}

// OobRecord is the agent answer when receiving an out of band invitation
type OobRecord struct {
	OobID        string `json:"oob_id"`
	State        string `json:"state"`
	ConnectionID string `json:"connection_id,omitempty"`
	InviMsgID    string `json:"invi_msg_id,omitempty"`
}
