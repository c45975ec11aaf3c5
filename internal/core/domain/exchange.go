package domain

// CredentialOffer summarises an offer waiting for the user decision
type CredentialOffer struct {
	ExchangeID   string                  `json:"exchange_id"`
	ConnectionID string                  `json:"connection_id"`
	State        CredentialExchangeState `json:"state"`
	Timestamp    string                  `json:"timestamp"`
	UpdatedAt    string                  `json:"updated_at,omitempty"`
	Comment      string                  `json:"comment,omitempty"`
	Preview      map[string]string       `json:"preview"`
	SchemaID     string                  `json:"schema_id,omitempty"`
	CredDefID    string                  `json:"cred_def_id,omitempty"`
}

// PresentationRequest summarises a proof request waiting for the user decision
type PresentationRequest struct {
	ExchangeID   string                        `json:"exchange_id"`
	ConnectionID string                        `json:"connection_id"`
	State        PresentationExchangeState     `json:"state"`
	Timestamp    string                        `json:"timestamp"`
	UpdatedAt    string                        `json:"updated_at,omitempty"`
	Name         string                        `json:"name,omitempty"`
	Comment      string                        `json:"comment,omitempty"`
	Attributes   map[string]RequestedAttribute `json:"attributes"`
	Predicates   map[string]RequestedPredicate `json:"predicates"`
}

// ClosedExchange marks an exchange that reached a terminal state. Events arriving later cannot reopen it.
type ClosedExchange struct {
	ExchangeID string `json:"exchange_id"`
	Reason     string `json:"reason"`
	ClosedAt   string `json:"closed_at"`
}

// OfferView is an offer enriched with display metadata
type OfferView struct {
	ExchangeID     string            `json:"exchange_id"`
	CredentialName string            `json:"credential_name"`
	IssuerName     string            `json:"issuer_name"`
	IssuerImage    string            `json:"issuer_image,omitempty"`
	Attributes     map[string]string `json:"attributes"`
	State          string            `json:"state"`
}

// MatchedAttribute reports how a requested attribute is satisfied by held credentials
type MatchedAttribute struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Value          any              `json:"value"`
	CredentialName string           `json:"credential_name,omitempty"`
	IssuerName     string           `json:"issuer_name,omitempty"`
	HasMatch       bool             `json:"has_match"`
	Restrictions   []map[string]any `json:"restrictions,omitempty"`
}

// MatchedPredicate reports whether a requested predicate holds for held credentials
type MatchedPredicate struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PType          string `json:"p_type"`
	PValue         any    `json:"p_value"`
	ActualValue    any    `json:"actual_value"`
	MeetsCondition bool   `json:"meets_condition"`
	CredentialName string `json:"credential_name,omitempty"`
	IssuerName     string `json:"issuer_name,omitempty"`
	HasMatch       bool   `json:"has_match"`
}

// PresentationView is a proof request matched against the wallet content
type PresentationView struct {
	ExchangeID        string             `json:"exchange_id"`
	ConnectionID      string             `json:"connection_id"`
	VerifierName      string             `json:"verifier_name"`
	RequestName       string             `json:"request_name"`
	MatchedAttributes []MatchedAttribute `json:"matched_attributes"`
	MatchedPredicates []MatchedPredicate `json:"matched_predicates"`
	CanRespond        bool               `json:"can_respond"`
}
