package services

import (
	"strings"
	"time"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/urn"
)

const (
	defaultCredentialName = "Credential"
	defaultIssuerName     = "Unknown Issuer"
	defaultVerifierName   = "Unknown Verifier"
	unknownIssuerID       = "did:unknown"
	proofPurposeAssertion = "assertionMethod"
)

// Credential metadata tags
const (
	TagSchemaID       = "schema_id"
	TagSchemaName     = "schema_name"
	TagSchemaVersion  = "schema_version"
	TagCredDefID      = "cred_def_id"
	TagCredDefTag     = "cred_def_tag"
	TagCredExID       = "cred_ex_id"
	TagIssuerID       = "issuer_id"
	TagIssuerName     = "issuer_name"
	TagCredentialName = "credential_name"
	TagReceivedAt     = "received_at"
)

// BeautifyInput is the agent data a canonical credential is built from
type BeautifyInput struct {
	Attributes    map[string]string
	SchemaID      string
	SchemaName    string
	SchemaVersion string
	CredDefID     string
	CredDefTag    string
	IssuerID      string
	IssuerName    string
	IssuerImage   string
	IssuedAt      string
	ExchangeID    string
}

// Beautify maps an anoncreds credential into a W3C v2 credential document and the tags it is stored with.
// The tags are bookkeeping data and are never part of the document.
func Beautify(in BeautifyInput) (*domain.Credential, domain.Tags) {
	now := time.Now().UTC().Format(time.RFC3339)

	name := firstNonEmpty(in.CredDefTag, in.SchemaName, defaultCredentialName)
	issuerID := firstNonEmpty(in.IssuerID, domain.IssuerFromCredDefID(in.CredDefID), unknownIssuerID)
	issuerName := firstNonEmpty(in.IssuerName, defaultIssuerName)
	validFrom := firstNonEmpty(in.IssuedAt, now)

	subject := make(map[string]any, len(in.Attributes))
	for k, v := range in.Attributes {
		subject[k] = v
	}

	credential := &domain.Credential{
		Context: []string{domain.ContextCredentialsV2, domain.ContextUndefinedTermsV2},
		Type:    credentialTypes(firstNonEmpty(in.SchemaName, name)),
		Name:    name,
		Issuer: domain.CredentialIssuer{
			ID:    issuerID,
			Name:  issuerName,
			Image: in.IssuerImage,
		},
		ValidFrom:         validFrom,
		CredentialSubject: subject,
	}
	if in.ExchangeID != "" {
		credential.ID = urn.FromExchangeID(in.ExchangeID).String()
	}
	if in.SchemaID != "" {
		credential.CredentialSchema = &domain.CredentialSchema{
			ID:          in.SchemaID,
			Type:        domain.TypeAnonCredsSchema,
			Name:        in.SchemaName,
			Version:     in.SchemaVersion,
			Description: in.SchemaVersion,
		}
	}
	if in.CredDefID != "" {
		credential.Proof = domain.DataIntegrityProof{
			Type:               domain.TypeDataIntegrityProof,
			Cryptosuite:        domain.CryptosuiteAnonCreds,
			Created:            validFrom,
			VerificationMethod: in.CredDefID,
			ProofPurpose:       proofPurposeAssertion,
		}
	}

	tags := domain.Tags{}
	for k, v := range map[string]string{
		TagSchemaID:       in.SchemaID,
		TagSchemaName:     in.SchemaName,
		TagSchemaVersion:  in.SchemaVersion,
		TagCredDefID:      in.CredDefID,
		TagCredDefTag:     in.CredDefTag,
		TagCredExID:       in.ExchangeID,
		TagIssuerID:       issuerID,
		TagIssuerName:     issuerName,
		TagCredentialName: name,
		TagReceivedAt:     now,
	} {
		if v != "" {
			tags[k] = v
		}
	}
	return credential, tags
}

// credentialTypes returns the base type followed by the compacted schema name
func credentialTypes(schemaName string) []string {
	types := []string{domain.TypeVerifiableCredential}
	if t := strings.ReplaceAll(schemaName, " ", ""); t != "" && t != domain.TypeVerifiableCredential {
		types = append(types, t)
	}
	return types
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
