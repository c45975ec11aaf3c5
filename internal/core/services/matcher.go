package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/log"
)

const (
	defaultRequestName = "Presentation Request"
	multikeyPrefix     = "z"
)

// multicodec prefix of an ed25519 public key
var ed25519Multicodec = []byte{0xed, 0x01}

var (
	// ErrUnsupportedDIDMethod is returned when a DIDAuthentication query accepts no method we can bind
	ErrUnsupportedDIDMethod = errors.New("unsupported did method")
	// ErrNoHolderBinding is returned when the wallet multikey cannot be used as a did:key
	ErrNoHolderBinding = errors.New("no usable holder key")
	// ErrQueryUnsatisfied is returned when a required credential query has no acceptable credential
	ErrQueryUnsatisfied = errors.New("credential query cannot be satisfied")
)

// PresentationDraft is an unsigned presentation and the options it has to be signed with
type PresentationDraft struct {
	Presentation domain.Presentation
	Options      domain.ProofOptions
	Reasons      []string
}

// Matcher selects held credentials answering verifier queries. It never signs.
type Matcher struct{}

// NewMatcher returns a Matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match builds the presentation answering req with the held credentials.
// Credentials are considered in storage order and the first eligible one wins.
// held is never modified.
func (m *Matcher) Match(ctx context.Context, multikey string, held []domain.Document, req domain.VerifiablePresentationRequest) (*PresentationDraft, error) {
	draft := &PresentationDraft{
		Presentation: domain.Presentation{
			Context: []string{domain.ContextCredentialsV2},
			Type:    []string{domain.TypeVerifiablePresentation},
		},
		Options: domain.ProofOptions{
			ProofType:    domain.TypeEd25519Signature2020,
			Domain:       req.Domain,
			Challenge:    req.Challenge,
			ProofPurpose: domain.ProofPurposeAuthentication,
		},
	}

	for _, query := range req.Query {
		switch query.Type {
		case domain.QueryDIDAuthentication:
			if err := m.bindHolder(draft, query, multikey); err != nil {
				log.Warn(ctx, "abandoning did authentication", "err", err, "methods", query.Methods())
				return nil, err
			}
		case domain.QueryByExample:
			for i, cq := range query.CredentialQuery {
				vc, eligible := m.selectCredential(held, cq)
				if !eligible {
					if cq.IsRequired() {
						return nil, fmt.Errorf("%w: query %d", ErrQueryUnsatisfied, i)
					}
					log.Debug(ctx, "skipping optional credential query", "query", i)
					continue
				}
				if vc == nil {
					log.Warn(ctx, "skipping credential without accepted proof", "query", i, "accepted", cq.AcceptedCryptosuites)
					continue
				}
				draft.Presentation.VerifiableCredential = append(draft.Presentation.VerifiableCredential, vc)
				if cq.Reason != "" {
					draft.Reasons = append(draft.Reasons, cq.Reason)
				}
			}
		default:
			log.Warn(ctx, "ignoring unknown query type", "type", query.Type)
		}
	}
	return draft, nil
}

func (m *Matcher) bindHolder(draft *PresentationDraft, query domain.Query, multikey string) error {
	if !contains(query.Methods(), domain.DIDMethodKey) {
		return ErrUnsupportedDIDMethod
	}
	if err := ValidateMultikey(multikey); err != nil {
		return err
	}
	did := "did:key:" + multikey
	draft.Presentation.Holder = did
	draft.Options.VerificationMethod = did + "#" + multikey
	return nil
}

// selectCredential returns a copy of the first eligible credential carrying only its first accepted proof.
// The copy is nil when the eligible credential has no accepted proof. eligible is false when no credential matches.
func (m *Matcher) selectCredential(held []domain.Document, cq domain.CredentialQuery) (vc domain.Document, eligible bool) {
	for _, doc := range held {
		if !isSuperset(doc.Types(), cq.Example.Type) || !isSuperset(doc.Contexts(), cq.Example.Context) {
			continue
		}
		vc = doc.Clone()
		proofs := acceptedProofs(vc.Proofs(), cq.AcceptedCryptosuites)
		if len(proofs) == 0 {
			return nil, true
		}
		vc["proof"] = proofs[0]
		return vc, true
	}
	return nil, false
}

// acceptedProofs keeps the proofs whose cryptosuite, or type for non data integrity proofs, is accepted.
// An empty accepted list accepts every proof.
func acceptedProofs(proofs []map[string]any, accepted domain.Cryptosuites) []map[string]any {
	if len(accepted) == 0 {
		return proofs
	}
	out := make([]map[string]any, 0, len(proofs))
	for _, p := range proofs {
		typ, _ := p["type"].(string)
		name := typ
		if typ == domain.TypeDataIntegrityProof {
			name, _ = p["cryptosuite"].(string)
		}
		if accepted.Contains(name) {
			out = append(out, p)
		}
	}
	return out
}

// ValidateMultikey checks that multikey is a base58btc encoded ed25519 public key
func ValidateMultikey(multikey string) error {
	if !strings.HasPrefix(multikey, multikeyPrefix) {
		return fmt.Errorf("%w: not base58btc", ErrNoHolderBinding)
	}
	raw, err := base58.Decode(strings.TrimPrefix(multikey, multikeyPrefix))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoHolderBinding, err)
	}
	if len(raw) != len(ed25519Multicodec)+32 || raw[0] != ed25519Multicodec[0] || raw[1] != ed25519Multicodec[1] {
		return fmt.Errorf("%w: not an ed25519 key", ErrNoHolderBinding)
	}
	return nil
}

// MatchAnonCredsRequest reports, for every requested attribute and predicate of record, which held credential answers it
func (m *Matcher) MatchAnonCredsRequest(record *domain.PresExRecord, verifierName string, held []domain.Document) *domain.PresentationView {
	request := record.ByFormat.PresRequest.Request()
	view := &domain.PresentationView{
		ExchangeID:        record.PresExID,
		ConnectionID:      record.ConnectionID,
		VerifierName:      firstNonEmpty(verifierName, defaultVerifierName),
		RequestName:       firstNonEmpty(request.Name, defaultRequestName),
		MatchedAttributes: []domain.MatchedAttribute{},
		MatchedPredicates: []domain.MatchedPredicate{},
		CanRespond:        true,
	}

	for _, id := range sortedKeys(request.RequestedAttributes) {
		attr := request.RequestedAttributes[id]
		for _, name := range attr.AttributeNames() {
			matched := domain.MatchedAttribute{
				ID:           id + "_" + name,
				Name:         name,
				Restrictions: attr.Restrictions,
			}
			if doc, value, ok := findClaim(held, name, attr.Restrictions); ok {
				matched.Value = value
				matched.CredentialName = doc.Name()
				matched.IssuerName = doc.IssuerName()
				matched.HasMatch = true
			}
			view.CanRespond = view.CanRespond && matched.HasMatch
			view.MatchedAttributes = append(view.MatchedAttributes, matched)
		}
	}

	for _, id := range sortedKeys(request.RequestedPredicates) {
		pred := request.RequestedPredicates[id]
		pType := firstNonEmpty(pred.PType, PredicateGE)
		matched := domain.MatchedPredicate{
			ID:     id,
			Name:   pred.Name,
			PType:  pType,
			PValue: pred.PValue,
		}
		if doc, value, ok := findClaim(held, pred.Name, pred.Restrictions); ok {
			matched.ActualValue = value
			matched.MeetsCondition = EvaluatePredicate(pType, value, pred.PValue)
			matched.CredentialName = doc.Name()
			matched.IssuerName = doc.IssuerName()
			matched.HasMatch = true
		}
		view.CanRespond = view.CanRespond && matched.HasMatch && matched.MeetsCondition
		view.MatchedPredicates = append(view.MatchedPredicates, matched)
	}
	return view
}

// findClaim returns the first credential holding claim name and satisfying one of the restrictions
func findClaim(held []domain.Document, name string, restrictions []map[string]any) (domain.Document, any, bool) {
	for _, doc := range held {
		value, ok := doc.Subject()[name]
		if !ok || !satisfiesRestrictions(doc, restrictions) {
			continue
		}
		return doc, value, true
	}
	return nil, nil, false
}

// satisfiesRestrictions applies anoncreds restrictions: any of the groups, every known field of a group.
// Fields we cannot read from a canonical document are not checked.
func satisfiesRestrictions(doc domain.Document, restrictions []map[string]any) bool {
	if len(restrictions) == 0 {
		return true
	}
	schema, _ := doc["credentialSchema"].(map[string]any)
	fields := map[string]string{
		"schema_id":      stringField(schema, "id"),
		"schema_name":    stringField(schema, "name"),
		"schema_version": stringField(schema, "version"),
		"cred_def_id":    credDefID(doc),
		"issuer_id":      doc.IssuerID(),
		"issuer_did":     doc.IssuerID(),
	}
	for _, group := range restrictions {
		ok := true
		for k, want := range group {
			got, known := fields[k]
			if !known {
				continue
			}
			if s, _ := want.(string); s != got {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// credDefID returns the credential definition an anoncreds proof was made with
func credDefID(doc domain.Document) string {
	for _, p := range doc.Proofs() {
		if suite, _ := p["cryptosuite"].(string); suite == domain.CryptosuiteAnonCreds {
			return stringField(p, "verificationMethod")
		}
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func isSuperset(have []string, want []string) bool {
	for _, w := range want {
		if !contains(have, w) {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
