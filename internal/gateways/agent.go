package gateways

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/pkg/errors"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/pkg/http"
)

const (
	walletTypeAskarAnonCreds = "askar-anoncreds"
	keyManagementManaged     = "managed"
	keyAlgorithmEd25519      = "ed25519"
	adminAPIKeyHeader        = "X-API-KEY"
)

// Agent is a client of the remote credential agent admin api
type Agent struct {
	conn     *http.Client
	endpoint string
	apiKey   string
}

// NewAgent returns an agent client. endpoint is the admin api base url without trailing slash.
func NewAgent(conn *http.Client, endpoint string, apiKey string) *Agent {
	return &Agent{
		conn:     conn,
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

var _ ports.AgentGateway = (*Agent)(nil)

type createWalletRequest struct {
	Label             string `json:"label"`
	WalletKey         string `json:"wallet_key"`
	WalletName        string `json:"wallet_name"`
	WalletType        string `json:"wallet_type"`
	KeyManagementMode string `json:"key_management_mode"`
}

// CreateSubWallet creates a managed askar-anoncreds tenant wallet
func (a *Agent) CreateSubWallet(ctx context.Context, label string, walletName string, walletKey string) (*domain.SubWallet, bool) {
	log.Info(ctx, "creating sub wallet", "wallet_name", walletName)
	var wallet domain.SubWallet
	req := createWalletRequest{
		Label:             label,
		WalletKey:         walletKey,
		WalletName:        walletName,
		WalletType:        walletTypeAskarAnonCreds,
		KeyManagementMode: keyManagementManaged,
	}
	if !a.post(ctx, "/multitenancy/wallet", req, &wallet, a.admin()) || wallet.WalletID == "" {
		return nil, false
	}
	return &wallet, true
}

// RequestToken asks for a new bearer token of a tenant wallet
func (a *Agent) RequestToken(ctx context.Context, walletID string, walletKey string) (string, bool) {
	log.Debug(ctx, "requesting access token", "wallet_id", walletID)
	var resp struct {
		Token string `json:"token"`
	}
	path := "/multitenancy/wallet/" + url.PathEscape(walletID) + "/token"
	if !a.post(ctx, path, map[string]string{"wallet_key": walletKey}, &resp, a.admin()) || resp.Token == "" {
		return "", false
	}
	return resp.Token, true
}

// ForTenant returns a handle whose calls are authorized with token
func (a *Agent) ForTenant(token string) ports.TenantAgent {
	return &tenantAgent{agent: a, auth: http.WithBearerToken(token)}
}

func (a *Agent) admin() http.RequestOption {
	return http.WithHeader(adminAPIKeyHeader, a.apiKey)
}

func (a *Agent) get(ctx context.Context, path string, out any, opts ...http.RequestOption) bool {
	resp, err := a.conn.Get(ctx, a.endpoint+path, opts...)
	return a.decode(ctx, path, resp, err, out)
}

func (a *Agent) post(ctx context.Context, path string, body any, out any, opts ...http.RequestOption) bool {
	req, err := json.Marshal(body)
	if err != nil {
		log.Error(ctx, "encoding agent request", "err", errors.WithStack(err), "path", path)
		return false
	}
	resp, err := a.conn.Post(ctx, a.endpoint+path, req, opts...)
	return a.decode(ctx, path, resp, err, out)
}

func (a *Agent) delete(ctx context.Context, path string, opts ...http.RequestOption) bool {
	resp, err := a.conn.Delete(ctx, a.endpoint+path, opts...)
	return a.decode(ctx, path, resp, err, nil)
}

// decode logs failed calls and unmarshals successful answers into out, if any
func (a *Agent) decode(ctx context.Context, path string, resp []byte, err error, out any) bool {
	if err != nil {
		var statusErr *http.StatusError
		if errors.As(err, &statusErr) {
			log.Warn(ctx, "agent request failed", "path", path, "status", statusErr.StatusCode, "body", string(statusErr.Body))
		} else {
			log.Warn(ctx, "agent request failed", "path", path, "err", err)
		}
		return false
	}
	if out == nil {
		return true
	}
	if err := json.Unmarshal(resp, out); err != nil {
		log.Warn(ctx, "undecodable agent answer", "path", path, "err", err, "body", string(resp))
		return false
	}
	return true
}

type tenantAgent struct {
	agent *Agent
	auth  http.RequestOption
}

func (t *tenantAgent) CreateKey(ctx context.Context) (*domain.WalletKey, bool) {
	var key domain.WalletKey
	if !t.agent.post(ctx, "/wallet/keys", map[string]string{"alg": keyAlgorithmEd25519}, &key, t.auth) || key.Multikey == "" {
		return nil, false
	}
	return &key, true
}

func (t *tenantAgent) GetConnection(ctx context.Context, connectionID string) (*domain.ConnectionRecord, bool) {
	if connectionID == "" {
		return nil, false
	}
	var conn domain.ConnectionRecord
	if !t.agent.get(ctx, "/connections/"+url.PathEscape(connectionID), &conn, t.auth) {
		return nil, false
	}
	return &conn, true
}

func (t *tenantAgent) GetSchema(ctx context.Context, schemaID string) (*domain.SchemaResult, bool) {
	if schemaID == "" {
		return nil, false
	}
	var schema domain.SchemaResult
	if !t.agent.get(ctx, "/anoncreds/schema/"+url.PathEscape(schemaID), &schema, t.auth) {
		return nil, false
	}
	return &schema, true
}

func (t *tenantAgent) GetCredentialDefinition(ctx context.Context, credDefID string) (*domain.CredDefResult, bool) {
	if credDefID == "" {
		return nil, false
	}
	var credDef domain.CredDefResult
	if !t.agent.get(ctx, "/anoncreds/credential-definition/"+url.PathEscape(credDefID), &credDef, t.auth) {
		return nil, false
	}
	return &credDef, true
}

func (t *tenantAgent) GetCredentialExchange(ctx context.Context, credExID string) (*domain.CredExRecord, bool) {
	var detail domain.CredExDetail
	if !t.agent.get(ctx, "/issue-credential-2.0/records/"+url.PathEscape(credExID), &detail, t.auth) || detail.CredExRecord.CredExID == "" {
		return nil, false
	}
	return &detail.CredExRecord, true
}

func (t *tenantAgent) SendCredentialRequest(ctx context.Context, credExID string) bool {
	return t.agent.post(ctx, "/issue-credential-2.0/records/"+url.PathEscape(credExID)+"/send-request", struct{}{}, nil, t.auth)
}

func (t *tenantAgent) DeclineCredentialOffer(ctx context.Context, credExID string, reason string) bool {
	body := map[string]string{"description": reason}
	return t.agent.post(ctx, "/issue-credential-2.0/records/"+url.PathEscape(credExID)+"/problem-report", body, nil, t.auth)
}

func (t *tenantAgent) GetPresentationExchange(ctx context.Context, presExID string) (*domain.PresExRecord, bool) {
	var record domain.PresExRecord
	if !t.agent.get(ctx, "/present-proof-2.0/records/"+url.PathEscape(presExID), &record, t.auth) || record.PresExID == "" {
		return nil, false
	}
	return &record, true
}

func (t *tenantAgent) GetMatchingCredentials(ctx context.Context, presExID string) ([]domain.MatchingCredential, bool) {
	var matches []domain.MatchingCredential
	if !t.agent.get(ctx, "/present-proof-2.0/records/"+url.PathEscape(presExID)+"/credentials", &matches, t.auth) {
		return nil, false
	}
	return matches, true
}

func (t *tenantAgent) SendPresentation(ctx context.Context, presExID string, spec domain.PresentationSpec) bool {
	return t.agent.post(ctx, "/present-proof-2.0/records/"+url.PathEscape(presExID)+"/send-presentation", spec, nil, t.auth)
}

func (t *tenantAgent) DeletePresentationExchange(ctx context.Context, presExID string) bool {
	return t.agent.delete(ctx, "/present-proof-2.0/records/"+url.PathEscape(presExID), t.auth)
}

type proveRequest struct {
	Presentation domain.Presentation `json:"presentation"`
	Options      domain.ProofOptions `json:"options"`
}

func (t *tenantAgent) SignPresentation(ctx context.Context, presentation domain.Presentation, options domain.ProofOptions) (*domain.VerifiablePresentation, bool) {
	var resp struct {
		VerifiablePresentation *domain.VerifiablePresentation `json:"verifiablePresentation"`
	}
	req := proveRequest{Presentation: presentation, Options: options}
	if !t.agent.post(ctx, "/vc/presentations/prove", req, &resp, t.auth) || resp.VerifiablePresentation == nil {
		return nil, false
	}
	return resp.VerifiablePresentation, true
}

func (t *tenantAgent) ReceiveInvitation(ctx context.Context, invitation map[string]any) (*domain.OobRecord, bool) {
	var record domain.OobRecord
	if !t.agent.post(ctx, "/out-of-band/receive-invitation", invitation, &record, t.auth) {
		return nil, false
	}
	return &record, true
}

func (t *tenantAgent) ListCredentials(ctx context.Context) ([]domain.CredInfo, bool) {
	var resp struct {
		Results []domain.CredInfo `json:"results"`
	}
	if !t.agent.get(ctx, "/credentials", &resp, t.auth) {
		return nil, false
	}
	return resp.Results, true
}

func (t *tenantAgent) GetCredential(ctx context.Context, credentialID string) (*domain.CredInfo, bool) {
	var cred domain.CredInfo
	if !t.agent.get(ctx, "/credential/"+url.PathEscape(credentialID), &cred, t.auth) {
		return nil, false
	}
	return &cred, true
}
