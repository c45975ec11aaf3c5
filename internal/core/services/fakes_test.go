package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/broadcast"
	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/repositories"
)

const testWalletID = "w1"

// fakeAgent answers from its maps and records the actions it was asked to carry out
type fakeAgent struct {
	mu            sync.Mutex
	credExchanges map[string]*domain.CredExRecord
	presExchanges map[string]*domain.PresExRecord
	schemas       map[string]*domain.SchemaResult
	credDefs      map[string]*domain.CredDefResult
	connections   map[string]*domain.ConnectionRecord
	matching      map[string][]domain.MatchingCredential
	signed        *domain.VerifiablePresentation
	oob           *domain.OobRecord
	fail          bool
	calls         []string
	sentSpecs     map[string]domain.PresentationSpec
	signRequests  []domain.Presentation
	invitations   []map[string]any
}

func newFakeAgent() *fakeAgent {
	return &fakeAgent{
		credExchanges: map[string]*domain.CredExRecord{},
		presExchanges: map[string]*domain.PresExRecord{},
		schemas:       map[string]*domain.SchemaResult{},
		credDefs:      map[string]*domain.CredDefResult{},
		connections:   map[string]*domain.ConnectionRecord{},
		matching:      map[string][]domain.MatchingCredential{},
		sentSpecs:     map[string]domain.PresentationSpec{},
	}
}

func (f *fakeAgent) record(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return !f.fail
}

func (f *fakeAgent) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func lookup[T any](f *fakeAgent, m map[string]*T, id string) (*T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := m[id]
	return v, ok && !f.fail
}

func (f *fakeAgent) CreateKey(context.Context) (*domain.WalletKey, bool) {
	return &domain.WalletKey{Multikey: testMultikey()}, f.record("create-key")
}

func (f *fakeAgent) GetConnection(_ context.Context, id string) (*domain.ConnectionRecord, bool) {
	return lookup(f, f.connections, id)
}

func (f *fakeAgent) GetSchema(_ context.Context, id string) (*domain.SchemaResult, bool) {
	return lookup(f, f.schemas, id)
}

func (f *fakeAgent) GetCredentialDefinition(_ context.Context, id string) (*domain.CredDefResult, bool) {
	return lookup(f, f.credDefs, id)
}

func (f *fakeAgent) GetCredentialExchange(_ context.Context, id string) (*domain.CredExRecord, bool) {
	return lookup(f, f.credExchanges, id)
}

func (f *fakeAgent) SendCredentialRequest(_ context.Context, id string) bool {
	return f.record("send-request:" + id)
}

func (f *fakeAgent) DeclineCredentialOffer(_ context.Context, id string, _ string) bool {
	return f.record("decline-offer:" + id)
}

func (f *fakeAgent) GetPresentationExchange(_ context.Context, id string) (*domain.PresExRecord, bool) {
	return lookup(f, f.presExchanges, id)
}

func (f *fakeAgent) GetMatchingCredentials(_ context.Context, id string) ([]domain.MatchingCredential, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matching[id], !f.fail
}

func (f *fakeAgent) SendPresentation(_ context.Context, id string, spec domain.PresentationSpec) bool {
	f.mu.Lock()
	f.sentSpecs[id] = spec
	f.mu.Unlock()
	return f.record("send-presentation:" + id)
}

func (f *fakeAgent) DeletePresentationExchange(_ context.Context, id string) bool {
	return f.record("delete-presentation:" + id)
}

func (f *fakeAgent) SignPresentation(_ context.Context, p domain.Presentation, _ domain.ProofOptions) (*domain.VerifiablePresentation, bool) {
	f.mu.Lock()
	f.signRequests = append(f.signRequests, p)
	signed := f.signed
	f.mu.Unlock()
	if !f.record("sign") || signed == nil {
		return nil, false
	}
	return signed, true
}

func (f *fakeAgent) ReceiveInvitation(_ context.Context, invitation map[string]any) (*domain.OobRecord, bool) {
	f.mu.Lock()
	f.invitations = append(f.invitations, invitation)
	oob := f.oob
	f.mu.Unlock()
	if !f.record("receive-invitation") || oob == nil {
		return nil, false
	}
	return oob, true
}

func (f *fakeAgent) ListCredentials(context.Context) ([]domain.CredInfo, bool) {
	return nil, f.record("list-credentials")
}

func (f *fakeAgent) GetCredential(_ context.Context, id string) (*domain.CredInfo, bool) {
	return nil, f.record("get-credential:" + id)
}

// fakeWallets signs every wallet in to the same agent. A nil agent means the agent is unreachable.
type fakeWallets struct {
	agent    *fakeAgent
	multikey string
}

func (f *fakeWallets) Provision(context.Context, string, string) (*domain.Profile, error) {
	return nil, ErrAgentUnavailable
}

func (f *fakeWallets) Profile(context.Context, string) (*domain.Profile, bool) {
	return nil, false
}

func (f *fakeWallets) Wallet(_ context.Context, walletID string) (*domain.Wallet, bool) {
	return &domain.Wallet{WalletID: walletID, Multikey: f.multikey}, true
}

func (f *fakeWallets) SignIn(context.Context, string) (ports.TenantAgent, bool) {
	if f.agent == nil {
		return nil, false
	}
	return f.agent, true
}

func (f *fakeWallets) Remove(context.Context, string) error {
	return nil
}

// testEnv wires the services on a memory store with the test wallet provisioned
type testEnv struct {
	stores        *repositories.Profiles
	agent         *fakeAgent
	wallets       *fakeWallets
	broadcaster   *broadcast.Broadcaster
	notifications ports.NotificationService
	events        ports.Subscription
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	sealer, err := repositories.NewSealer("services test secret")
	require.NoError(t, err)
	stores := repositories.NewMemoryProfiles(sealer)
	require.NoError(t, stores.Provision(context.Background(), testWalletID))

	agent := newFakeAgent()
	b := broadcast.New(100, nil)
	return &testEnv{
		stores:        stores,
		agent:         agent,
		wallets:       &fakeWallets{agent: agent, multikey: testMultikey()},
		broadcaster:   b,
		notifications: NewNotification(stores, b),
		events:        b.Subscribe(testWalletID),
	}
}

func (e *testEnv) store() ports.TenantStore {
	return e.stores.Open(testWalletID)
}

// drain returns the events queued so far
func (e *testEnv) drain() []domain.Event {
	var events []domain.Event
	for {
		select {
		case ev := <-e.events.Events():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func eventTypes(events []domain.Event) []domain.EventType {
	types := make([]domain.EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}
