package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTopic is returned when a webhook topic has no handler
var ErrInvalidTopic = errors.New("invalid topic")

// Topic is a webhook topic emitted by the agent
type Topic string

// Webhook topics
const (
	TopicConnections                Topic = "connections"
	TopicOutOfBand                  Topic = "out_of_band"
	TopicPing                       Topic = "ping"
	TopicBasicMessages              Topic = "basicmessages"
	TopicIssueCredential            Topic = "issue_credential"
	TopicIssuerCredRev              Topic = "issuer_cred_rev"
	TopicIssueCredentialV2          Topic = "issue_credential_v2_0"
	TopicIssueCredentialV2AnonCreds Topic = "issue_credential_v2_0_anoncreds"
	TopicIssueCredentialV2Indy      Topic = "issue_credential_v2_0_indy"
	TopicPresentProof               Topic = "present_proof"
	TopicPresentProofV2             Topic = "present_proof_v2_0"
	TopicRevocationRegistry         Topic = "revocation_registry"
)

// AllTopics lists every topic the webhook endpoint accepts
var AllTopics = []Topic{
	TopicConnections,
	TopicOutOfBand,
	TopicPing,
	TopicBasicMessages,
	TopicIssueCredential,
	TopicIssuerCredRev,
	TopicIssueCredentialV2,
	TopicIssueCredentialV2AnonCreds,
	TopicIssueCredentialV2Indy,
	TopicPresentProof,
	TopicPresentProofV2,
	TopicRevocationRegistry,
}

// ParseTopic returns the Topic for s or ErrInvalidTopic
func ParseTopic(s string) (Topic, error) {
	for _, t := range AllTopics {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidTopic, s)
}

// CredentialExchangeState is the state of an issue-credential v2 exchange
type CredentialExchangeState string

// Issue credential v2 states seen by a holder
const (
	CredExOfferReceived      CredentialExchangeState = "offer-received"
	CredExRequestSent        CredentialExchangeState = "request-sent"
	CredExCredentialReceived CredentialExchangeState = "credential-received"
	CredExDone               CredentialExchangeState = "done"
	CredExDeclined           CredentialExchangeState = "declined"
	CredExAbandoned          CredentialExchangeState = "abandoned"
	CredExDeleted            CredentialExchangeState = "deleted"
)

// Terminal tells whether no further webhook is expected for the exchange
func (s CredentialExchangeState) Terminal() bool {
	return s == CredExDone || s == CredExDeclined || s == CredExAbandoned
}

// PresentationExchangeState is the state of a present-proof v2 exchange
type PresentationExchangeState string

// Present proof v2 states seen by a holder
const (
	PresExRequestReceived  PresentationExchangeState = "request-received"
	PresExPresentationSent PresentationExchangeState = "presentation-sent"
	PresExDone             PresentationExchangeState = "done"
	PresExAbandoned        PresentationExchangeState = "abandoned"
	PresExDeclined         PresentationExchangeState = "declined"
	PresExDeleted          PresentationExchangeState = "deleted"
)

// Terminal tells whether no further webhook is expected for the exchange
func (s PresentationExchangeState) Terminal() bool {
	return s == PresExPresentationSent || s == PresExDone || s == PresExAbandoned || s == PresExDeclined
}

// ConnectionState is the rfc23 state reported by the connections topic
type ConnectionState string

// Connection states
const (
	ConnectionInvitation ConnectionState = "invitation"
	ConnectionRequest    ConnectionState = "request"
	ConnectionResponse   ConnectionState = "response"
	ConnectionActive     ConnectionState = "active"
	ConnectionCompleted  ConnectionState = "completed"
	ConnectionAbandoned  ConnectionState = "abandoned"
	ConnectionDeleted    ConnectionState = "deleted"
)

// BasicMessageState is the state reported by the basicmessages topic
type BasicMessageState string

// Basic message states
const (
	BasicMessageReceived BasicMessageState = "received"
	BasicMessageSent     BasicMessageState = "sent"
)
