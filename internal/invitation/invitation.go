// Package invitation recognises the payloads a wallet user can scan: out of band invitations,
// either inline or by reference, and VC API interaction urls.
package invitation

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
)

// Kind tells how a scanned payload has to be processed
type Kind int

// Payload kinds
const (
	KindUnknown Kind = iota
	// KindInline is an invitation carried in the payload itself
	KindInline
	// KindReference is an invitation to be downloaded from URL
	KindReference
	// KindInteraction is a VC API interaction url
	KindInteraction
)

const (
	paramOOB         = "oob"
	paramLegacyOOB   = "_oob"
	paramConnections = "c_i"
	paramOOBID       = "_oobid"
	paramInteraction = "iuv"

	schemeDIDComm = "didcomm"

	outOfBandV1Prefix = "https://didcomm.org/out-of-band/1."
	fieldType         = "@type"
	fieldGoal         = "goal"
	fieldGoalCode     = "goal_code"
	fieldRequests     = "requests~attach"
)

// ErrMalformed is returned when a payload announces an inline invitation that cannot be decoded
var ErrMalformed = errors.New("malformed invitation")

// Payload is a classified scanned payload
type Payload struct {
	Kind       Kind
	URL        string
	Invitation map[string]any
}

// Classify recognises payload. Anything that is not an invitation or an interaction url is KindUnknown.
func Classify(payload string) (Payload, error) {
	payload = strings.TrimSpace(payload)
	u, err := url.Parse(payload)
	if err != nil {
		return Payload{Kind: KindUnknown}, nil
	}
	switch strings.ToLower(u.Scheme) {
	case "https", "http", schemeDIDComm:
	default:
		return Payload{Kind: KindUnknown}, nil
	}

	query := u.Query()
	for _, param := range []string{paramOOB, paramLegacyOOB, paramConnections} {
		if encoded := query.Get(param); encoded != "" {
			inv, err := Decode(encoded)
			if err != nil {
				return Payload{Kind: KindUnknown}, err
			}
			return Payload{Kind: KindInline, URL: payload, Invitation: inv}, nil
		}
	}
	if u.Scheme == schemeDIDComm {
		return Payload{Kind: KindUnknown}, nil
	}
	if query.Has(paramOOBID) {
		return Payload{Kind: KindReference, URL: payload}, nil
	}
	if query.Get(paramInteraction) == "1" {
		return Payload{Kind: KindInteraction, URL: payload}, nil
	}
	return Payload{Kind: KindUnknown}, nil
}

// Decode reads a base64url encoded json invitation. Padding is optional and standard base64 is tolerated.
func Decode(encoded string) (map[string]any, error) {
	trimmed := strings.TrimRight(encoded, "=")
	raw, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		// '+' turns into a space when the query string is decoded
		if raw, err = base64.RawStdEncoding.DecodeString(strings.ReplaceAll(trimmed, " ", "+")); err != nil {
			return nil, ErrMalformed
		}
	}
	var inv map[string]any
	if err := json.Unmarshal(raw, &inv); err != nil || inv == nil {
		return nil, ErrMalformed
	}
	return inv, nil
}

// Normalize drops the fields the agent rejects: a goal_code needs a goal
func Normalize(inv map[string]any) map[string]any {
	if goal, _ := inv[fieldGoal].(string); goal == "" {
		delete(inv, fieldGoal)
		delete(inv, fieldGoalCode)
	}
	return inv
}

// IsOutOfBand reports whether inv is an out of band 1.x invitation
func IsOutOfBand(inv map[string]any) bool {
	typ, _ := inv[fieldType].(string)
	return strings.HasPrefix(typ, outOfBandV1Prefix)
}

// HasRequests reports whether inv carries attached requests, such as a connectionless proof request
func HasRequests(inv map[string]any) bool {
	attached, _ := inv[fieldRequests].([]any)
	return len(attached) > 0
}
