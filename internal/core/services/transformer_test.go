package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

func TestBeautify(t *testing.T) {
	attributes := map[string]string{"name": "Alice", "age": "30", "degree": "Bachelor of Science"}

	type expected struct {
		id         string
		name       string
		types      []string
		issuerID   string
		issuerName string
		schema     bool
		proof      bool
	}
	for _, tc := range []struct {
		name     string
		in       BeautifyInput
		expected expected
	}{
		{
			name: "complete",
			in: BeautifyInput{
				Attributes:    attributes,
				SchemaID:      "did:web:issuer/schema/1",
				SchemaName:    "University Degree",
				SchemaVersion: "1.0",
				CredDefID:     "did:web:issuer/creddef/1",
				CredDefTag:    "Diploma",
				IssuerID:      "did:web:issuer",
				IssuerName:    "Faber College",
				IssuerImage:   "https://faber.example/logo.png",
				IssuedAt:      "2024-05-01T10:00:00Z",
				ExchangeID:    "ex1",
			},
			expected: expected{
				id:         "urn:uuid:ex1",
				name:       "Diploma",
				types:      []string{"VerifiableCredential", "UniversityDegree"},
				issuerID:   "did:web:issuer",
				issuerName: "Faber College",
				schema:     true,
				proof:      true,
			},
		},
		{
			name: "issuer from cred def",
			in: BeautifyInput{
				Attributes: attributes,
				SchemaName: "Degree",
				CredDefID:  "did:web:faber/creddef/1",
			},
			expected: expected{
				name:       "Degree",
				types:      []string{"VerifiableCredential", "Degree"},
				issuerID:   "did:web:faber",
				issuerName: "Unknown Issuer",
				proof:      true,
			},
		},
		{
			name: "nothing known",
			in:   BeautifyInput{Attributes: attributes},
			expected: expected{
				name:       "Credential",
				types:      []string{"VerifiableCredential", "Credential"},
				issuerID:   "did:unknown",
				issuerName: "Unknown Issuer",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			credential, tags := Beautify(tc.in)

			assert.Equal(t, tc.expected.id, credential.ID)
			assert.Equal(t, tc.expected.name, credential.Name)
			assert.Equal(t, tc.expected.types, credential.Type)
			assert.Equal(t, tc.expected.issuerID, credential.Issuer.ID)
			assert.Equal(t, tc.expected.issuerName, credential.Issuer.Name)
			assert.Equal(t, []string{domain.ContextCredentialsV2, domain.ContextUndefinedTermsV2}, credential.Context)
			assert.NotEmpty(t, credential.ValidFrom)

			require.Len(t, credential.CredentialSubject, len(attributes))
			for k, v := range attributes {
				assert.Equal(t, v, credential.CredentialSubject[k])
			}

			if tc.expected.schema {
				require.NotNil(t, credential.CredentialSchema)
				assert.Equal(t, tc.in.SchemaID, credential.CredentialSchema.ID)
				assert.Equal(t, domain.TypeAnonCredsSchema, credential.CredentialSchema.Type)
				assert.Equal(t, tc.in.SchemaVersion, credential.CredentialSchema.Description)
			} else {
				assert.Nil(t, credential.CredentialSchema)
			}

			if tc.expected.proof {
				proof, ok := credential.Proof.(domain.DataIntegrityProof)
				require.True(t, ok)
				assert.Equal(t, tc.in.CredDefID, proof.VerificationMethod)
				assert.Equal(t, domain.CryptosuiteAnonCreds, proof.Cryptosuite)
			} else {
				assert.Nil(t, credential.Proof)
			}

			assert.Equal(t, tc.expected.issuerID, tags[TagIssuerID])
			assert.Equal(t, tc.expected.name, tags[TagCredentialName])
			assert.NotEmpty(t, tags[TagReceivedAt])
			for k, v := range tags {
				assert.NotEmpty(t, v, k)
			}
		})
	}
}

func TestBeautify_TagsStayOutOfTheDocument(t *testing.T) {
	credential, tags := Beautify(BeautifyInput{
		Attributes: map[string]string{"name": "Alice"},
		SchemaID:   "S",
		SchemaName: "Diploma",
		CredDefID:  "did:web:x/D",
		ExchangeID: "ex1",
	})
	require.Equal(t, "ex1", tags[TagCredExID])

	raw, err := json.Marshal(credential)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	for tag := range tags {
		assert.NotContains(t, doc, tag)
	}
	assert.Equal(t, map[string]any{"name": "Alice"}, doc["credentialSubject"])
	assert.Equal(t, "urn:uuid:ex1", doc["id"])
}

func TestBeautify_ValidFromDefaultsToNow(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	credential, _ := Beautify(BeautifyInput{})
	validFrom, err := time.Parse(time.RFC3339, credential.ValidFrom)
	require.NoError(t, err)
	assert.True(t, validFrom.After(before))
}
