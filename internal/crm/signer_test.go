package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnvelope() Envelope {
	risk := 42
	growth := 0.7
	return Envelope{
		EventMetadata: EventMetadata{
			SourceSystem: SourceSystem,
			EventID:      "7b0c2f1e-8f7a-4bb2-9a65-0f6f4c7d9e21",
			TimestampUTC: "2026-08-31T12:00:00Z",
			SecurityHash: HashPlaceholder,
		},
		ProspectData: ProspectRecord{
			ContactName: "Dana Whitfield",
			CompanyName: "Northway Logistics",
			Bottleneck:  "manual invoice reconciliation",
			Industry:    "logistics",
			TechStack:   []string{"SAP", "Excel"},
		},
		SentryAnalysis: AnalysisRecord{
			Notes:       "Strong fit for invoice automation.",
			RiskScore:   &risk,
			GrowthIndex: &growth,
		},
	}
}

func TestSignDeterministic(t *testing.T) {
	signer := NewSigner("test-secret")

	first, err := signer.Sign(testEnvelope())
	require.NoError(t, err)
	second, err := signer.Sign(testEnvelope())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Regexp(t, "^[0-9a-f]{64}$", first)
}

func TestSignIgnoresStoredHash(t *testing.T) {
	signer := NewSigner("test-secret")

	clean := testEnvelope()
	base, err := signer.Sign(clean)
	require.NoError(t, err)

	// The signature must not cover itself: signing an envelope that already
	// carries a hash yields the same digest.
	dirty := testEnvelope()
	dirty.EventMetadata.SecurityHash = base
	again, err := signer.Sign(dirty)
	require.NoError(t, err)
	assert.Equal(t, base, again)
}

func TestSignChangesOnFieldMutation(t *testing.T) {
	signer := NewSigner("test-secret")

	base, err := signer.Sign(testEnvelope())
	require.NoError(t, err)

	mutated := testEnvelope()
	mutated.ProspectData.CompanyName = "Northway Logistics Inc"
	other, err := signer.Sign(mutated)
	require.NoError(t, err)

	assert.NotEqual(t, base, other)
}

func TestSignDiffersPerSecret(t *testing.T) {
	a, err := NewSigner("secret-a").Sign(testEnvelope())
	require.NoError(t, err)
	b, err := NewSigner("secret-b").Sign(testEnvelope())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret")

	env := testEnvelope()
	sig, err := signer.Sign(env)
	require.NoError(t, err)
	env.EventMetadata.SecurityHash = sig

	ok, err := signer.Verify(env)
	require.NoError(t, err)
	assert.True(t, ok)

	env.ProspectData.Bottleneck = "tampered"
	ok, err = signer.Verify(env)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsPlaceholder(t *testing.T) {
	signer := NewSigner("test-secret")
	ok, err := signer.Verify(testEnvelope())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProspectValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProspectRecord)
		wantErr string
	}{
		{name: "complete", mutate: func(*ProspectRecord) {}},
		{
			name:    "missing contact",
			mutate:  func(p *ProspectRecord) { p.ContactName = "  " },
			wantErr: "contact_name",
		},
		{
			name:    "missing company",
			mutate:  func(p *ProspectRecord) { p.CompanyName = "" },
			wantErr: "company_name",
		},
		{
			name:    "missing bottleneck",
			mutate:  func(p *ProspectRecord) { p.Bottleneck = "" },
			wantErr: "bottleneck",
		},
		{
			name: "all missing",
			mutate: func(p *ProspectRecord) {
				p.ContactName, p.CompanyName, p.Bottleneck = "", "", ""
			},
			wantErr: "contact_name, company_name, bottleneck",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testEnvelope().ProspectData
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
