package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SignatureHeader carries the envelope signature alongside the body so the
// CRM can verify before parsing.
const SignatureHeader = "X-Signature"

type OutcomeKind int

const (
	// OutcomeAccepted means the CRM acknowledged the submission (200/201).
	OutcomeAccepted OutcomeKind = iota
	// OutcomeRejected means the CRM answered with any other status code.
	OutcomeRejected
	// OutcomeOffline means the dispatch failed at the transport level.
	OutcomeOffline
)

// Outcome classifies one dispatch attempt. Message is safe to show to the
// end user verbatim.
type Outcome struct {
	Kind       OutcomeKind
	EventID    string
	StatusCode int
	Message    string
}

// Gateway builds, signs and dispatches lead envelopes to the CRM endpoint.
// Exactly one dispatch attempt per Submit call; retrying is the caller's
// decision.
type Gateway struct {
	targetURL string
	signer    *Signer
	client    *http.Client
	log       zerolog.Logger
}

func NewGateway(targetURL string, signer *Signer, timeout time.Duration, log zerolog.Logger) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{
		targetURL: targetURL,
		signer:    signer,
		client:    &http.Client{Timeout: timeout},
		log:       log,
	}
}

// Submit validates the prospect, wraps it in a signed envelope and POSTs it
// to the CRM. A returned error means the submission never left the process;
// transport and handshake failures are classified in the Outcome instead.
func (g *Gateway) Submit(ctx context.Context, prospect ProspectRecord, analysis AnalysisRecord) (Outcome, error) {
	if err := prospect.Validate(); err != nil {
		return Outcome{}, err
	}

	env := Envelope{
		EventMetadata: EventMetadata{
			SourceSystem: SourceSystem,
			EventID:      uuid.NewString(),
			TimestampUTC: time.Now().UTC().Format(time.RFC3339),
			SecurityHash: HashPlaceholder,
		},
		ProspectData:   prospect,
		SentryAnalysis: analysis,
	}

	signature, err := g.signer.Sign(env)
	if err != nil {
		return Outcome{}, fmt.Errorf("sign envelope: %w", err)
	}
	env.EventMetadata.SecurityHash = signature

	body, err := json.Marshal(env)
	if err != nil {
		return Outcome{}, fmt.Errorf("marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.targetURL, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, fmt.Errorf("build CRM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, signature)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn().Err(err).Str("event_id", env.EventMetadata.EventID).Msg("crm dispatch failed")
		return Outcome{
			Kind:    OutcomeOffline,
			EventID: env.EventMetadata.EventID,
			Message: fmt.Sprintf("The CRM gateway is unreachable right now (%v). The submission was not delivered.", err),
		}, nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		g.log.Info().Str("event_id", env.EventMetadata.EventID).Int("status", resp.StatusCode).Msg("lead accepted by crm")
		return Outcome{
			Kind:       OutcomeAccepted,
			EventID:    env.EventMetadata.EventID,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Discovery submission confirmed. Your reference id is %s.", env.EventMetadata.EventID),
		}, nil
	default:
		g.log.Warn().Str("event_id", env.EventMetadata.EventID).Int("status", resp.StatusCode).Msg("crm rejected lead")
		return Outcome{
			Kind:       OutcomeRejected,
			EventID:    env.EventMetadata.EventID,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("The CRM declined the submission (status %d). Please try again shortly.", resp.StatusCode),
		}, nil
	}
}
