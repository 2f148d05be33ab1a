package conversation

import (
	"context"
	"log"
	"time"

	"github.com/covnav/backend/internal/chat"
	"github.com/covnav/backend/internal/observability"
	"github.com/covnav/backend/internal/persistence"
	"github.com/covnav/backend/internal/provider"
	"github.com/covnav/backend/internal/session"
)

// persistTimeout bounds the background save so a hung database cannot
// leak goroutines forever.
const persistTimeout = 10 * time.Second

// PromptSource resolves the system directive for a turn.
type PromptSource interface {
	Resolve(identifier string) (string, error)
}

// Orchestrator drives one chat turn: resolve the session, assemble the
// system prompt, call the provider, and record both sides of the
// exchange. It holds no per-session state between calls; the store is
// always re-consulted.
type Orchestrator struct {
	sessions *session.Store
	ai       provider.Provider
	prompts  PromptSource
	persist  persistence.Store
	metrics  *observability.Metrics
}

func NewOrchestrator(
	sessions *session.Store,
	ai provider.Provider,
	prompts PromptSource,
	persist persistence.Store,
	metrics *observability.Metrics,
) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		ai:       ai,
		prompts:  prompts,
		persist:  persist,
		metrics:  metrics,
	}
}

// HandleTurn runs one exchange. On provider failure the user turn stays
// committed in the session and no assistant turn is appended; the caller
// gets an error instead of a partial response.
func (o *Orchestrator) HandleTurn(ctx context.Context, req chat.Request) (chat.Response, error) {
	sess := o.sessions.GetOrCreate(req.SessionID)
	created := sess.SessionID != req.SessionID
	o.metrics.ActiveSessions.Set(float64(o.sessions.Count()))
	if created {
		o.metrics.SessionEvents.WithLabelValues("created").Inc()
	}

	systemPrompt, err := o.prompts.Resolve(req.SystemPromptIdentifier)
	if err != nil {
		o.metrics.ChatTurns.WithLabelValues("prompt_error").Inc()
		return chat.Response{}, err
	}

	sess.Append(session.RoleUser, req.Message)

	start := time.Now()
	reply, err := o.ai.Send(ctx, sess.Messages, systemPrompt, req.Model)
	o.metrics.ObserveProviderLatency(time.Since(start))
	if err != nil {
		// The user turn is kept on purpose so the input is recorded at
		// least once even when the backend is down.
		o.sessions.Update(sess)
		o.metrics.ChatTurns.WithLabelValues("provider_error").Inc()
		o.metrics.ProviderErrors.WithLabelValues(o.ai.Name()).Inc()
		return chat.Response{}, err
	}

	count := sess.Append(session.RoleAssistant, reply)
	o.sessions.Update(sess)
	o.savePersisted(sess)

	model := req.Model
	if model == "" {
		model = o.ai.DefaultModel()
	}

	o.metrics.ChatTurns.WithLabelValues("ok").Inc()
	return chat.Response{
		SessionID:    sess.SessionID,
		Message:      reply,
		Provider:     o.ai.Name(),
		Model:        model,
		MessageCount: count,
	}, nil
}

// DeleteSession removes the session from the store and, best effort, from
// durable persistence.
func (o *Orchestrator) DeleteSession(sessionID string) {
	o.sessions.Delete(sessionID)
	o.metrics.ActiveSessions.Set(float64(o.sessions.Count()))
	o.metrics.SessionEvents.WithLabelValues("deleted").Inc()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := o.persist.Delete(ctx, sessionID); err != nil {
			log.Printf("session persistence delete failed for %s: %v", sessionID, err)
		}
	}()
}

// savePersisted dispatches the durable save off the critical path. The
// turn never waits on it and never fails because of it. The transcript is
// snapshotted first so the background write never races a later append.
func (o *Orchestrator) savePersisted(sess *session.Session) {
	snapshot := *sess
	snapshot.Messages = append([]session.Turn(nil), sess.Messages...)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := o.persist.Save(ctx, &snapshot); err != nil {
			log.Printf("session persistence save failed for %s: %v", snapshot.SessionID, err)
		}
	}()
}
