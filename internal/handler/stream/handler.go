// Package stream delivers a reply incrementally over Server-Sent Events: the
// full envelope first, then one explanation line per fixed interval.
package stream

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/askmatic/askly-server/internal/answer"
	"github.com/askmatic/askly-server/internal/pace"
	chatservice "github.com/askmatic/askly-server/internal/service/chat"
	"github.com/askmatic/askly-server/pkg/utils"
)

// Event is one SSE frame of the paced delivery.
type Event struct {
	Event          string           `json:"event"`
	Content        string           `json:"content,omitempty"`
	ConversationID string           `json:"conversationId,omitempty"`
	Envelope       *answer.Envelope `json:"envelope,omitempty"`
	Finished       bool             `json:"finished,omitempty"`
	Error          string           `json:"error,omitempty"`
}

// Handler owns one pacing scheduler per user. A new send from the same user
// cancels the previous one, so two consecutive sends can never interleave
// their line events.
type Handler struct {
	chatSvc  *chatservice.Service
	interval time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	inflight map[string]*pace.Scheduler
}

// New creates the stream handler with the configured pacing interval.
func New(chatSvc *chatservice.Service, interval time.Duration, log zerolog.Logger) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		interval: interval,
		log:      log,
		inflight: make(map[string]*pace.Scheduler),
	}
}

// HandleStream runs one paced reply delivery. The orchestrator call happens
// before the response switches to SSE, so validation failures still surface
// as plain HTTP errors.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request, userID, conversationID, message string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	env, convID, err := h.chatSvc.Ask(r.Context(), userID, conversationID, message)
	if err != nil {
		return err
	}

	sched := h.swapScheduler(userID)
	defer h.releaseScheduler(userID, sched)

	utils.SetupSSEHeaders(w)
	h.send(w, flusher, Event{Event: "start", ConversationID: convID})
	h.send(w, flusher, Event{Event: "envelope", ConversationID: convID, Envelope: &env})

	// All line writes run on scheduler tasks, serialized by the scheduler;
	// this goroutine only writes again after Wait returns.
	lines := answer.SplitLines(env.Explanation)
	for i, line := range lines {
		line := line
		sched.Schedule(i, h.interval, func() {
			h.send(w, flusher, Event{Event: "line", ConversationID: convID, Content: line})
		})
	}

	done := make(chan struct{})
	go func() {
		sched.Wait()
		close(done)
	}()

	select {
	case <-r.Context().Done():
		sched.Cancel()
		<-done
	case <-done:
	}

	if sched.Cancelled() {
		h.send(w, flusher, Event{Event: "cancelled", ConversationID: convID})
		return nil
	}

	h.send(w, flusher, Event{Event: "end", ConversationID: convID, Finished: true})
	h.log.Debug().Str("conversation", convID).Int("lines", len(lines)).Msg("completed paced delivery")
	return nil
}

// swapScheduler registers a fresh scheduler for the user, cancelling any
// still-pending delivery from a previous send.
func (h *Handler) swapScheduler(userID string) *pace.Scheduler {
	sched := pace.NewScheduler()

	h.mu.Lock()
	prev := h.inflight[userID]
	h.inflight[userID] = sched
	h.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	return sched
}

// releaseScheduler drops the registration unless a newer send already
// replaced it.
func (h *Handler) releaseScheduler(userID string, sched *pace.Scheduler) {
	sched.Cancel()

	h.mu.Lock()
	if h.inflight[userID] == sched {
		delete(h.inflight, userID)
	}
	h.mu.Unlock()
}

func (h *Handler) send(w http.ResponseWriter, flusher http.Flusher, event Event) {
	utils.SendSSEChunk(w, flusher, event)
}

// SendError emits an SSE error frame for failures after headers were sent.
func (h *Handler) SendError(w http.ResponseWriter, message string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return
	}
	utils.SendSSEChunk(w, flusher, Event{Event: "error", Error: message})
}

// Shutdown cancels every in-flight delivery.
func (h *Handler) Shutdown(_ context.Context) {
	h.mu.Lock()
	scheds := make([]*pace.Scheduler, 0, len(h.inflight))
	for _, s := range h.inflight {
		scheds = append(scheds, s)
	}
	h.inflight = make(map[string]*pace.Scheduler)
	h.mu.Unlock()

	for _, s := range scheds {
		s.Cancel()
	}
}
