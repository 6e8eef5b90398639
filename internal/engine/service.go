package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/internal/network"
	"github.com/ionutrobert/WebScape/pkg/api"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
)

const msgServerBusy = "Server is busy, try again."

// Service is the session gateway. Connection goroutines call it; it only
// touches the store, the broadcaster and the intent queue.
type Service struct {
	Sim   *Simulation
	Hub   *network.Broadcaster
	store Store
}

// NewService binds the gateway to a simulation.
func NewService(sim *Simulation, hub *network.Broadcaster, store Store) *Service {
	return &Service{Sim: sim, Hub: hub, store: store}
}

// ParseJoin validates the first frame of a connection.
func ParseJoin(raw []byte) (api.JoinPayload, error) {
	env, err := api.ValidateEnvelope(raw)
	if err != nil {
		return api.JoinPayload{}, err
	}
	if domain.ParseIntent(env.Type) != domain.IntentJoin {
		return api.JoinPayload{}, fmt.Errorf("first frame is %q, want join", env.Type)
	}
	var p api.JoinPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return api.JoinPayload{}, fmt.Errorf("decode join: %w", err)
	}
	p.Username = strings.TrimSpace(p.Username)
	if err := p.Validate(); err != nil {
		return api.JoinPayload{}, err
	}
	return p, nil
}

// Join loads (or creates) the player record, opens the outbound channel and
// queues the join for the next tick.
func (s *Service) Join(ctx context.Context, sessionID, username string) <-chan api.Envelope {
	data := s.loadPlayer(ctx, username)

	ch := s.Hub.Register(sessionID)
	s.Sim.Queue.PushLifecycle(domain.Intent{
		Type:      domain.IntentJoin,
		SessionID: sessionID,
		Join:      &data,
	})

	logger.Log.WithFields(logrus.Fields{
		"component": "gateway",
		"session":   sessionID,
		"username":  username,
	}).Info("Join queued")
	return ch
}

func (s *Service) loadPlayer(ctx context.Context, username string) domain.PlayerData {
	log := logger.Log.WithFields(logrus.Fields{"component": "gateway", "username": username})
	if s.store == nil {
		return domain.NewPlayerData(username)
	}

	data, found, err := s.store.LoadPlayer(ctx, username)
	if err != nil {
		log.WithError(err).Warn("Failed to load player, using defaults")
		return domain.NewPlayerData(username)
	}
	if found {
		return data
	}

	data, err = s.store.CreatePlayer(ctx, username)
	if err != nil {
		log.WithError(err).Warn("Failed to create player, using defaults")
		return domain.NewPlayerData(username)
	}
	return data
}

// Submit validates a raw inbound frame and queues it. Rejections are answered
// with a system chat and returned as errors for the caller's log.
func (s *Service) Submit(sessionID string, raw []byte) error {
	if !s.Hub.HasSubscriber(sessionID) {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionUnknown)
	}
	env, err := api.ValidateEnvelope(raw)
	if err != nil {
		s.reply(sessionID, msgInvalidCommand)
		return fmt.Errorf("session %s: %w", sessionID, err)
	}

	t := domain.ParseIntent(env.Type)
	if t == domain.IntentUnknown || t.IsLifecycle() {
		s.reply(sessionID, msgInvalidCommand)
		return fmt.Errorf("session %s: intent %q not accepted here", sessionID, env.Type)
	}

	if !s.Sim.Queue.Push(domain.Intent{Type: t, SessionID: sessionID, Payload: env.Payload}) {
		s.reply(sessionID, msgServerBusy)
		return fmt.Errorf("session %s: %w", sessionID, ErrQueueFull)
	}
	return nil
}

// Leave closes the outbound channel and queues the disconnect.
func (s *Service) Leave(sessionID string) {
	s.Hub.Unregister(sessionID)
	s.Sim.Queue.PushLifecycle(domain.Intent{Type: domain.IntentLeave, SessionID: sessionID})

	logger.Log.WithFields(logrus.Fields{
		"component": "gateway",
		"session":   sessionID,
	}).Info("Leave queued")
}

func (s *Service) reply(sessionID, msg string) {
	env, err := api.NewEnvelope(domain.EventChat.String(), handlers.SystemChat(msg))
	if err != nil {
		return
	}
	s.Hub.SendTo(sessionID, env)
}
