package engine

import (
	"fmt"
	"time"

	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
)

const maxLogEntries = 100

// LogEntry is one line of the game log kept for the debug endpoints.
type LogEntry struct {
	ID        string `json:"id"`
	Tick      uint64 `json:"tick"`
	Text      string `json:"text"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// AddLog appends to the bounded game log and mirrors it to the logger.
func (s *Simulation) AddLog(text, logType string) {
	now := time.Now()
	tick := s.tick.Load()
	s.logs = append(s.logs, LogEntry{
		ID:        fmt.Sprintf("%d_%d", tick, now.UnixNano()),
		Tick:      tick,
		Text:      text,
		Type:      logType,
		Timestamp: now.UnixMilli(),
	})
	if over := len(s.logs) - maxLogEntries; over > 0 {
		s.logs = append(s.logs[:0], s.logs[over:]...)
	}
	logger.Log.WithFields(logrus.Fields{
		"tick":      tick,
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}

// Logs returns a copy of the recent game log. Call through Inspect.
func (s *Simulation) Logs() []LogEntry {
	return append([]LogEntry(nil), s.logs...)
}
