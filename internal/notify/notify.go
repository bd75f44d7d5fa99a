// Package notify provides the logrus-backed implementations of the
// domain's Notifier and AuditLogger capabilities.
package notify

import "github.com/sirupsen/logrus"

// LogNotifier writes notifications to the structured log. Delivery is
// fire-and-forget; there is nothing to return to the caller.
type LogNotifier struct {
	log *logrus.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify implements domain.Notifier.
func (n *LogNotifier) Notify(message string) {
	n.log.WithField("channel", "notification").Info(message)
}

// LogAudit writes audit events to the structured log.
type LogAudit struct {
	log *logrus.Logger
}

// NewLogAudit creates a log-backed audit sink.
func NewLogAudit(log *logrus.Logger) *LogAudit {
	return &LogAudit{log: log}
}

// Record implements domain.AuditLogger.
func (a *LogAudit) Record(event string) {
	a.log.WithField("channel", "audit").Info(event)
}
