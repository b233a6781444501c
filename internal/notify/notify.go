// Package notify carries user-visible outcome notifications. Success and
// failure of guarded mutations surface through a Notifier; the queue-backed
// implementation also mails the recipient when one is known.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bakemart/backend/pkg/helpers"
	"github.com/bakemart/backend/pkg/mailer"
)

// Notification is a single user-visible outcome. To is the recipient email
// and may be empty when the outcome has no mailbox to land in (a failed
// login, for instance).
type Notification struct {
	To          string
	Title       string
	Message     string
	Destructive bool
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the application log only.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) {
	if l.Logger == nil {
		return
	}
	entry := l.Logger.WithFields(logrus.Fields{"title": n.Title, "to": n.To})
	if n.Destructive {
		entry.Warn(n.Message)
		return
	}
	entry.Info(n.Message)
}

// QueueNotifier logs every notification and additionally enqueues an email
// job for notifications that have a recipient. Publish failures are logged
// and swallowed; a notification must never fail the mutation it reports on.
type QueueNotifier struct {
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func (q *QueueNotifier) Notify(ctx context.Context, n Notification) {
	(&LogNotifier{Logger: q.Logger}).Notify(ctx, n)
	if q.Pub == nil || n.To == "" || n.Destructive {
		return
	}
	job := mailer.Job{To: n.To, Subject: n.Title, Text: n.Message}
	if err := q.Pub.PublishJSON(ctx, job); err != nil && q.Logger != nil {
		q.Logger.WithError(err).WithField("to", n.To).Warn("notification publish failed")
	}
}
