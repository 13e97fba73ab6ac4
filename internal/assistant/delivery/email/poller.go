package email

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/log"
	"smart-assistant/pkg/mailbox"
)

// Start schedules Poll every cfg.Interval until ctx is cancelled.
// A run that is still busy when the next tick fires makes that tick a no-op.
func (p *Poller) Start(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{ctx: ctx, l: p.l})))
	spec := fmt.Sprintf("@every %s", p.cfg.Interval)
	if _, err := c.AddFunc(spec, func() {
		if _, err := p.Poll(ctx); err != nil {
			p.l.Errorf(ctx, "email.Poller: poll failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("email poller: schedule %q: %w", spec, err)
	}

	c.Start()
	p.l.Infof(ctx, "email.Poller: started, interval=%s", p.cfg.Interval)

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		p.l.Infof(context.Background(), "email.Poller: stopped")
	}()
	return nil
}

// Poll processes one batch of unseen mail and returns how many messages created something.
func (p *Poller) Poll(ctx context.Context) (int, error) {
	msgs, err := p.mb.FetchUnseen(ctx, p.cfg.BatchSize, p.isIdle)
	if err != nil {
		if len(msgs) == 0 {
			return 0, err
		}
		p.l.Warnf(ctx, "email.Poller: some messages could not be read: %v", err)
	}
	if len(msgs) == 0 {
		return 0, nil
	}
	p.l.Infof(ctx, "email.Poller: %d unseen messages", len(msgs))

	var created int
	for _, msg := range msgs {
		if ctx.Err() != nil {
			return created, ctx.Err()
		}
		if p.process(ctx, msg) {
			created++
		}
	}
	return created, nil
}

func (p *Poller) process(ctx context.Context, msg mailbox.Message) bool {
	sc := model.NewScope(model.SourceEmail, msg.From, "")
	result := p.uc.ProcessEmail(ctx, sc, assistant.ProcessEmailInput{
		Subject: msg.Subject,
		Body:    msg.Body,
		From:    msg.From,
		To:      msg.To,
		Date:    msg.Date,
	})
	if !result.Success {
		p.l.Infof(ctx, "email.Poller: %q produced nothing: %s", msg.Subject, result.Message)
		p.idle.Add(msg.UID, struct{}{})
		return false
	}

	if err := p.mb.MarkSeen(ctx, msg.UID); err != nil {
		p.l.Warnf(ctx, "email.Poller: mark %d seen: %v", msg.UID, err)
	}
	p.l.Infof(ctx, "email.Poller: %q created %d events, %d tasks", msg.Subject, len(result.Events), len(result.Tasks))
	p.notify(ctx, msg, result)
	return true
}

func (p *Poller) isIdle(uid uint32) bool {
	_, ok := p.idle.Get(uid)
	return ok
}

func (p *Poller) notify(ctx context.Context, msg mailbox.Message, result model.AssistantResult) {
	if p.notifier == nil || p.cfg.NotifyChatID == 0 {
		return
	}
	if err := p.notifier.SendMessage(ctx, p.cfg.NotifyChatID, formatNotification(msg.Subject, result)); err != nil {
		p.l.Warnf(ctx, "email.Poller: notify chat %d: %v", p.cfg.NotifyChatID, err)
	}
}

// cronLogger routes cron's own messages to the service logger.
type cronLogger struct {
	ctx context.Context
	l   log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugf(c.ctx, "cron: %s %v", msg, keysAndValues)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorf(c.ctx, "cron: %s: %v %v", msg, err, keysAndValues)
}
