package email

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"smart-assistant/internal/assistant"
	"smart-assistant/pkg/log"
	"smart-assistant/pkg/mailbox"
)

const (
	defaultInterval  = time.Minute
	defaultBatchSize = 20
	defaultRetryIdle = 24 * time.Hour
	maxIdleTracked   = 10000
)

// Mailbox is the IMAP folder the poller reads.
type Mailbox interface {
	FetchUnseen(ctx context.Context, limit int, skip func(uid uint32) bool) ([]mailbox.Message, error)
	MarkSeen(ctx context.Context, uids ...uint32) error
}

// Notifier delivers a short report about processed mail. *telegram.Bot satisfies it.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Config configures the poller.
type Config struct {
	Interval  time.Duration
	BatchSize int
	// RetryIdle is how long a message that created nothing stays out of the batches.
	RetryIdle time.Duration
	// NotifyChatID receives a message for every e-mail that created something. Zero disables it.
	NotifyChatID int64
}

// Poller feeds unseen e-mails to the assistant on a fixed schedule.
type Poller struct {
	l        log.Logger
	uc       assistant.UseCase
	mb       Mailbox
	notifier Notifier
	cfg      Config

	// idle holds UIDs of unseen mail that produced nothing; they stay unseen in the
	// mailbox for the user, so the poller has to remember them itself.
	idle *expirable.LRU[uint32, struct{}]
}

// New creates a Poller. notifier may be nil.
func New(l log.Logger, uc assistant.UseCase, mb Mailbox, notifier Notifier, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.RetryIdle <= 0 {
		cfg.RetryIdle = defaultRetryIdle
	}
	return &Poller{
		l:        l,
		uc:       uc,
		mb:       mb,
		notifier: notifier,
		cfg:      cfg,
		idle:     expirable.NewLRU[uint32, struct{}](maxIdleTracked, nil, cfg.RetryIdle),
	}
}
