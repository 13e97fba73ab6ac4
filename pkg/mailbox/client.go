package mailbox

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// Client polls one IMAP folder. Each call opens its own connection.
type Client struct {
	cfg Config
}

// New creates an IMAP client for cfg.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("mailbox: host is required")
	}
	if cfg.Folder == "" {
		cfg.Folder = DefaultFolder
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPlainPort
		if cfg.UseSSL {
			cfg.Port = DefaultTLSPort
		}
	}
	return &Client{cfg: cfg}, nil
}

// FetchUnseen returns up to limit unseen messages, oldest first, without marking them seen.
// UIDs for which skip reports true are dropped before the limit applies, so mail that was
// already handled cannot hide newer messages. skip may be nil. A limit of zero or less
// returns all of them.
// Messages that fail to parse are left out and reported in the returned error next to
// the ones that parsed.
func (c *Client) FetchUnseen(ctx context.Context, limit int, skip func(uid uint32) bool) ([]Message, error) {
	conn, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Logout()

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	uids, err := conn.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("mailbox: search unseen: %w", err)
	}
	if skip != nil {
		kept := uids[:0]
		for _, uid := range uids {
			if !skip(uid) {
				kept = append(kept, uid)
			}
		}
		uids = kept
	}
	if len(uids) == 0 {
		return nil, nil
	}
	if limit > 0 && len(uids) > limit {
		uids = uids[:limit]
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchUid}

	fetched := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)
	go func() {
		done <- conn.UidFetch(seqset, items, fetched)
	}()

	var out []Message
	var parseErr error
	for raw := range fetched {
		body := raw.GetBody(section)
		if body == nil {
			continue
		}
		msg, err := Parse(body)
		if err != nil {
			parseErr = errors.Join(parseErr, fmt.Errorf("uid %d: %w", raw.Uid, err))
			continue
		}
		msg.UID = raw.Uid
		out = append(out, msg)
	}
	if err := <-done; err != nil {
		return out, fmt.Errorf("mailbox: fetch: %w", err)
	}
	return out, parseErr
}

// MarkSeen adds the \Seen flag to the given messages.
func (c *Client) MarkSeen(ctx context.Context, uids ...uint32) error {
	if len(uids) == 0 {
		return nil
	}
	conn, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Logout()

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	if err := conn.UidStore(seqset, item, []interface{}{imap.SeenFlag}, nil); err != nil {
		return fmt.Errorf("mailbox: mark seen: %w", err)
	}
	return nil
}

func (c *Client) open(ctx context.Context) (*client.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
	var (
		conn *client.Client
		err  error
	)
	if c.cfg.UseSSL {
		conn, err = client.DialTLS(addr, &tls.Config{ServerName: c.cfg.Host})
	} else {
		conn, err = client.Dial(addr)
	}
	if err != nil {
		return nil, fmt.Errorf("mailbox: dial %s: %w", addr, err)
	}
	conn.Timeout = c.cfg.Timeout

	if err := conn.Login(c.cfg.Username, c.cfg.Password); err != nil {
		conn.Logout()
		return nil, fmt.Errorf("mailbox: login: %w", err)
	}
	if _, err := conn.Select(c.cfg.Folder, false); err != nil {
		conn.Logout()
		return nil, fmt.Errorf("mailbox: select %s: %w", c.cfg.Folder, err)
	}
	return conn, nil
}
