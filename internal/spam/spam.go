// Package spam loads and queries the spam-domain denylist.
package spam

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// List is an immutable set of spam hosts. It is built once at startup.
type List struct {
	hosts map[string]bool
}

// New builds a list from literal hosts, mainly for tests and hardcoded
// additions.
func New(hosts ...string) *List {
	l := &List{hosts: make(map[string]bool, len(hosts))}
	for _, h := range hosts {
		l.add(h)
	}
	return l
}

func (l *List) add(host string) {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	if host == "" || strings.HasPrefix(host, "#") {
		return
	}
	l.hosts[host] = true
}

// Contains reports whether host is on the denylist. A leading www. is
// ignored.
func (l *List) Contains(host string) bool {
	return l.hosts[strings.TrimPrefix(strings.ToLower(host), "www.")]
}

// Len returns the number of listed hosts.
func (l *List) Len() int { return len(l.hosts) }

func (l *List) readFrom(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l.add(scanner.Text())
	}
	return scanner.Err()
}

// Load fetches all sources concurrently and unions them into one list.
// Sources are URLs or local file paths, newline-delimited hostnames with
// #-prefixed comment lines. A failing source is logged and skipped so one
// dead feed does not lose the rest.
func Load(ctx context.Context, client *http.Client, sources []string) *List {
	list := New()

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for _, source := range sources {
		g.Go(func() error {
			part := New()
			if err := loadSource(ctx, client, source, part); err != nil {
				slog.Warn("failed to load spam source", "source", source, "error", err)
				return nil
			}

			mu.Lock()
			for host := range part.hosts {
				list.hosts[host] = true
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("spam denylist loaded", "hosts", list.Len(), "sources", len(sources))
	return list
}

func loadSource(ctx context.Context, client *http.Client, source string, into *List) error {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %s", resp.Status)
		}
		return into.readFrom(resp.Body)
	}

	file, err := os.Open(source)
	if err != nil {
		return err
	}
	defer file.Close()
	return into.readFrom(file)
}
