package net

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service a LAN grading server advertises.
const ServiceType = "_workcheck._tcp"

// ErrNotFound means no grading service answered before the deadline.
var ErrNotFound = errors.New("no grading service found")

// Discover browses the LAN for a grading service and returns its base URL.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	queryErr := make(chan error, 1)
	go func() {
		queryErr <- mdns.Query(params)
	}()

	for {
		select {
		case e := <-entries:
			if u, ok := endpointFor(e); ok {
				slog.Info("[MDNS] grading service found", slog.String("name", e.Name), slog.String("url", u))
				return u, nil
			}
		case err := <-queryErr:
			if err != nil {
				return "", fmt.Errorf("mdns query: %w", err)
			}
			// Drain anything that arrived with the final response.
			for {
				select {
				case e := <-entries:
					if u, ok := endpointFor(e); ok {
						return u, nil
					}
				default:
					return "", ErrNotFound
				}
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func endpointFor(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return fmt.Sprintf("http://%s:%d", e.AddrV4.String(), e.Port), true
}
