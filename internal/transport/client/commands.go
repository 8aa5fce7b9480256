package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joshdurbin/shortcode-service/internal/domain"
)

// Commands provides command-line operations for the client
type Commands struct {
	client *Client
	out    io.Writer
}

// NewCommands creates a new Commands instance writing to stdout
func NewCommands(client *Client) *Commands {
	return &Commands{
		client: client,
		out:    os.Stdout,
	}
}

// SetOutput redirects command output
func (c *Commands) SetOutput(w io.Writer) {
	c.out = w
}

// Shorten creates a mapping and displays the shortcode
func (c *Commands) Shorten(ctx context.Context, originalURL, shortcode string) error {
	result, err := c.client.Shorten(ctx, originalURL, shortcode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShortcodeTaken):
			return fmt.Errorf("shortcode '%s' is already in use", shortcode)
		case errors.Is(err, domain.ErrInvalidShortcode):
			return fmt.Errorf("shortcode '%s' must be at least 4 characters of [0-9a-zA-Z_]", shortcode)
		}
		return err
	}

	fmt.Fprintf(c.out, "Shortcode created:\n")
	fmt.Fprintf(c.out, "Shortcode: %s\n", result.Shortcode)
	fmt.Fprintf(c.out, "URL: %s\n", originalURL)

	return nil
}

// Stats retrieves and displays the statistics of a shortcode
func (c *Commands) Stats(ctx context.Context, shortcode string) error {
	stats, err := c.client.Stats(ctx, shortcode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Fprintf(c.out, "Shortcode '%s' not found\n", shortcode)
			return nil
		}
		return err
	}

	fmt.Fprintf(c.out, "Shortcode Statistics:\n")
	fmt.Fprintf(c.out, "Shortcode: %s\n", shortcode)
	fmt.Fprintf(c.out, "Start Date: %s\n", stats.StartDate)
	if stats.LastSeenDate != nil {
		fmt.Fprintf(c.out, "Last Seen Date: %s\n", *stats.LastSeenDate)
	} else {
		fmt.Fprintf(c.out, "Last Seen Date: Never\n")
	}
	fmt.Fprintf(c.out, "Redirect Count: %d\n", stats.RedirectCount)

	return nil
}

// Resolve displays the URL a shortcode redirects to
func (c *Commands) Resolve(ctx context.Context, shortcode string) error {
	target, err := c.client.Resolve(ctx, shortcode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Fprintf(c.out, "Shortcode '%s' not found\n", shortcode)
			return nil
		}
		return err
	}

	fmt.Fprintf(c.out, "%s -> %s\n", shortcode, target)
	return nil
}
