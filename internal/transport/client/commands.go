package client

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Commands provides command-line operations for the client
type Commands struct {
	client *Client
}

// NewCommands creates a new Commands instance
func NewCommands(client *Client) *Commands {
	return &Commands{
		client: client,
	}
}

// Create creates a short SMS link and displays the result
func (c *Commands) Create(ctx context.Context, phone, message string) error {
	record, err := c.client.CreateLink(ctx, phone, message)
	if err != nil {
		return err
	}

	fmt.Printf("Short link created:\n")
	fmt.Printf("Short ID: %s\n", record.ShortID)
	fmt.Printf("Short URL: %s\n", record.ShortURL)
	fmt.Printf("Deep Link: %s\n", record.DeepLink)
	fmt.Printf("Recipient: %s\n", record.Recipient)
	fmt.Printf("Created At: %s\n", record.CreatedAt.Format(time.RFC3339))

	return nil
}

// Get retrieves and displays the analytics snapshot for a short ID
func (c *Commands) Get(ctx context.Context, shortID string) error {
	record, err := c.client.GetLink(ctx, shortID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Short id '%s' not found\n", shortID)
			return nil
		}
		return err
	}

	fmt.Printf("Link analytics:\n")
	fmt.Printf("Short ID: %s\n", record.ShortID)
	fmt.Printf("Short URL: %s\n", record.ShortURL)
	fmt.Printf("Recipient: %s\n", record.Recipient)
	fmt.Printf("Message: %s\n", record.Message)
	fmt.Printf("Deep Link: %s\n", record.DeepLink)
	fmt.Printf("Created At: %s\n", record.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Updated At: %s\n", record.UpdatedAt.Format(time.RFC3339))
	if record.LastClickedAt != nil {
		fmt.Printf("Last Clicked At: %s\n", record.LastClickedAt.Format(time.RFC3339))
	} else {
		fmt.Printf("Last Clicked At: Never\n")
	}
	fmt.Printf("Click Count: %d\n", record.ClickCount)

	return nil
}

// Resolve resolves a short ID and displays the deep link
func (c *Commands) Resolve(ctx context.Context, shortID string) error {
	deepLink, err := c.client.Resolve(ctx, shortID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Printf("Short id '%s' not found\n", shortID)
			return nil
		}
		return err
	}

	fmt.Printf("Deep Link: %s\n", deepLink)
	return nil
}

// Status displays the service status
func (c *Commands) Status(ctx context.Context) error {
	status, err := c.client.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Total links: %d\n", status.TotalLinks)
	return nil
}
