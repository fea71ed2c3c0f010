// Package sheets wraps the Google Sheets values API used by the sync job.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"blood-donation-api/config"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

var ErrNoCredentials = errors.New("google credentials not configured")

type Client struct {
	service       *gsheets.Service
	spreadsheetID string
}

// NewClient authenticates with a service account taken from
// GOOGLE_CREDENTIALS_JSON, falling back to the credentials file.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	credentials := []byte(cfg.CredentialsJSON)
	if len(credentials) == 0 {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, ErrNoCredentials
			}
			return nil, fmt.Errorf("failed to read google credentials: %w", err)
		}
		credentials = data
	}

	service, err := gsheets.NewService(ctx,
		option.WithCredentialsJSON(credentials),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service, spreadsheetID: cfg.SpreadsheetID}, nil
}

// GetValues returns the range as strings. Missing trailing cells are omitted
// by the API, so rows may be shorter than the range.
func (c *Client) GetValues(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (c *Client) ClearValues(ctx context.Context, rng string) error {
	_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", rng, err)
	}
	return nil
}

func (c *Client) UpdateValues(ctx context.Context, rng string, values [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", rng, err)
	}
	return nil
}
