package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"bilancio/internal/analysis"
	"bilancio/internal/config"
	ports "bilancio/internal/sheets"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.ReportExporter = (*Client)(nil)

// NewFromConfig creates a Sheets client from the application configuration.
// Authorization uses an OAuth client plus a stored token; run oauth-init once
// to produce the token file.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Client, error) {
	if strings.TrimSpace(cfg.GoogleSpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(cfg.GoogleSheetName)
	if sheetName == "" {
		sheetName = "Reports"
	}

	httpClient, err := newOAuthClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("oauth client: %w", err)
	}

	svc, err := gsheet.NewService(ctx, goption.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newOAuthClient(ctx context.Context, cfg *config.Config) (*http.Client, error) {
	clientJSON, err := readCredential(cfg.GoogleOAuthClientJSON, cfg.GoogleOAuthClientFile)
	if err != nil {
		return nil, fmt.Errorf("load oauth client credentials: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client credentials: %w", err)
	}

	tokenJSON, err := readCredential(cfg.GoogleOAuthTokenJSON, cfg.GoogleOAuthTokenFile)
	if err != nil {
		return nil, fmt.Errorf("load oauth token (run oauth-init first): %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	return oauthCfg.Client(ctx, &token), nil
}

func readCredential(inline, file string) ([]byte, error) {
	switch {
	case strings.TrimSpace(inline) != "":
		return []byte(inline), nil
	case strings.TrimSpace(file) != "":
		return os.ReadFile(file)
	}
	return nil, errors.New("no credential configured")
}

// AppendReport writes a one-row snapshot of the report to the configured
// sheet and returns the row reference.
func (c *Client) AppendReport(ctx context.Context, r analysis.Report) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	// Find the next empty row by reading the first column.
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get sheet dimensions for %s: %w", c.sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	row := snapshotRow(r, time.Now().UTC())
	dataRange := fmt.Sprintf("%s!A%d:K%d", c.sheetName, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update sheet %s: %w", c.sheetName, err)
	}

	return dataRange, nil
}

// snapshotRow flattens the headline report figures into one sheet row:
// timestamp, period, score, status, net income, savings rate, income,
// expenses, investments, over-budget count, behind-target count.
func snapshotRow(r analysis.Report, now time.Time) []any {
	return []any{
		now.Format(time.RFC3339),
		fmt.Sprintf("%04d-%02d", r.Period.Year, r.Period.Month),
		r.HealthScore,
		r.Summary.HealthStatus,
		r.NetIncome.StringFixed(2),
		r.SavingsRate.StringFixed(2),
		r.Income.Total.StringFixed(2),
		r.Expenses.Total.StringFixed(2),
		r.Investments.Total.StringFixed(2),
		r.Budgets.OverBudget,
		r.Targets.Behind,
	}
}
