// Package starling is a thin client for the slice of the Starling Bank public
// API this tool needs: accounts, the transaction feed, spaces, user notes and
// space withdrawals. It does not interpret responses beyond success/failure.
package starling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spacesweep-dev/spacesweep/internal/model"
)

// Client calls the Starling API with a bearer token. All methods take a
// context and return either decoded payloads or an *APIError.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     zerolog.Logger
}

// New creates a Client. baseURL is an origin like
// "https://api-sandbox.starlingbank.com" with no trailing slash.
func New(baseURL, token string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{},
		log:     logger,
	}
}

// SetHTTPClient replaces the underlying HTTP client, e.g. to add timeouts.
func (c *Client) SetHTTPClient(httpc *http.Client) {
	c.httpc = httpc
}

// APIError is the uniform failure for any non-2xx response.
type APIError struct {
	Status   int
	Endpoint string
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed (%d): %s - %s", e.Status, e.Endpoint, e.Body)
}

type accountsResponse struct {
	Accounts []model.Account `json:"accounts"`
}

type feedResponse struct {
	FeedItems []model.Transaction `json:"feedItems"`
}

type spacesResponse struct {
	SavingsGoals []model.SavingsGoal `json:"savingsGoals"`
}

// Accounts lists all accounts visible to the token.
func (c *Client) Accounts(ctx context.Context) ([]model.Account, error) {
	var resp accountsResponse
	if err := c.get(ctx, "/api/v2/accounts", &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// Transactions lists feed items for an account whose transaction time falls
// in [minTime, maxTime]. Items come back in feed order, unfiltered.
func (c *Client) Transactions(ctx context.Context, accountUid string, minTime, maxTime time.Time) ([]model.Transaction, error) {
	q := url.Values{}
	q.Set("minTransactionTimestamp", minTime.UTC().Format(time.RFC3339))
	q.Set("maxTransactionTimestamp", maxTime.UTC().Format(time.RFC3339))
	endpoint := fmt.Sprintf("/api/v2/feed/account/%s/settled-transactions-between?%s", accountUid, q.Encode())

	var resp feedResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.FeedItems, nil
}

// Spaces lists the savings goals of an account, sorted by name.
func (c *Client) Spaces(ctx context.Context, accountUid string) ([]model.SavingsGoal, error) {
	var resp spacesResponse
	if err := c.get(ctx, fmt.Sprintf("/api/v2/account/%s/spaces", accountUid), &resp); err != nil {
		return nil, err
	}
	goals := resp.SavingsGoals
	sort.Slice(goals, func(i, j int) bool { return goals[i].Name < goals[j].Name })
	return goals, nil
}

// AnnotateTransaction replaces the user note on a feed item. Idempotent when
// repeated with the same note text.
func (c *Client) AnnotateTransaction(ctx context.Context, accountUid, categoryUid, feedItemUid, userNote string) error {
	endpoint := fmt.Sprintf("/api/v2/feed/account/%s/category/%s/%s/user-note", accountUid, categoryUid, feedItemUid)
	body := struct {
		UserNote string `json:"userNote"`
	}{UserNote: userNote}
	return c.put(ctx, endpoint, body)
}

// WithdrawFromSpace moves amount out of a savings goal back into the main
// balance, keyed by the feed item being covered. NOT idempotent: a blind
// retry can withdraw twice.
func (c *Client) WithdrawFromSpace(ctx context.Context, accountUid, savingsGoalUid, feedItemUid string, amount model.Amount) error {
	endpoint := fmt.Sprintf("/api/v2/account/%s/savings-goals/%s/withdraw-money/%s", accountUid, savingsGoalUid, feedItemUid)
	body := struct {
		Amount model.Amount `json:"amount"`
	}{Amount: amount}
	return c.put(ctx, endpoint, body)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) put(ctx context.Context, endpoint string, in any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, http.MethodPut, endpoint, payload, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", endpoint, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	c.log.Debug().Str("method", method).Str("endpoint", endpoint).Str("request_id", requestID).Msg("api call")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			errBody = []byte("Unknown error")
		}
		apiErr := &APIError{Status: resp.StatusCode, Endpoint: endpoint, Body: string(errBody)}
		c.log.Debug().Int("status", resp.StatusCode).Str("request_id", requestID).Msg("api call failed")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}
