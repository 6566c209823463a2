// Package lrs talks to the learning record store's statements API.
package lrs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"AssistHub/internal/config"
	"AssistHub/pkg/xerr"
)

// API is the consumed contract of the record store.
type API interface {
	StoreStatements(ctx context.Context, statements []Statement) error
	// StoreStatementsRaw forwards already serialized statements unchanged.
	StoreStatementsRaw(ctx context.Context, statements []json.RawMessage) error
}

type client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

func NewClient(conf config.LrsConfig) API {
	return &client{
		baseURL:  conf.URL,
		username: conf.Username,
		password: conf.Password,
		http: &http.Client{
			Timeout: time.Duration(conf.TimeoutSeconds) * time.Second,
		},
	}
}

func (c *client) StoreStatements(ctx context.Context, statements []Statement) error {
	if len(statements) == 0 {
		return nil
	}
	body, err := json.Marshal(statements)
	if err != nil {
		return err
	}
	return c.post(ctx, body)
}

func (c *client) StoreStatementsRaw(ctx context.Context, statements []json.RawMessage) error {
	if len(statements) == 0 {
		return nil
	}
	body, err := json.Marshal(statements)
	if err != nil {
		return err
	}
	return c.post(ctx, body)
}

func (c *client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/data/xAPI/statements", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Experience-API-Version", "1.0.3")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return xerr.Upstreamf("record store unreachable: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return xerr.Upstreamf("record store returned %s", resp.Status)
	}
	return nil
}
