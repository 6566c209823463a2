// Package backbone talks to the assistance backbone's REST API.
package backbone

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

// API is the consumed contract of the assistance backbone.
type API interface {
	GetSupportedAssistanceTypes(ctx context.Context) (*AssistanceTypeList, error)
	ProcessStatement(ctx context.Context, request StatementProcessingRequest) error
	InitiateAssistance(ctx context.Context, request AssistanceInitiationRequest) (*AssistanceBundle, error)
	UpdateAssistanceProcess(ctx context.Context, aID string, responses []AssistanceResponse) error
	SearchAssistanceObjects(ctx context.Context, parameters []SearchParameter) (*AssistanceObjectList, error)
	SearchLearningContentObjects(ctx context.Context, parameters []SearchParameter) (*LearningContentObjectList, error)
}

type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(conf config.BackboneConfig) API {
	return &client{
		baseURL: conf.URL,
		apiKey:  conf.APIKey,
		http: &http.Client{
			Timeout: time.Duration(conf.TimeoutSeconds) * time.Second,
		},
	}
}

func (c *client) GetSupportedAssistanceTypes(ctx context.Context) (*AssistanceTypeList, error) {
	var list AssistanceTypeList
	if err := c.call(ctx, http.MethodGet, "/api/v1/assistance-types", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *client) ProcessStatement(ctx context.Context, request StatementProcessingRequest) error {
	return c.call(ctx, http.MethodPost, "/api/v1/statements", request, nil)
}

func (c *client) InitiateAssistance(ctx context.Context, request AssistanceInitiationRequest) (*AssistanceBundle, error) {
	var bundle AssistanceBundle
	if err := c.call(ctx, http.MethodPost, "/api/v1/assistance", request, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *client) UpdateAssistanceProcess(ctx context.Context, aID string, responses []AssistanceResponse) error {
	return c.call(ctx, http.MethodPatch, "/api/v1/assistance/"+aID, responses, nil)
}

func (c *client) SearchAssistanceObjects(ctx context.Context, parameters []SearchParameter) (*AssistanceObjectList, error) {
	var list AssistanceObjectList
	if err := c.call(ctx, http.MethodPost, "/api/v1/assistance-objects/search", parameters, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *client) SearchLearningContentObjects(ctx context.Context, parameters []SearchParameter) (*LearningContentObjectList, error) {
	var list LearningContentObjectList
	if err := c.call(ctx, http.MethodPost, "/api/v1/lcos/search", parameters, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *client) call(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return xerr.Upstreamf("assistance backbone unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return xerr.Upstreamf("assistance backbone returned %s", resp.Status)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
