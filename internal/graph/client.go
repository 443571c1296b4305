// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

// client.go - Microsoft Graph client shared by the OneNote packages.
//
// Client bundles the Graph SDK service client (listings, shares, createLink) with a
// plain HTTP client for the page content endpoint, which is streamed rather than
// parsed. Both authenticate through the same auth.TokenSource, so a refreshed token
// is picked up by the next request of either kind.
//
// The SDK pipeline is built without the retry handler: a failed call is reported to
// the caller as is.
//
// Usage Example:
//   tokens, _ := auth.NewFileTokenSource(oauthCfg, tokenPath)
//   client, err := graph.NewClient(tokens, graph.WithBaseURL(cfg.GraphBaseURL))

package graph

import (
	"context"
	"errors"
	"net/http"
	"strings"

	abstractions "github.com/microsoft/kiota-abstractions-go"
	khttp "github.com/microsoft/kiota-http-go"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	msgraphcore "github.com/microsoftgraph/msgraph-sdk-go-core"

	"github.com/gebl/onenote-connector/internal/auth"
	"github.com/gebl/onenote-connector/internal/logging"
)

const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Client handles Microsoft Graph requests for OneNote.
type Client struct {
	GraphClient *msgraphsdk.GraphServiceClient
	Tokens      auth.TokenSource
	HTTPClient  *http.Client
	BaseURL     string
}

type Option func(*Client)

// WithBaseURL points both the SDK and raw requests at another Graph root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.BaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the client used for raw content requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

func NewClient(tokens auth.TokenSource, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, errors.New("token source cannot be nil")
	}
	c := &Client{
		Tokens:     tokens,
		HTTPClient: http.DefaultClient,
		BaseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	sdkHTTP := khttp.GetDefaultClient(middlewares()...)
	adapter, err := msgraphsdk.NewGraphRequestAdapterWithParseNodeFactoryAndSerializationWriterFactoryAndHttpClient(
		&TokenSourceProvider{Tokens: tokens}, nil, nil, sdkHTTP)
	if err != nil {
		return nil, err
	}
	c.GraphClient = msgraphsdk.NewGraphServiceClient(adapter)
	adapter.SetBaseUrl(c.BaseURL)

	logging.GraphLogger.Debug("Graph client created", "base_url", c.BaseURL)
	return c, nil
}

// middlewares is the SDK request pipeline. The URL replace handler maps the
// SDK's "/users/me-token-to-replace" placeholder back to "/me". There is no
// retry handler.
func middlewares() []khttp.Middleware {
	return []khttp.Middleware{
		khttp.NewUrlReplaceHandler(true, msgraphcore.ReplacementPairs),
		khttp.NewRedirectHandler(),
		khttp.NewParametersNameDecodingHandler(),
		khttp.NewUserAgentHandler(),
	}
}

// TokenSourceProvider authenticates SDK requests from an auth.TokenSource.
type TokenSourceProvider struct {
	Tokens auth.TokenSource
}

func (p *TokenSourceProvider) AuthenticateRequest(ctx context.Context, request *abstractions.RequestInformation, _ map[string]interface{}) error {
	if request == nil {
		return errors.New("request cannot be nil")
	}
	token, err := p.Tokens.Token(ctx)
	if err != nil {
		logging.GraphLogger.Error("Could not obtain access token", "error", err)
		return err
	}
	request.Headers.Add("Authorization", "Bearer "+token)
	return nil
}
