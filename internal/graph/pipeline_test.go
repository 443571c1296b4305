// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package graph_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gebl/onenote-connector/internal/graph/graphtest"
)

func TestClient_MeRequestsUseMePath(t *testing.T) {
	srv := graphtest.New(t)
	srv.Collection("/me/onenote/notebooks", graphtest.Notebook("nb-1", "Mine"))
	c := srv.NewClient(t)

	resp, err := c.GraphClient.Me().Onenote().Notebooks().Get(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, resp.GetValue(), 1)
	assert.Equal(t, "Mine", *resp.GetValue()[0].GetDisplayName())
	assert.Equal(t, []string{"GET /me/onenote/notebooks"}, srv.Requests())
}

func TestClient_NoRetryOnServiceUnavailable(t *testing.T) {
	srv := graphtest.New(t)
	srv.Handle("/me/onenote/notebooks", func(w http.ResponseWriter, r *http.Request) {
		graphtest.WriteError(w, http.StatusServiceUnavailable, "serviceNotAvailable", "try later")
	})
	c := srv.NewClient(t)

	_, err := c.GraphClient.Me().Onenote().Notebooks().Get(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, 1, srv.Calls("/me/onenote/notebooks"))
}
