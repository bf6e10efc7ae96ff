// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package e2e

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/phayes/freeport"
	"github.com/stretchr/testify/require"
)

// FakeGithubAPI serves a fixed list of tags for a single repository
type FakeGithubAPI struct {
	URL    string
	server *http.Server
}

func NewFakeGithubAPI(t *testing.T, slug string, tagsJSON string) *FakeGithubAPI {
	port, err := freeport.GetFreePort()
	require.NoError(t, err)

	addr := fmt.Sprintf("localhost:%d", port)

	mux := http.NewServeMux()
	mux.HandleFunc(fmt.Sprintf("/repos/%s/tags", slug), func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, tagsJSON)
	})

	api := &FakeGithubAPI{
		URL:    fmt.Sprintf("http://%s/", addr),
		server: &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
	}

	go func() {
		err := api.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			panic(err.Error())
		}
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(api.URL + "repos/" + slug + "/tags")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	t.Cleanup(func() { api.server.Shutdown(context.Background()) })

	return api
}
