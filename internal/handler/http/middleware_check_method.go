// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler
// via [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 when a path matches a route but the method does not.
// Every route here answers 404 instead, so an unsupported method does not
// reveal that the path exists. The lookup compares route patterns against
// the raw request path; parameterised segments are not expanded.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// The method is registered after all; let the router dispatch it.
		router.ServeHTTP(w, r)
	}
}
