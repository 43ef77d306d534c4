// Package site serves the embedded valuation form.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded site to the root of mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
