// Package client carries the embedded thin client JavaScript bundle.
package client

import _ "embed"

// JS is the thin client script.
//
// It is served by the browser host at "/navio/client.js".
//
//go:embed navio.js
var JS []byte
