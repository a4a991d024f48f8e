// Package static embeds the page assets served alongside the wasm client.
// The wasm binary itself is a build artifact and is served from the dist
// directory instead of being embedded.
package static

import "embed"

//go:embed app.js style.css
var FS embed.FS
