// Package schemas embeds the JSON Schemas describing request payloads.
package schemas

import _ "embed"

// Payload is the JSON Schema of the POST /generate request body.
//
//go:embed payload.schema.json
var Payload string
