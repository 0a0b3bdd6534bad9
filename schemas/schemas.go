// Package schemas embeds the JSON Schemas for request payloads.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// RequestSchema is the file name of the generation request schema.
const RequestSchema = "request.schema.json"
