package api

import _ "embed"

// OpenAPI is the OpenAPI 3 document of the presentation API.
//
//go:embed openapi.yml
var OpenAPI []byte
