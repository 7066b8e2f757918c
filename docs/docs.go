// Package docs registers the generated Swagger specification.
// Regenerate with: swag init -g cmd/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Authenticate and receive a token pair",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/public/societies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "List all societies in the public directory",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/public/societies/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Aggregated public page data for one society",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true},
                    {"type": "integer", "name": "preview", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "PACS Portal API",
	Description:      "Multi-tenant directory and admin portal for Primary Agricultural Cooperative Societies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
