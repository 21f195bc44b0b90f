// Package docs registers the swagger spec served at /swagger.
// Regenerate with: swag init -g cmd/voucher_backend/main.go -o cmd/docs
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
        "/vouchers": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["vouchers"],
                "summary": "Create a voucher",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Structural error"},
                    "404": {"description": "Account not found"},
                    "409": {"description": "Numbering conflict"},
                    "422": {"description": "Business rule violated"}
                }
            }
        },
        "/vouchers/transitions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["vouchers"],
                "summary": "Check whether a status change is allowed",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query", "required": true},
                    {"type": "string", "name": "to", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown status"}}
            }
        },
        "/vouchers/{voucherID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["vouchers"],
                "summary": "Get a voucher",
                "parameters": [{"type": "string", "name": "voucherID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Voucher not found"}}
            }
        },
        "/vouchers/{voucherID}/entries": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vouchers"],
                "summary": "Edit a voucher",
                "parameters": [{"type": "string", "name": "voucherID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Voucher was modified concurrently"},
                    "422": {"description": "Voucher locked or unbalanced"}
                }
            }
        },
        "/vouchers/{voucherID}/transitions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vouchers"],
                "summary": "Move a voucher through its lifecycle",
                "parameters": [{"type": "string", "name": "voucherID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Voucher was modified concurrently"},
                    "422": {"description": "Transition not allowed or entries unbalanced"}
                }
            }
        },
        "/vouchers/{voucherID}/reconciliation": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vouchers"],
                "summary": "Attach a reconciliation record",
                "parameters": [{"type": "string", "name": "voucherID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Voucher locked"}}
            }
        },
        "/vouchers/{voucherID}/attachments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["vouchers"],
                "summary": "Upload a voucher attachment",
                "parameters": [
                    {"type": "string", "name": "voucherID", "in": "path", "required": true},
                    {"type": "file", "name": "attachment", "in": "formData", "required": true}
                ],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Voucher not found"}}
            }
        },
        "/conversions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["conversions"],
                "summary": "Convert an amount",
                "responses": {"200": {"description": "OK"}, "422": {"description": "Invalid exchange rate"}}
            }
        },
        "/reconciliations": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reconciliations"],
                "summary": "Reconcile a bank statement against the books",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reconciliations/statements/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["reconciliations"],
                "summary": "Import a bank statement",
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Missing or unreadable file"}}
            }
        },
        "/accounts/{accountModel}/{accountID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Resolve an account reference",
                "parameters": [
                    {"type": "string", "name": "accountModel", "in": "path", "required": true},
                    {"type": "string", "name": "accountID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Account not found"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Voucher Ledger API",
	Description:      "Voucher creation, lifecycle, conversion and bank reconciliation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
