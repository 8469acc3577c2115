// Package docs registers the OpenAPI description served under /api/swagger.
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
        "/v1/conversations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "List conversations",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Conversation"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "Create a conversation",
                "parameters": [
                    {"description": "Optional title", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateConversationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Conversation"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/conversations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "Get a conversation transcript",
                "parameters": [
                    {"type": "string", "description": "Conversation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Transcript"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "Delete a conversation",
                "parameters": [
                    {"type": "string", "description": "Conversation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/conversations/{id}/export": {
            "post": {
                "description": "Appends one row per prompt/response pair after the last used row of the first worksheet.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Export"],
                "summary": "Export to Google Sheets",
                "parameters": [
                    {"type": "string", "description": "Conversation ID", "name": "id", "in": "path", "required": true},
                    {"description": "Sheet URL or ID", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/export.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/export.Result"}}
                }
            }
        },
        "/v1/conversations/{id}/messages": {
            "post": {
                "description": "Appends the user message and streams the assistant reply as server-sent events. Use \"new\" as the ID to start a conversation.",
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["Conversations"],
                "summary": "Send a message",
                "parameters": [
                    {"type": "string", "description": "Conversation ID or new", "name": "id", "in": "path", "required": true},
                    {"description": "User message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SendMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "Stream of reply chunks", "schema": {"$ref": "#/definitions/model.StreamResponse"}},
                    "400": {"description": "Sent as a stream error event", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/conversations/{id}/turns": {
            "delete": {
                "description": "Removes every turn of the conversation and keeps the conversation.",
                "produces": ["application/json"],
                "tags": ["Conversations"],
                "summary": "Clear chat",
                "parameters": [
                    {"type": "string", "description": "Conversation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/hub/download": {
            "post": {
                "description": "Downloads a GGUF file from the Hub and selects it. This is a streaming endpoint.",
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["Hub"],
                "summary": "Download a model",
                "parameters": [
                    {"description": "Repository and file", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/hub.DownloadRequest"}}
                ],
                "responses": {
                    "200": {"description": "Stream of progress status", "schema": {"$ref": "#/definitions/hub.DownloadStatus"}},
                    "400": {"description": "Sent as a stream error event", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/hub/files": {
            "get": {
                "description": "Lists the GGUF files of a Hugging Face repository.",
                "produces": ["application/json"],
                "tags": ["Hub"],
                "summary": "Browse Hub files",
                "parameters": [
                    {"type": "string", "description": "Repository ID, e.g. Qwen/Qwen3-0.6B-GGUF", "name": "repo", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HubFilesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/models/inspect": {
            "get": {
                "description": "Reports whether a model file exists and its size in GB.",
                "produces": ["application/json"],
                "tags": ["Models"],
                "summary": "Inspect a model path",
                "parameters": [
                    {"type": "string", "description": "Model file path", "name": "path", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ModelInfo"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/models/local": {
            "get": {
                "description": "Lists the GGUF files found under the models directory.",
                "produces": ["application/json"],
                "tags": ["Models"],
                "summary": "List local models",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/service.ModelInfo"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/v1/settings": {
            "get": {
                "description": "Returns the model path, temperature and system prompt used for new replies.",
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Get settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Settings"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Validates and stores the settings. The model path must exist on disk.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Update settings",
                "parameters": [
                    {"description": "New settings", "name": "settings", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.Settings"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.CreateConversationRequest": {
            "type": "object",
            "properties": {"title": {"type": "string", "maxLength": 100, "example": "Qwen smoke test"}}
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "api.HubFilesResponse": {
            "type": "object",
            "properties": {
                "files": {"type": "array", "items": {"type": "string"}},
                "repo": {"type": "string"}
            }
        },
        "api.SendMessageRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {"content": {"type": "string", "example": "Hello, how are you?"}}
        },
        "api.StatusResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "export.Result": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "rows": {"type": "integer"},
                "start_row": {"type": "integer"},
                "success": {"type": "boolean"}
            }
        },
        "hub.DownloadRequest": {
            "type": "object",
            "required": ["filename", "repo_id"],
            "properties": {
                "filename": {"type": "string"},
                "local_dir": {"type": "string"},
                "repo_id": {"type": "string"}
            }
        },
        "hub.DownloadStatus": {
            "type": "object",
            "properties": {
                "completed": {"type": "integer"},
                "error": {"type": "string"},
                "filename": {"type": "string"},
                "path": {"type": "string"},
                "status": {"type": "string"},
                "total": {"type": "integer"}
            }
        },
        "model.Conversation": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.StreamResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "conversation_id": {"type": "string"},
                "done": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "model.Transcript": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "title": {"type": "string"},
                "turns": {"type": "array", "items": {"$ref": "#/definitions/model.Turn"}},
                "updated_at": {"type": "string"}
            }
        },
        "model.Turn": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "id": {"type": "string"},
                "role": {"type": "string", "enum": ["system", "user", "assistant"]},
                "timestamp": {"type": "string"}
            }
        },
        "service.ExportRequest": {
            "type": "object",
            "required": ["sheet"],
            "properties": {"sheet": {"type": "string"}}
        },
        "service.ModelInfo": {
            "type": "object",
            "properties": {
                "exists": {"type": "boolean"},
                "name": {"type": "string"},
                "path": {"type": "string"},
                "size_bytes": {"type": "integer"},
                "size_gb": {"type": "number"}
            }
        },
        "service.Settings": {
            "type": "object",
            "properties": {
                "model_path": {"type": "string"},
                "system_prompt": {"type": "string"},
                "temperature": {"type": "number", "maximum": 2, "minimum": 0}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "chatbench API",
	Description:      "Chat with local GGUF models and export transcripts to Google Sheets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
