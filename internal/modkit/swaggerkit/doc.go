package swaggerkit

// doc is the hand maintained OpenAPI document for the v1 surface
const doc = `{
  "openapi": "3.0.3",
  "info": {"title": "batchtrace", "version": "1.0.0"},
  "components": {
    "securitySchemes": {"bearer": {"type": "http", "scheme": "bearer"}}
  },
  "paths": {
    "/api/v1/meta/health": {"get": {"summary": "Liveness", "tags": ["meta"], "responses": {"200": {"description": "ok"}}}},
    "/api/v1/meta/ready": {"get": {"summary": "Readiness including the store", "tags": ["meta"], "responses": {"200": {"description": "ready"}, "503": {"description": "store unavailable"}}}},
    "/api/v1/meta/version": {"get": {"summary": "Build information", "tags": ["meta"], "responses": {"200": {"description": "version info"}}}},
    "/api/v1/meta/service": {"get": {"summary": "Service name and uptime", "tags": ["meta"], "responses": {"200": {"description": "service info"}}}},
    "/api/v1/verify/sessions": {
      "post": {"summary": "Load the catalog and open a verification session", "tags": ["verify"],
        "responses": {"201": {"description": "session opened"}, "503": {"description": "catalog unavailable"}}}
    },
    "/api/v1/verify/sessions/{id}/submissions": {
      "post": {"summary": "Submit a batch code for verification", "tags": ["verify"],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "verification result"}, "404": {"description": "unknown or expired session"}, "400": {"description": "missing required fields"}}}
    },
    "/api/v1/verify/images/edit": {
      "post": {"summary": "Edit a pack photo", "tags": ["verify"],
        "responses": {"200": {"description": "edited image data URL"}, "503": {"description": "image editing not configured"}}}
    },
    "/api/v1/admin/submissions": {
      "get": {"summary": "List submissions", "tags": ["admin"], "security": [{"bearer": []}],
        "parameters": [
          {"name": "range", "in": "query", "schema": {"type": "string", "enum": ["all", "today", "week", "month", "last_month", "quarter", "last_quarter", "custom"]}},
          {"name": "start", "in": "query", "schema": {"type": "string", "format": "date"}},
          {"name": "end", "in": "query", "schema": {"type": "string", "format": "date"}},
          {"name": "q", "in": "query", "schema": {"type": "string"}}
        ],
        "responses": {"200": {"description": "filtered submissions"}, "401": {"description": "unauthorized"}}},
      "delete": {"summary": "Clear all submissions", "tags": ["admin"], "security": [{"bearer": []}],
        "responses": {"204": {"description": "cleared"}, "401": {"description": "unauthorized"}}}
    },
    "/api/v1/admin/submissions/export": {
      "get": {"summary": "Export filtered submissions as CSV", "tags": ["admin"], "security": [{"bearer": []}],
        "responses": {"200": {"description": "CSV attachment", "content": {"text/csv": {}}}, "401": {"description": "unauthorized"}, "404": {"description": "nothing matches the filter"}}}
    }
  }
}`
