package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Cover Planner API",
        "description": "Timetable ingestion and cover availability for school operations",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedules", "description": "Workbook upload and schedule ingestion"},
        {"name": "Teachers", "description": "Teaching roster and weekly schedules"},
        {"name": "Absences", "description": "Absence records and cover resolution"},
        {"name": "Dashboard", "description": "Summary counters"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Dependencies unavailable"}
                }
            }
        },
        "/api/v1/schedule/upload": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Upload a timetable workbook",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true, "description": "Workbook (.xlsx)"}
                ],
                "responses": {
                    "200": {"description": "Import report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unreadable workbook or missing file"},
                    "413": {"description": "File too large"},
                    "415": {"description": "Unsupported file type"}
                }
            }
        },
        "/api/v1/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Teacher list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Teacher", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Teacher not found"}
                }
            }
        },
        "/api/v1/teachers/{id}/schedule": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get a teacher's weekly schedule",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Weekly schedule", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Teacher not found"}
                }
            }
        },
        "/api/v1/absences": {
            "get": {
                "tags": ["Absences"],
                "summary": "List recent absences",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer", "default": 10}
                ],
                "responses": {
                    "200": {"description": "Absence list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Absences"],
                "summary": "Record an absence",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAbsenceInput"}}
                ],
                "responses": {
                    "201": {"description": "Absence recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"},
                    "404": {"description": "Teacher not found"}
                }
            }
        },
        "/api/v1/absences/batch": {
            "post": {
                "tags": ["Absences"],
                "summary": "Record absences for several teachers at once",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchAbsenceInput"}}
                ],
                "responses": {
                    "200": {"description": "Partial-success report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/api/v1/absences/{id}": {
            "get": {
                "tags": ["Absences"],
                "summary": "Get absence detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Absence", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Absence not found"}
                }
            }
        },
        "/api/v1/absences/{id}/available-teachers": {
            "get": {
                "tags": ["Absences"],
                "summary": "Resolve cover availability for an absence",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Per-slot availability", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Absence not found"}
                }
            }
        },
        "/api/v1/absences/{id}/cover-sheet": {
            "get": {
                "tags": ["Absences"],
                "summary": "Download a printable cover sheet",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "description": "csv or pdf", "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered cover sheet"},
                    "400": {"description": "Unsupported format"},
                    "404": {"description": "Absence not found"}
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard summary counters",
                "responses": {
                    "200": {"description": "Summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateAbsenceInput": {
            "type": "object",
            "required": ["teacher_id", "date"],
            "properties": {
                "teacher_id": {"type": "string"},
                "date": {"type": "string", "example": "2024-03-04"},
                "reason": {"type": "string"}
            }
        },
        "BatchAbsenceInput": {
            "type": "object",
            "required": ["date", "teacher_names"],
            "properties": {
                "date": {"type": "string", "example": "2024-03-04"},
                "reason": {"type": "string"},
                "teacher_names": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
