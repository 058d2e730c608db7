// Package docs registers the OpenAPI document served on /swagger/.
// Regenerate with: swag init -g docs/swagger_insurance.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Root",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "description": "Returns the health status of the service and its database",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/clients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "List clients",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Create a client",
                "parameters": [
                    {"description": "Client", "name": "client", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ClientRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/points/nearest": {
            "get": {
                "description": "Returns the stored point closest to the given coordinate (haversine distance in km). Points without coordinates are ignored and listed in skipped_point_ids.",
                "produces": ["application/json"],
                "tags": ["Points"],
                "summary": "Nearest point",
                "parameters": [
                    {"type": "number", "description": "Latitude in degrees", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude in degrees", "name": "lon", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.NearestPoint"}},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/points.geojson": {
            "get": {
                "description": "FeatureCollection of every point that has coordinates.",
                "produces": ["application/json"],
                "tags": ["Points"],
                "summary": "Points as GeoJSON",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/policies": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Policies"],
                "summary": "Create a policy",
                "parameters": [
                    {"description": "Policy", "name": "policy", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PolicyRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/climate-records/bulk": {
            "post": {
                "description": "Inserts every record in one transaction; nothing is stored if any record fails.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Climate"],
                "summary": "Import climate records",
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/points/{id}/climate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Climate"],
                "summary": "Climate history of a point",
                "parameters": [
                    {"type": "integer", "description": "Point ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Only records of this year", "name": "year", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/climate/nearest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Climate"],
                "summary": "Climate history of the nearest point",
                "parameters": [
                    {"type": "number", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "name": "lon", "in": "query", "required": true},
                    {"type": "integer", "name": "year", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "dto.ClientRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "document_id": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"}
            }
        },
        "dto.PolicyRequest": {
            "type": "object",
            "properties": {
                "policy_number": {"type": "string"},
                "client_id": {"type": "integer"},
                "crop_id": {"type": "integer"},
                "point_id": {"type": "integer"},
                "insured_area_ha": {"type": "number"},
                "insured_amount": {"type": "number"},
                "premium": {"type": "number"},
                "start_date": {"type": "string", "example": "2024-03-05"},
                "end_date": {"type": "string", "example": "2025-03-05"},
                "status": {"type": "string", "enum": ["ACTIVE", "EXPIRED", "CANCELLED"]}
            }
        },
        "models.Point": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "elevation_m": {"type": "number"}
            }
        },
        "models.NearestPoint": {
            "type": "object",
            "properties": {
                "nearest": {"$ref": "#/definitions/models.Point"},
                "distance_km": {"type": "number"},
                "skipped_point_ids": {"type": "array", "items": {"type": "integer"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Agro Insurance API",
	Description:      "Clients, crops and policies of an agricultural insurer, georeferenced points with their climate history, and a nearest point lookup by great-circle distance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
