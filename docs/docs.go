// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/api/users/register": {"post": {"tags": ["users"], "summary": "Register", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/api/users/login": {"post": {"tags": ["users"], "summary": "Login", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/users/{userId}/profiles": {
            "get": {"tags": ["users"], "summary": "Get profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["users"], "summary": "Update profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/api/houses": {
            "get": {"tags": ["houses"], "summary": "List houses", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["houses"], "summary": "Create house", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/houses/{houseId}": {
            "get": {"tags": ["houses"], "summary": "Get house", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["houses"], "summary": "Update house", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Updated"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["houses"], "summary": "Delete house", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/api/my_houses": {"get": {"tags": ["houses"], "summary": "List my houses", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/house/photos": {
            "get": {"tags": ["photos"], "summary": "List house photos", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["photos"], "summary": "Upload house photos", "consumes": ["multipart/form-data"], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "413": {"description": "Request Entity Too Large"}}}
        },
        "/api/house/photos/{photoId}": {"get": {"tags": ["photos"], "summary": "Get house photo", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/amenities": {
            "get": {"tags": ["amenities"], "summary": "List amenities", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["amenities"], "summary": "Create amenity", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/amenities/{amenityId}": {"delete": {"tags": ["amenities"], "summary": "Delete amenity", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/location": {"post": {"tags": ["locations"], "summary": "Create location", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/api/location/{locationId}": {"get": {"tags": ["locations"], "summary": "Get location", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/activity": {"get": {"tags": ["activity"], "summary": "List activity", "description": "The caller's own house and photo mutations, oldest first.", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "House Rental API",
	Description:      "Authenticated house rental CRUD with ownership checks and photo uploads.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
