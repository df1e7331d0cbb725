// Package docs Swagger文档
//
// 修改handler注释后执行 swag init -g cmd/api/main.go -o docs 重新生成
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
        "/api/v1/auth/register": {
            "post": {
                "tags": ["认证"],
                "summary": "用户注册",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "注册成功", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "邮箱已存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["认证"],
                "summary": "用户登录",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "登录成功", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "邮箱或密码错误", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/auth/refresh": {
            "post": {
                "tags": ["认证"],
                "summary": "刷新Token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RefreshRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["认证"],
                "summary": "用户登出",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/books": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["图书"],
                "summary": "新增图书",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBookRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "无权限", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/books/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["图书"],
                "summary": "检索图书",
                "parameters": [
                    {"type": "string", "name": "title", "in": "query"},
                    {"type": "string", "name": "author", "in": "query"},
                    {"type": "string", "name": "genre", "in": "query"},
                    {"type": "string", "name": "publish_date_from", "in": "query"},
                    {"type": "string", "name": "publish_date_to", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "size", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "sort", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/books/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["图书"],
                "summary": "图书详情",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["图书"],
                "summary": "更新图书",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateBookRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["图书"],
                "summary": "删除图书",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/books/rating/{bookId}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["评分"],
                "summary": "给图书评分",
                "parameters": [
                    {"type": "integer", "name": "bookId", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.AddRatingRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/books/reviews/{bookId}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["评论"],
                "summary": "发表评论",
                "parameters": [
                    {"type": "integer", "name": "bookId", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CreateReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "已评论过", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/v1/genres/top-rated/{genre}": {
            "get": {
                "tags": ["评分"],
                "summary": "类型高分榜",
                "parameters": [
                    {"type": "string", "name": "genre", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "dto.RegisterRequest": {
            "type": "object",
            "required": ["email", "nickname", "password"],
            "properties": {
                "email": {"type": "string", "example": "reader@example.com"},
                "password": {"type": "string", "maxLength": 20, "minLength": 8, "example": "password123"},
                "nickname": {"type": "string", "maxLength": 50, "minLength": 2, "example": "Reader"},
                "role": {"type": "string", "example": "USER"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "dto.CreateBookRequest": {
            "type": "object",
            "required": ["author", "genre", "publish_date", "title"],
            "properties": {
                "title": {"type": "string", "maxLength": 255, "example": "Atomic Habits"},
                "author": {"type": "string", "maxLength": 255, "example": "James Clear"},
                "description": {"type": "string", "maxLength": 5000},
                "genre": {"type": "string", "maxLength": 100, "example": "Self-help"},
                "publish_date": {"type": "string", "example": "2018-10-16"}
            }
        },
        "dto.UpdateBookRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "author": {"type": "string"},
                "description": {"type": "string"},
                "genre": {"type": "string"},
                "publish_date": {"type": "string", "example": "2018-10-16"}
            }
        },
        "dto.AddRatingRequest": {
            "type": "object",
            "required": ["rating"],
            "properties": {"rating": {"type": "integer", "maximum": 5, "minimum": 1, "example": 4}}
        },
        "dto.CreateReviewRequest": {
            "type": "object",
            "required": ["comment"],
            "properties": {"comment": {"type": "string", "maxLength": 2000}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo 文档元信息
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Book Catalog API",
	Description:      "图书目录服务：多条件检索、评分聚合、评论",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
