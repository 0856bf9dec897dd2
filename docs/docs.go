// Package docs регистрирует swagger-описание API портала для /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{.Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Вход по логину и паролю",
                "parameters": [{
                    "in": "body", "name": "request", "required": true,
                    "schema": {"$ref": "#/definitions/login.Request"}
                }],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/login.Response"}},
                    "400": {"description": "Некорректный запрос", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Неверные данные", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Ответ сервиса не JSON", "schema": {"$ref": "#/definitions/response.Response"}},
                    "502": {"description": "Сервис недоступен", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Выход",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/register": {
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Registration"],
                "summary": "Заявка на регистрацию магазина",
                "parameters": [{
                    "in": "body", "name": "request", "required": true,
                    "schema": {"$ref": "#/definitions/models.Registration"}
                }],
                "responses": {
                    "200": {"description": "Ответ сервиса без изменений"},
                    "400": {"description": "Не заполнены обязательные поля", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Внутренняя ошибка", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/api/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Сводка регистраций по сотрудникам",
                "parameters": [
                    {"type": "string", "description": "День, YYYY-MM-DD", "name": "date", "in": "query"},
                    {"type": "string", "description": "Месяц, YYYY-MM", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.StaffCount"}}}
                }
            }
        },
        "/staff/api/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Сводка за день, по умолчанию сегодня",
                "parameters": [
                    {"type": "string", "description": "День, YYYY-MM-DD", "name": "date", "in": "query"},
                    {"type": "string", "description": "Месяц, YYYY-MM", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.StaffCount"}}}
                }
            }
        },
        "/admin/chart/{kind}.svg": {
            "get": {
                "produces": ["image/svg+xml"],
                "tags": ["Dashboard"],
                "summary": "Диаграмма сводки: bar или pie",
                "parameters": [
                    {"type": "string", "enum": ["bar", "pie"], "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "День, YYYY-MM-DD", "name": "date", "in": "query"},
                    {"type": "string", "description": "Месяц, YYYY-MM", "name": "month", "in": "query"}
                ],
                "responses": {"200": {"description": "SVG"}}
            }
        },
        "/staff/qr.png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["Staff"],
                "summary": "Реферальный QR-код сотрудника",
                "responses": {"200": {"description": "PNG"}}
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Service"],
                "summary": "Проверка работоспособности",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "login.Request": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "login.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "userId": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "staff"]}
            }
        },
        "models.Registration": {
            "type": "object",
            "required": ["name", "phone", "address", "storeImage", "idCardImage"],
            "properties": {
                "action": {"type": "string"},
                "userId": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "referrer": {"type": "string"},
                "address": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "storeImage": {"type": "string", "description": "base64"},
                "idCardImage": {"type": "string", "description": "base64"}
            }
        },
        "models.StaffCount": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo метаданные описания
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Referral Portal API",
	Description:      "Вход сотрудников, регистрация магазинов по реферальной ссылке и сводки.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
