// Package docs регистрирует описание API для /swagger.
// Пути описываются аннотациями хендлеров, полный документ пересобирается
// командой swag init -g cmd/api/main.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "session": {
            "type": "apiKey",
            "name": "X-Session-ID",
            "in": "header"
        }
    },
    "paths": {}
}`

// SwaggerInfo - метаданные API, их можно переопределить при старте
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Listing Portal API",
	Description:      "BFF маркетплейса недвижимости: лента объявлений, каталог локаций и форма создания объявления.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
