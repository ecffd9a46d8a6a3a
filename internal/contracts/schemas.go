package contracts

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"marketplace-client/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

// schemaFiles - соответствие вида формы файлу схемы.
var schemaFiles = map[domain.DraftKind]string{
	domain.DraftLandAd:           "schemas/land_ad.json",
	domain.DraftAuctionAd:        "schemas/auction_ad.json",
	domain.DraftLandRequest:      "schemas/land_request.json",
	domain.DraftMarketingRequest: "schemas/marketing_request.json",
}

var compiledSchemas = make(map[domain.DraftKind]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Сначала регистрируем все схемы как ресурсы, чтобы они могли
	// ссылаться друг на друга через $ref, затем компилируем.
	for _, path := range schemaFiles {
		file, err := schemasFS.Open(path)
		if err != nil {
			log.Fatalf("failed to open embedded schema %s: %v", path, err)
		}
		if err := compiler.AddResource(path, file); err != nil {
			log.Fatalf("failed to add schema resource %s: %v", path, err)
		}
		file.Close()
	}

	for kind, path := range schemaFiles {
		schema, err := compiler.Compile(path)
		if err != nil {
			log.Fatalf("failed to compile schema %s: %v", path, err)
		}
		compiledSchemas[kind] = schema
	}
}

// DraftValidator валидирует поля черновика по схеме его вида формы.
type DraftValidator struct{}

func NewDraftValidator() *DraftValidator {
	return &DraftValidator{}
}

func (v *DraftValidator) Validate(kind domain.DraftKind, fields map[string]any) domain.ValidationErrors {
	schema, ok := compiledSchemas[kind]
	if !ok {
		return domain.ValidationErrors{{
			Field:   "",
			Message: fmt.Sprintf("no validation schema for form kind %q", kind),
		}}
	}

	// jsonschema ожидает значение в виде, который дает encoding/json
	// (map[string]interface{}, float64 и т.д.) - поля формы приходят
	// именно такими из REST-слоя.
	payload := make(map[string]any, len(fields))
	for k, val := range fields {
		payload[k] = val
	}

	err := schema.Validate(payload)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return domain.ValidationErrors{{Field: "", Message: err.Error()}}
	}
	return flattenValidationError(ve)
}

// flattenValidationError разворачивает дерево причин в плоский список
// ошибок, привязанных к полям.
func flattenValidationError(ve *jsonschema.ValidationError) domain.ValidationErrors {
	var out domain.ValidationErrors

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, domain.FieldError{
				Field:   fieldFromLocation(e.InstanceLocation, e.Message),
				Message: e.Message,
			})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return out
}

// fieldFromLocation выводит имя поля из instance location вида "/total_area".
// Для ошибок required location пустой - имя достается из текста сообщения
// ("missing properties: 'phone'").
func fieldFromLocation(location, message string) string {
	if location != "" {
		return strings.TrimPrefix(location, "/")
	}
	if idx := strings.Index(message, "'"); idx >= 0 {
		rest := message[idx+1:]
		if end := strings.Index(rest, "'"); end >= 0 {
			return rest[:end]
		}
	}
	return ""
}
