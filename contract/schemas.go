package contract

const contentSchema = `{
	"type": "object",
	"required": ["id", "section", "text"],
	"properties": {
		"id":      {"type": "integer", "minimum": 1},
		"section": {"type": "string", "minLength": 1},
		"text":    {"type": "string", "minLength": 1}
	}
}`

const contentListSchema = `{
	"type": "array",
	"items": {"$ref": "content.schema.json"}
}`

const skillSchema = `{
	"type": "object",
	"required": ["id", "name", "order"],
	"properties": {
		"id":    {"type": "integer", "minimum": 1},
		"name":  {"type": "string", "minLength": 1},
		"order": {"type": "integer"}
	}
}`

const skillListSchema = `{
	"type": "array",
	"items": {"$ref": "skill.schema.json"}
}`

const contactSuccessSchema = `{
	"type": "object",
	"required": ["success"],
	"properties": {
		"success": {"type": "boolean"}
	}
}`

const errorMessageSchema = `{
	"type": "object",
	"required": ["message"],
	"properties": {
		"message": {"type": "string"}
	}
}`

const healthSchema = `{
	"type": "object",
	"required": ["status", "uptime"],
	"properties": {
		"status": {"type": "string", "enum": ["ok"]},
		"uptime": {"type": "string"}
	}
}`

// schemaResources is every document the compiler can resolve, keyed by the
// file name used in $ref.
var schemaResources = map[string]string{
	"content.schema.json":         contentSchema,
	"content-list.schema.json":    contentListSchema,
	"skill.schema.json":           skillSchema,
	"skill-list.schema.json":      skillListSchema,
	"contact-success.schema.json": contactSuccessSchema,
	"error-message.schema.json":   errorMessageSchema,
	"health.schema.json":          healthSchema,
}
