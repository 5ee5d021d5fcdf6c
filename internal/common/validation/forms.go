package validation

import (
	"backoffice-console/internal/models"
)

const loginSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["login", "password"],
	"properties": {
		"login": {"type": "string", "format": "email"},
		"password": {"type": "string", "minLength": 6}
	}
}`

// address fields only matter for activities hosted outside the client company
const activitySchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "description", "duration", "creditCost", "types"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"description": {"type": "string", "minLength": 1},
		"address": {"type": "string", "minLength": 1},
		"city": {"type": "string", "minLength": 1},
		"postalCode": {"type": "string", "minLength": 1},
		"duration": {"type": "number", "exclusiveMinimum": 0},
		"creditCost": {"type": "integer", "minimum": 0},
		"participants": {"type": "integer", "minimum": 0},
		"types": {
			"type": "array",
			"minItems": 1,
			"items": {"enum": ["BIEN_ETRE", "TEAM_BUILDING", "NOURRITURE"]}
		}
	},
	"if": {"properties": {"isInsideCompany": {"const": true}}},
	"else": {"required": ["address", "city", "postalCode"]}
}`

const planSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "credit", "price"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"credit": {"type": "integer", "minimum": 0},
		"price": {"type": "number", "minimum": 0},
		"benifits": {"type": "array", "items": {"type": "string"}}
	}
}`

const articleSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["title", "introduction"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"introduction": {"type": "string", "minLength": 1}
	}
}`

const paragraphSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["title", "content"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"content": {"type": "string", "minLength": 1}
	}
}`

const faqSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["question", "answer"],
	"properties": {
		"question": {"type": "string", "minLength": 1},
		"answer": {"type": "string", "minLength": 1}
	}
}`

const pricingSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["employee", "snacking", "teambuilding", "wellBeing"],
	"properties": {
		"employee": {"type": "number", "minimum": 0},
		"snacking": {"type": "number", "minimum": 0},
		"teambuilding": {"type": "number", "minimum": 0},
		"wellBeing": {"type": "number", "minimum": 0}
	}
}`

const supportAnswerSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["adminAnswer"],
	"properties": {
		"adminAnswer": {"type": "string", "minLength": 1}
	}
}`

func ValidateLogin(req models.LoginRequest) error {
	return Check("login", loginSchema, req)
}

func ValidateActivity(a models.Activity) error {
	return Check("activity", activitySchema, a)
}

func ValidatePlan(p models.PlanInput) error {
	return Check("plan", planSchema, p)
}

func ValidateArticle(a models.Article) error {
	return Check("article", articleSchema, a)
}

func ValidateParagraph(p models.Paragraph) error {
	return Check("paragraph", paragraphSchema, p)
}

func ValidateFAQ(f models.FAQInput) error {
	return Check("faq", faqSchema, f)
}

func ValidatePricing(p models.Pricing) error {
	return Check("pricing", pricingSchema, p)
}

func ValidateSupportAnswer(answer string) error {
	return Check("supportAnswer", supportAnswerSchema, map[string]interface{}{"adminAnswer": answer})
}
