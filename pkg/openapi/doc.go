// Package openapi describes the job-trigger URLs as an OpenAPI 3 document and
// reads such documents back into an action registry. Each action becomes a
// GET operation on its parambuild path with one required query parameter per
// field.
package openapi
