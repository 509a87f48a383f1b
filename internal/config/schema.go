package config

// schemaJSON is the JSON Schema a decoded solvent.yaml document is
// validated against, grounded on the teacher's pattern of compiling a
// schema once and reusing it (core/types/validation.go), adapted here to a
// fixed, embedded schema rather than a per-call user-supplied one.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["language"],
  "additionalProperties": false,
  "properties": {
    "language": {
      "type": "string",
      "description": "semantic-version pragma this config was written against"
    },
    "maxIndentUnit": {
      "type": "integer",
      "minimum": 1,
      "maximum": 16
    },
    "solveIterationCap": {
      "type": "integer",
      "minimum": 1
    }
  }
}`
