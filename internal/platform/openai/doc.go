// Package openai implements generation.Generator against the OpenAI Responses API.
//
// Requests are sent as POST {base_url}/responses with a system and a user
// input message and, when a schema is supplied, a strict json_schema text
// format. Non-2xx replies become *generation.StatusError values carrying the
// upstream status and error message. Requests are not retried.
package openai
