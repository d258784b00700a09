// Package translation fills in missing word meanings using the OpenAI or
// Gemini APIs. Results are cached in memory for the life of the process.
package translation
