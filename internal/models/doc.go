// Package models lists the OpenAI models available to an API key, split
// into speech models for audio playback and chat models for IPA lookup and
// translation.
package models
