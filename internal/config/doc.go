// Package config provides YAML-based configuration loading and validation
// for the capture, segmentation, and transcription pipeline, with compiled
// defaults matching the reference tuning and an EVA_VOSK_MODEL environment
// override for the model path.
package config
