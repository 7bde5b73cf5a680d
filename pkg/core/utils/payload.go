// Package utils decodes statement payloads that are not always strict JSON:
// provider feeds with trailing commas or bare NaN, and hand-written Hjson
// fixtures.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ErrUndecodable is returned when a payload is neither JSON, repairable
// JSON nor Hjson.
var ErrUndecodable = errors.New("payload is not JSON, repairable JSON or Hjson")

// RepairJSON fixes the damage statement feeds commonly ship: unquoted or
// single-quoted keys, unclosed containers, trailing commas and bare
// NaN/None literals.
func RepairJSON(payload string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(payload)
	if err != nil {
		return "", fmt.Errorf("repair provider payload: %w", err)
	}
	return repaired, nil
}

// HjsonToJSON converts an Hjson document (comments, unquoted keys and
// strings, optional commas) into plain JSON.
func HjsonToJSON(doc string) (string, error) {
	var v interface{}
	if err := hjson.Unmarshal([]byte(doc), &v); err != nil {
		return "", fmt.Errorf("parse hjson payload: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("re-encode hjson payload: %w", err)
	}
	return string(out), nil
}

// DecodeLenient decodes payload into v, trying strict JSON first, then the
// repaired payload, then Hjson.
func DecodeLenient(payload string, v interface{}) error {
	strictErr := json.Unmarshal([]byte(payload), v)
	if strictErr == nil {
		return nil
	}

	if repaired, err := RepairJSON(payload); err == nil {
		if json.Unmarshal([]byte(repaired), v) == nil {
			return nil
		}
	}

	if converted, err := HjsonToJSON(payload); err == nil {
		if json.Unmarshal([]byte(converted), v) == nil {
			return nil
		}
	}

	return fmt.Errorf("%w: %v", ErrUndecodable, strictErr)
}
