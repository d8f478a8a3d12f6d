/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"playboard/internal/board"
)

// The persisted form is a direct structural dump of the Play to JSON. There
// is no version field: decoding tolerates missing optional fields (plays
// saved before a field existed) and rejects only structural damage.

// DecodeError describes a persisted play that could not be decoded. Callers
// listing the saved-play index skip such entries instead of aborting.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode play: %s: %v", e.Reason, e.Err)
	}
	return "decode play: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// playSchema is validated against every document before unmarshalling.
// It pins down the structure while leaving all optional fields optional.
const playSchema = `{
  "type": "object",
  "required": ["id", "frames"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "createdAt": {"type": "string"},
    "current": {"type": "integer", "minimum": 0},
    "frames": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "background": {"type": "string"},
          "markers": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "category"],
              "properties": {
                "id": {"type": "string", "minLength": 1},
                "category": {"type": "string"},
                "pos": {
                  "type": "object",
                  "properties": {
                    "X": {"type": "number"},
                    "Y": {"type": "number"}
                  }
                },
                "displayName": {"type": "string"},
                "photoRef": {"type": "string"},
                "slotNumber": {"type": "integer"}
              }
            }
          },
          "paths": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["points"],
              "properties": {
                "color": {"type": "string"},
                "points": {"type": "array", "minItems": 1}
              }
            }
          }
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(playSchema)

// Encode serializes a play in its human-readable persisted form. Encoding is
// deterministic: encode-decode-encode yields identical text.
func Encode(p board.Play) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal play: %w", err)
	}
	return string(data) + "\n", nil
}

// Decode parses a persisted play. Missing optional fields get defaults; a
// structurally damaged document yields a *DecodeError.
func Decode(text string) (board.Play, error) {
	if strings.TrimSpace(text) == "" {
		return board.Play{}, &DecodeError{Reason: "empty document"}
	}
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(text))
	if err != nil {
		return board.Play{}, &DecodeError{Reason: "invalid JSON", Err: err}
	}
	if !res.Valid() {
		var parts []string
		for _, e := range res.Errors() {
			parts = append(parts, e.String())
		}
		return board.Play{}, &DecodeError{Reason: strings.Join(parts, "; ")}
	}

	var p board.Play
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return board.Play{}, &DecodeError{Reason: "unmarshal", Err: err}
	}
	applyDefaults(&p)
	return p, nil
}

// applyDefaults fills fields older saves may lack and clamps the cursor.
func applyDefaults(p *board.Play) {
	if p.Current < 0 || p.Current >= len(p.Frames) {
		p.Current = 0
	}
	for i := range p.Frames {
		f := &p.Frames[i]
		if f.Background == "" {
			f.Background = board.BackgroundHalfCourt
		}
		for j := range f.Paths {
			if f.Paths[j].Color == "" {
				f.Paths[j].Color = board.InkBlack
			}
		}
	}
}
