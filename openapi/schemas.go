// Copyright 2025 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of BLENDREADER.
//
//  BLENDREADER is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  BLENDREADER is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with BLENDREADER.  If not, see <https://www.gnu.org/licenses/>.

package openapi

func schemaRef(name string) string {
	return "#/components/schemas/" + name
}

func createSchemas() ObjectProperties {
	ans := make(ObjectProperties)

	ans["TextList"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"texts": ObjectProperty{
				Type: "array",
				Items: &arrayItem{
					Type: "object",
					Properties: ObjectProperties{
						"id":           ObjectProperty{Type: "string"},
						"title":        ObjectProperty{Type: "string"},
						"description":  ObjectProperty{Type: "string"},
						"source":       ObjectProperty{Type: "string"},
						"sourceLang":   ObjectProperty{Type: "string"},
						"targetLang":   ObjectProperty{Type: "string"},
						"numSentences": ObjectProperty{Type: "integer"},
						"numWords":     ObjectProperty{Type: "integer"},
					},
				},
			},
		},
	}

	ans["Segment"] = ObjectProperty{
		Type:        "object",
		Description: "a rendering unit of a sentence",
		Properties: ObjectProperties{
			"text": ObjectProperty{
				Type: "string",
			},
			"kind": ObjectProperty{
				Type: "string",
				Enum: []any{"none", "word", "sentence"},
			},
			"tooltip": ObjectProperty{
				Type:        "string",
				Description: "the original text of a substituted segment",
			},
		},
	}

	ans["Sentence"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"index": ObjectProperty{
				Type: "integer",
			},
			"wordOffset": ObjectProperty{
				Type:        "integer",
				Description: "number of source words preceding the sentence",
			},
			"segments": ObjectProperty{
				Type:  "array",
				Items: &arrayItem{Ref: schemaRef("Segment")},
			},
		},
	}

	ans["View"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"textId":      ObjectProperty{Type: "string"},
			"title":       ObjectProperty{Type: "string"},
			"description": ObjectProperty{Type: "string"},
			"source":      ObjectProperty{Type: "string"},
			"sourceLang":  ObjectProperty{Type: "string"},
			"targetLang":  ObjectProperty{Type: "string"},
			"sentences": ObjectProperty{
				Type:        "array",
				Items:       &arrayItem{Ref: schemaRef("Sentence")},
				Description: "revealed sentences",
			},
			"revealedSentenceCount": ObjectProperty{Type: "integer"},
			"totalSentences":        ObjectProperty{Type: "integer"},
			"revealedWordCount":     ObjectProperty{Type: "integer"},
			"totalWordCount":        ObjectProperty{Type: "integer"},
			"activePhaseLabel":      ObjectProperty{Type: "string"},
			"chunkBoundaries": ObjectProperty{
				Type:        "array",
				Items:       &arrayItem{Type: "integer"},
				Description: "exclusive end indices of reveal chunks",
			},
			"finished": ObjectProperty{Type: "boolean"},
		},
	}

	ans["Session"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"sessionId": ObjectProperty{
				Type: "string",
			},
			"changed": ObjectProperty{
				Type:        "boolean",
				Description: "false in case the command was a no-op",
			},
			"view": ObjectProperty{
				Ref: schemaRef("View"),
			},
		},
	}

	ans["Lexicon"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"sessionId": ObjectProperty{Type: "string"},
			"textId":    ObjectProperty{Type: "string"},
			"entries": ObjectProperty{
				Type: "array",
				Items: &arrayItem{
					Type: "object",
					Properties: ObjectProperties{
						"source": ObjectProperty{Type: "string"},
						"target": ObjectProperty{Type: "string"},
					},
				},
			},
		},
	}

	ans["Error"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"error": ObjectProperty{Type: "string"},
		},
	}

	return ans
}
