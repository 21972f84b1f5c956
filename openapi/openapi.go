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

const (
	jsonMimeType = "application/json"
)

var sessionIDParam = Parameter{
	Name:        "sessionId",
	In:          "path",
	Description: "An ID of a reading session",
	Required:    true,
	Schema: ParamSchema{
		Type: "string",
	},
}

func jsonResponse(description, schema string) MethodResponse {
	return MethodResponse{
		Description: description,
		Content: map[string]MethodResponseContent{
			jsonMimeType: {Schema: MethodResponseSchema{Ref: schemaRef(schema)}},
		},
	}
}

func sessionResponses() MethodResponses {
	return MethodResponses{
		200: jsonResponse("current session view", "Session"),
		404: jsonResponse("session not found", "Error"),
	}
}

func sessionCommand(description, operationID string, params ...Parameter) *Method {
	return &Method{
		Description: description,
		OperationID: operationID,
		Parameters:  append([]Parameter{sessionIDParam}, params...),
		Responses:   sessionResponses(),
	}
}

func NewResponse(ver, url string) *APIResponse {
	paths := make(map[string]Methods)

	textIDParam := Parameter{
		Name:        "textId",
		In:          "query",
		Description: "An ID of a text (see /texts)",
		Required:    true,
		Schema: ParamSchema{
			Type: "string",
		},
	}

	paths["/texts"] = Methods{
		Get: &Method{
			Description: "Shows a list of available bilingual texts.",
			OperationID: "ListTexts",
			Parameters:  []Parameter{},
			Responses: MethodResponses{
				200: jsonResponse("list of texts", "TextList"),
			},
		},
	}

	paths["/sessions"] = Methods{
		Post: &Method{
			Description: "Creates a new reading session with the text loaded and nothing revealed yet.",
			OperationID: "CreateSession",
			Parameters:  []Parameter{textIDParam},
			Responses: MethodResponses{
				200: jsonResponse("the new session", "Session"),
				400: jsonResponse("missing text ID", "Error"),
				404: jsonResponse("text not found", "Error"),
			},
		},
	}

	paths["/sessions/{sessionId}"] = Methods{
		Get: sessionCommand(
			"Shows the revealed sentences (blended according to the active phases) and reading progress.",
			"GetSession",
		),
		Delete: sessionCommand(
			"Removes the session.",
			"DeleteSession",
		),
	}

	paths["/sessions/{sessionId}/load"] = Methods{
		Post: sessionCommand(
			"Loads a different text into the session. The reading progress is reset.",
			"LoadText",
			textIDParam,
		),
	}

	paths["/sessions/{sessionId}/start"] = Methods{
		Post: sessionCommand(
			"Reveals the first chunk of the text. It has no effect once something is revealed.",
			"Start",
		),
	}

	paths["/sessions/{sessionId}/advance"] = Methods{
		Post: sessionCommand(
			"Reveals the next chunk(s) of the text.",
			"Advance",
			Parameter{
				Name:        "chunks",
				In:          "query",
				Description: "Number of chunks to reveal. The argument can be omitted in which case 1 is used.",
				Required:    false,
				Schema: ParamSchema{
					Type: "integer",
				},
			},
		),
	}

	paths["/sessions/{sessionId}/reset"] = Methods{
		Post: sessionCommand(
			"Hides all the revealed sentences.",
			"Reset",
		),
	}

	paths["/sessions/{sessionId}/lexicon"] = Methods{
		Get: &Method{
			Description: "Shows the lexicon learned from the loaded text.",
			OperationID: "Lexicon",
			Parameters:  []Parameter{sessionIDParam},
			Responses: MethodResponses{
				200: jsonResponse("lexicon entries sorted by source lemma", "Lexicon"),
				404: jsonResponse("session not found", "Error"),
			},
		},
	}

	return &APIResponse{
		OpenAPI: "3.1.0",
		Info: Info{
			Title:       "BlendReader - progressive bilingual reading",
			Description: "Serves texts blending a source language with an increasing share of target language words and sentences",
			Version:     ver,
		},
		Servers: []Server{
			{URL: url},
		},
		Paths: paths,
		Components: Components{
			Schemas: createSchemas(),
		},
	}
}
