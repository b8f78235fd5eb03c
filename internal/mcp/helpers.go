package mcp

// ResponseEnvelope is the shape of every structured tool response.
type ResponseEnvelope struct {
	Data     any            `json:"data"`
	Context  map[string]any `json:"context,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Guidance []string       `json:"guidance,omitempty"`

	// Chart is sent as a separate text block, not inside the JSON.
	Chart string `json:"-"`
}

// WrapResponse builds an envelope around a handler's result.
func WrapResponse(data any, meta map[string]any, warnings, guidance []string) ResponseEnvelope {
	return ResponseEnvelope{
		Data:     data,
		Context:  meta,
		Warnings: warnings,
		Guidance: guidance,
	}
}
