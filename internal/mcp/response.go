package mcp

// ResponseEnvelope is the shape of every tool result.
type ResponseEnvelope struct {
	Data     interface{} `json:"data"`
	Scope    interface{} `json:"scope,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Guidance []string    `json:"guidance,omitempty"`
	Charts   []string    `json:"-"`
}

// WrapResponse builds an envelope, dropping empty warning and guidance lists.
func WrapResponse(data, scope interface{}, warnings, guidance []string) *ResponseEnvelope {
	res := &ResponseEnvelope{Data: data, Scope: scope}
	if len(warnings) > 0 {
		res.Warnings = warnings
	}
	if len(guidance) > 0 {
		res.Guidance = guidance
	}
	return res
}
