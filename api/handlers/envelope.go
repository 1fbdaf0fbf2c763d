package handlers

// Envelope is the uniform response shape for every endpoint, success or
// failure. Clients rely on the boolean success flag being present in all
// cases.
type Envelope struct {
	Success     bool   `json:"success"`
	Data        any    `json:"data,omitempty"`
	Error       string `json:"error,omitempty"`
	Message     string `json:"message,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// ok wraps a payload in a success envelope.
func ok(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// fail wraps an error string in a failure envelope.
func fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}
