package pushover

// Response is the decoded JSON body returned by the API. It is handed back to
// the caller unchanged; the accessors below only read well-known keys.
type Response map[string]any

// SoundCatalog maps a sound identifier to its human-readable name.
type SoundCatalog map[string]string

// Status returns the API status flag, 1 on success.
func (r Response) Status() int {
	v, _ := r["status"].(float64)
	return int(v)
}

// Request returns the request id assigned by the API.
func (r Response) Request() string {
	v, _ := r["request"].(string)
	return v
}

// Receipt returns the receipt id of an emergency message.
func (r Response) Receipt() string {
	v, _ := r["receipt"].(string)
	return v
}

// Errors returns the error descriptions of a rejected request.
func (r Response) Errors() []string {
	raw, _ := r["errors"].([]any)
	errs := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			errs = append(errs, s)
		}
	}
	return errs
}

// Sounds extracts the catalog of a ListSounds response.
func (r Response) Sounds() SoundCatalog {
	raw, _ := r["sounds"].(map[string]any)
	catalog := make(SoundCatalog, len(raw))
	for id, name := range raw {
		if s, ok := name.(string); ok {
			catalog[id] = s
		}
	}
	return catalog
}
