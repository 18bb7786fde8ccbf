package dto

// UploadResponse is what the ingest endpoint answered to one batch upload.
type UploadResponse struct {
	StatusCode      int
	Body            []byte
	UncompressedLen int
	CompressedLen   int
	// BatchID is filled in when a successful response names the accepted batch.
	BatchID string
}

// FailuresResponse is the per-batch failure report. Text holds the gunzipped body, or the
// raw body when the response was not a 200 or did not decode.
type FailuresResponse struct {
	BatchID     string
	StatusCode  int
	Text        string
	Decoded     bool
	DecodeError string
}

type UploadResults struct {
	Results struct {
		ID string `json:"id"`
	} `json:"results"`
}

type DocumentationAttribute struct {
	Required    any    `json:"required"`
	Reporting   any    `json:"reporting"`
	SampleValue any    `json:"sampleValue"`
	Description string `json:"description"`
}

// DocumentationResponse lists, per event type, the documented attributes by name.
type DocumentationResponse struct {
	Results []map[string]DocumentationAttribute `json:"results"`
}
