package model

type ConvertResponse struct {
	Formula    string        `json:"formula"`
	Period     int           `json:"period"`
	SampleRate int           `json:"sample_rate"`
	NumNotes   int           `json:"num_notes"`
	Notes      []Note        `json:"notes,omitempty"`
	Metadata   *TuneMetadata `json:"metadata,omitempty"`
}

type TuneOverview struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	NumNotes int    `json:"num_notes"`
	Period   int    `json:"period"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
