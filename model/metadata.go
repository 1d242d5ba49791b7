package model

type TuneMetadata struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Release string `json:"release"`
	Year    uint   `json:"year"`
}
