package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}

// GetMetadataEndpoint returns the DynamoDB endpoint used for tune metadata
// lookups, or "" when lookups are disabled.
func GetMetadataEndpoint() string {
	return os.Getenv("METADATA_ENDPOINT")
}

const MetadataTable = "miditobytebeat-metadata"

// VirtualSampleRate is the reference rate the virtual time counter is
// defined against, independent of the host device's output rate.
const VirtualSampleRate = 8000

// CoeffDigits is how many significant digits coefficients keep when a
// formula is serialized to text.
const CoeffDigits = 4

// Converter defaults: middle C maps to t*1 and one beat lasts half a
// second at the virtual rate.
const (
	DefaultBaseUnit     = 4000.0
	DefaultRestDuration = 0.0
	DefaultBasePitch    = 60
	DefaultBaseCoeff    = 1.0
)
