package midi

import (
	"bytes"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file... %w", err)
	}
	return Parse(dat)
}

func Parse(data []byte) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("error parsing midi file... %v", r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file... %w", err)
	}
	return res, nil
}
