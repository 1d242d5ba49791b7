package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/YunChenqwq/MiditoBytebeat/cmd"
	"github.com/YunChenqwq/MiditoBytebeat/model"
)

// twoNoteSMF builds a C4 and a C5, one beat each, back to back.
func twoNoteSMF(t *testing.T) []byte {
	t.Helper()
	var s smf.SMF
	s.TimeFormat = smf.MetricTicks(960)
	var track smf.Track
	track.Add(0, gomidi.NoteOn(0, 60, 100))
	track.Add(960, gomidi.NoteOff(0, 60))
	track.Add(0, gomidi.NoteOn(0, 72, 100))
	track.Add(960, gomidi.NoteOff(0, 72))
	track.Close(0)
	s.Tracks = append(s.Tracks, track)

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("could not write smf: %v", err)
	}
	return buf.Bytes()
}

func TestConvertE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/convert", bytes.NewReader(twoNoteSMF(t)))
	w := httptest.NewRecorder()
	cmd.HandleConvert(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var converted model.ConvertResponse
	err := json.Unmarshal(respBody, &converted)
	assert.NoError(err)

	assert.Equal("(t%8000<4000?(t*1):t%8000<8000?(t*2):0)", converted.Formula)
	assert.Equal(8000, converted.Period)
	assert.Equal(8000, converted.SampleRate)
	assert.Equal(2, converted.NumNotes)
	assert.Len(converted.Notes, 2)
}

func TestConvertWithTransposeE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/convert?transpose=12", bytes.NewReader(twoNoteSMF(t)))
	w := httptest.NewRecorder()
	cmd.HandleConvert(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var converted model.ConvertResponse
	assert.NoError(json.Unmarshal(respBody, &converted))
	assert.Equal("(t%8000<4000?(t*2):t%8000<8000?(t*4):0)", converted.Formula)
}

func TestConvertRejectsGarbageE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/convert", bytes.NewReader([]byte("not a midi file")))
	w := httptest.NewRecorder()
	cmd.HandleConvert(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)

	var errResp model.ErrorResponse
	assert.NoError(json.Unmarshal(respBody, &errResp))
	assert.NotEmpty(errResp.Error)
}

func TestConvertRejectsBadOptionsE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/convert?period=soon", bytes.NewReader(twoNoteSMF(t)))
	w := httptest.NewRecorder()
	cmd.HandleConvert(w, req)

	assert.Equal(t, 400, w.Result().StatusCode)
}

func TestStoreAndReconvertTuneE2E(t *testing.T) {
	t.Setenv("OUT_PATH", t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/tunes?name=scale.mid", bytes.NewReader(twoNoteSMF(t)))
	w := httptest.NewRecorder()
	cmd.HandleCreateTune(w, req)

	assert := assert.New(t)
	assert.Equal(200, w.Result().StatusCode)

	var ov model.TuneOverview
	respBody, _ := io.ReadAll(w.Result().Body)
	assert.NoError(json.Unmarshal(respBody, &ov))
	assert.Equal("scale.mid", ov.Name)
	assert.Equal(2, ov.NumNotes)
	assert.NotEmpty(ov.Id)

	// listing includes the stored tune
	w = httptest.NewRecorder()
	cmd.HandleGetTunes(w, httptest.NewRequest(http.MethodGet, "/tunes", nil))
	var list []model.TuneOverview
	respBody, _ = io.ReadAll(w.Result().Body)
	assert.NoError(json.Unmarshal(respBody, &list))
	found := false
	for _, item := range list {
		if item.Id == ov.Id {
			found = true
		}
	}
	assert.True(found)

	// re-convert the stored upload with a transpose override
	router := mux.NewRouter()
	router.HandleFunc("/tunes/{id}", cmd.HandleGetTune).Methods("GET")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tunes/"+ov.Id+"?transpose=-12", nil))

	assert.Equal(200, w.Result().StatusCode)
	var converted model.ConvertResponse
	respBody, _ = io.ReadAll(w.Result().Body)
	assert.NoError(json.Unmarshal(respBody, &converted))
	assert.Equal("(t%8000<4000?(t*0.5):t%8000<8000?(t*1):0)", converted.Formula)
}
