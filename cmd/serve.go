package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/YunChenqwq/MiditoBytebeat/constants"
	"github.com/YunChenqwq/MiditoBytebeat/db"
	"github.com/YunChenqwq/MiditoBytebeat/model"
	"github.com/YunChenqwq/MiditoBytebeat/tune"
	"github.com/YunChenqwq/MiditoBytebeat/util"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the conversion API",
	Long:  `Serves the conversion API the browser editor talks to`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

var (
	tunesMu sync.Mutex
	tunes   = make(map[string]model.TuneOverview)
)

func optionsFromQuery(q url.Values) (model.ConverterOptions, error) {
	opts := tune.DefaultOptions()
	if v := q.Get("baseUnit"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid baseUnit: %v", v)
		}
		opts.BaseUnit = f
	}
	if v := q.Get("rest"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid rest: %v", v)
		}
		opts.RestDuration = f
	}
	if v := q.Get("period"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid period: %v", v)
		}
		opts.TotalPeriod = n
	}
	if v := q.Get("basePitch"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid basePitch: %v", v)
		}
		opts.BasePitch = n
	}
	if v := q.Get("baseCoeff"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid baseCoeff: %v", v)
		}
		opts.BaseCoeff = f
	}
	if v := q.Get("transpose"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid transpose: %v", v)
		}
		opts.Transpose = n
	}
	return opts, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func writeConverted(w http.ResponseWriter, t *tune.Tune, name string) {
	expr, err := t.Compile()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res := model.ConvertResponse{
		Formula:    expr.String(),
		Period:     t.Options.TotalPeriod,
		SampleRate: constants.VirtualSampleRate,
		NumNotes:   len(t.Notes),
		Notes:      t.Notes,
	}
	if name != "" {
		metadatas, err := db.GetTuneMetadatas([]string{name})
		if err != nil {
			log.Printf("Could not fetch metadata for %v: %v", name, err)
		} else if m, ok := metadatas[name]; ok {
			res.Metadata = &m
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// HandleConvert turns a raw MIDI request body into a formula, with
// converter options taken from the query string.
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	t, err := tune.FromBytes(body, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeConverted(w, t, r.URL.Query().Get("name"))
}

// HandleCreateTune stores the upload under a fresh id so the editor can
// re-convert it later with different options.
func HandleCreateTune(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	t, err := tune.FromBytes(body, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.New().String()
	if err := os.MkdirAll(constants.GetOutDir(), 0777); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := os.WriteFile(tunePath(id), body, 0666); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = id
	}
	ov := model.TuneOverview{Id: id, Name: name, NumNotes: len(t.Notes), Period: t.Options.TotalPeriod}
	tunesMu.Lock()
	tunes[id] = ov
	tunesMu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ov)
}

func HandleGetTunes(w http.ResponseWriter, r *http.Request) {
	tunesMu.Lock()
	keys := util.GetKeys(tunes)
	sort.Strings(keys)
	res := make([]model.TuneOverview, 0, len(keys))
	for _, k := range keys {
		res = append(res, tunes[k])
	}
	tunesMu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// HandleGetTune re-converts a stored upload, so query overrides like
// transpose produce a freshly compiled formula every call.
func HandleGetTune(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tunesMu.Lock()
	ov, ok := tunes[id]
	tunesMu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "no such tune")
		return
	}

	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := os.ReadFile(tunePath(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	t, err := tune.FromBytes(data, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeConverted(w, t, ov.Name)
}

func tunePath(id string) string {
	return filepath.Join(constants.GetOutDir(), id+".mid")
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/tunes", HandleCreateTune).Methods("POST")
	router.HandleFunc("/tunes", HandleGetTunes).Methods("GET")
	router.HandleFunc("/tunes/{id}", HandleGetTune).Methods("GET")

	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(":"+constants.GetPort(), handler))
}
