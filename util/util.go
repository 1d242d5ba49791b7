package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/YunChenqwq/MiditoBytebeat/constants"
)

func RecreateOutputDir() {
	dir := constants.GetOutDir()
	os.RemoveAll(dir)
	if err := os.MkdirAll(dir, 0777); err != nil {
		panic("Could not recreate output dir: " + err.Error())
	}
}

func GatherAllMidiPaths(path string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if !d.IsDir() {
			if strings.HasSuffix(s, ".mid") || strings.HasSuffix(s, ".midi") {
				if maxNum == 0 || len(res) < maxNum {
					res = append(res, s)
				}
			}
		}
		return nil
	}
	filepath.WalkDir(path, walk)
	return res
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
