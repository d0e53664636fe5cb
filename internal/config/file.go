package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	srvErrors "github.com/medialens/collector/pkg/errors"
)

// legacyParallelKey is an aliasing rule for one historical file layout: a
// top-level "parallel_processing" object is remapped to processing.parallel.
// Keys the document sets explicitly under processing.parallel win over the
// remapped ones.
const legacyParallelKey = "parallel_processing"

// loadFiles merges every *.json document in dir, in lexicographic filename
// order. A missing directory contributes nothing; a document that exists but
// does not parse aborts the whole load.
func loadFiles(dir string, opts loadOptions) (Tree, error) {
	entries, err := opts.readDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Tree{}, nil
	}
	if err != nil {
		return nil, srvErrors.NewMalformedSourceError(dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	merged := Tree{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := opts.readFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, srvErrors.NewMalformedSourceError(path, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, srvErrors.NewMalformedSourceError(path, err)
		}
		tree, _ := fromJSONValue(doc).(Tree)
		merged.merge(remapLegacyKeys(tree))
	}
	return merged, nil
}

func remapLegacyKeys(doc Tree) Tree {
	legacy, ok := doc[legacyParallelKey].(Tree)
	if !ok {
		return doc
	}
	delete(doc, legacyParallelKey)

	out := Tree{}
	out.set("processing.parallel", legacy.clone())
	out.merge(doc)
	return out
}
