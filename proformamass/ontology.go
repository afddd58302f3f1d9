package proformamass

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Ontology identifies one of the five curated external modification
// databases, or the caller-supplied Custom list, per spec.md §4.4.
type Ontology int

const (
	Unimod Ontology = iota
	PsiMod
	Resid
	XlMod
	GNOme
	Custom
)

func (o Ontology) String() string {
	switch o {
	case Unimod:
		return "Unimod"
	case PsiMod:
		return "PSI-MOD"
	case Resid:
		return "RESID"
	case XlMod:
		return "XLMOD"
	case GNOme:
		return "GNO"
	case Custom:
		return "Custom"
	}
	return "?"
}

// ontologyRecord is one row of the gob-encoded blob format spec.md §6
// describes as "a little-endian serialized Vec<(Option<u32>, String,
// SimpleModification)>". Go's gob already frames every field with a
// length-prefixed, platform-independent (hence byte-order-agnostic at
// the application level) encoding, which is the stdlib's answer to
// that shape; see DESIGN.md for why no third-party binary codec was
// used instead.
type ontologyRecord struct {
	ID    *uint32
	Name  string
	Entry SimpleModification
}

// registry lazily deserializes and caches one ontology's blob for the
// life of the process, per spec.md §4.4/§5 ("On first access per
// ontology the blob is deserialized and cached for process lifetime").
type registry struct {
	once    sync.Once
	records []ontologyRecord
	loadErr error
	source  []byte
}

var registries = [5]*registry{
	Unimod: {},
	PsiMod: {},
	Resid:  {},
	XlMod:  {},
	GNOme:  {},
}

// SetOntologyBlob installs the gob-encoded blob for one of the five
// built-in ontologies. This is how the build-time ontology-generation
// tool (an external collaborator per spec.md §1) hands its output to
// the core at process start; calling it after the ontology has already
// been lazily loaded has no effect, matching the "idempotent
// initialization, no teardown" model of spec.md §5.
func SetOntologyBlob(o Ontology, blob []byte) {
	if o == Custom || int(o) >= len(registries) {
		return
	}
	registries[o].source = blob
}

func (r *registry) ensureLoaded(name string) {
	r.once.Do(func() {
		if r.source == nil {
			r.records = nil
			return
		}
		dec := gob.NewDecoder(bytes.NewReader(r.source))
		var records []ontologyRecord
		if err := dec.Decode(&records); err != nil {
			r.loadErr = fmt.Errorf("decoding %s ontology blob: %w", name, err)
			return
		}
		r.records = records
	})
}

// FindID performs spec.md §4.4's linear scan for an ontology entry by
// numeric id ("lists are short and stable", hence no index is built).
func FindID(o Ontology, id uint32, custom []ontologyRecord) (*SimpleModification, bool) {
	records, ok := recordsFor(o, custom)
	if !ok {
		return nil, false
	}
	for i := range records {
		if records[i].ID != nil && *records[i].ID == id {
			return &records[i].Entry, true
		}
	}
	return nil, false
}

// FindName performs spec.md §4.4's case-insensitive exact-match lookup
// by name. Names are NFC-normalized before folding case so that RESID
// entries using composed vs. decomposed combining-diacritic forms
// compare equal (SPEC_FULL.md §3's golang.org/x/text wiring).
func FindName(o Ontology, name string, custom []ontologyRecord) (*SimpleModification, bool) {
	records, ok := recordsFor(o, custom)
	if !ok {
		return nil, false
	}
	target := strings.ToLower(norm.NFC.String(name))
	for i := range records {
		if strings.ToLower(norm.NFC.String(records[i].Name)) == target {
			return &records[i].Entry, true
		}
	}
	return nil, false
}

func recordsFor(o Ontology, custom []ontologyRecord) ([]ontologyRecord, bool) {
	if o == Custom {
		return custom, true
	}
	if int(o) < 0 || int(o) >= len(registries) {
		return nil, false
	}
	registries[o].ensureLoaded(o.String())
	if registries[o].loadErr != nil {
		return nil, false
	}
	return registries[o].records, true
}

// Suggestion is one "did you mean?" candidate produced by
// ClosestNames, naming the ontology it came from so the caller can
// render "Unimod:Phospho" style hints.
type Suggestion struct {
	Ontology   Ontology
	Name       string
	Similarity float64
}

// closestNameThreshold and closestNamePerOntology implement spec.md
// §4.4's "Levenshtein-similarity ranking for error messages; threshold
// 0.7, up to 3 suggestions per ontology".
const (
	closestNameThreshold     = 0.7
	closestNamePerOntology   = 3
)

// ClosestNames ranks every name across the given ontologies by
// Levenshtein similarity to query, keeping up to 3 suggestions per
// ontology above the 0.7 similarity threshold, then returns the global
// top k. No third-party Levenshtein library appears anywhere in the
// retrieval pack (see DESIGN.md), so the distance is computed directly
// with the classic O(n*m) dynamic-programming table.
func ClosestNames(ontologies []Ontology, query string, k int, custom []ontologyRecord) []Suggestion {
	queryLower := strings.ToLower(query)
	var all []Suggestion
	for _, o := range ontologies {
		records, ok := recordsFor(o, custom)
		if !ok {
			continue
		}
		var perOntology []Suggestion
		for _, rec := range records {
			sim := levenshteinSimilarity(queryLower, strings.ToLower(rec.Name))
			if sim >= closestNameThreshold {
				perOntology = append(perOntology, Suggestion{Ontology: o, Name: rec.Name, Similarity: sim})
			}
		}
		sort.Slice(perOntology, func(i, j int) bool { return perOntology[i].Similarity > perOntology[j].Similarity })
		if len(perOntology) > closestNamePerOntology {
			perOntology = perOntology[:closestNamePerOntology]
		}
		all = append(all, perOntology...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Similarity > all[j].Similarity })
	if len(all) > k {
		all = all[:k]
	}
	return all
}

func levenshteinDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = minInt(del, minInt(ins, sub))
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

func levenshteinSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshteinDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
