// Package seed provides the verbs a new collection starts with.
//
// The built-in list holds common regular verbs. A YAML file can replace it:
//
//	verbs:
//	  - infinitive: tener
//	    meaning: to have
//	    type: irregular
//	    irregular_forms:
//	      yo: tengo
//	  - infinitive: pedir
//	    meaning: to ask for
//	    type: stem-changing
//	    stem_change:
//	      from: e
//	      to: i
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/verbos-api/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrEmptySeed is returned when a seed file contains no verbs.
var ErrEmptySeed = errors.New("seed file contains no verbs")

var defaultVerbs = []struct {
	infinitive string
	meaning    string
}{
	{"hablar", "to speak"},
	{"comer", "to eat"},
	{"escribir", "to write"},
	{"vivir", "to live"},
	{"trabajar", "to work"},
	{"estudiar", "to study"},
	{"cantar", "to sing"},
	{"bailar", "to dance"},
	{"correr", "to run"},
	{"leer", "to read"},
	{"abrir", "to open"},
	{"cocinar", "to cook"},
	{"limpiar", "to clean"},
	{"nadar", "to swim"},
	{"pintar", "to paint"},
	{"viajar", "to travel"},
	{"comprar", "to buy"},
	{"vender", "to sell"},
	{"beber", "to drink"},
	{"usar", "to use"},
	{"dibujar", "to draw"},
	{"enseñar", "to teach"},
	{"escuchar", "to listen"},
	{"mirar", "to look"},
	{"esperar", "to wait"},
	{"caminar", "to walk"},
	{"llamar", "to call"},
	{"preguntar", "to ask"},
	{"contestar", "to answer"},
	{"ayudar", "to help"},
}

// DefaultVerbs returns a fresh copy of the built-in seed list, all regular
// and unpracticed.
func DefaultVerbs() []*domain.Verb {
	verbs := make([]*domain.Verb, 0, len(defaultVerbs))
	for _, v := range defaultVerbs {
		verbs = append(verbs, &domain.Verb{
			Infinitive: v.infinitive,
			Meaning:    v.meaning,
			Category:   domain.CategoryRegular,
		})
	}
	return verbs
}

// File is the YAML document layout of a seed file.
type File struct {
	Verbs []Entry `yaml:"verbs"`
}

// Entry is one verb in a seed file.
type Entry struct {
	Infinitive     string            `yaml:"infinitive"`
	Meaning        string            `yaml:"meaning"`
	Type           string            `yaml:"type"`
	IrregularForms map[string]string `yaml:"irregular_forms"`
	StemChange     *struct {
		From string `yaml:"from"`
		To   string `yaml:"to"`
	} `yaml:"stem_change"`
}

// LoadFile reads a YAML seed file.
func LoadFile(path string) ([]*domain.Verb, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	verbs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return verbs, nil
}

// Decode parses a YAML seed document. Entries without a type are regular.
// Every entry is validated as a new verb and duplicates are rejected.
func Decode(r io.Reader) ([]*domain.Verb, error) {
	var file File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySeed
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err)
	}

	if len(file.Verbs) == 0 {
		return nil, ErrEmptySeed
	}

	verbs := make([]*domain.Verb, 0, len(file.Verbs))
	seen := make(map[string]struct{}, len(file.Verbs))
	for i, entry := range file.Verbs {
		verb, err := entry.toVerb()
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i+1, entry.Infinitive, err)
		}
		if _, dup := seen[verb.Infinitive]; dup {
			return nil, fmt.Errorf("entry %d: duplicate infinitive %q", i+1, verb.Infinitive)
		}
		seen[verb.Infinitive] = struct{}{}
		verbs = append(verbs, verb)
	}

	return verbs, nil
}

func (e Entry) toVerb() (*domain.Verb, error) {
	category := domain.CategoryRegular
	if e.Type != "" {
		category = domain.Category(e.Type)
	}

	var overrides map[domain.Person]string
	if len(e.IrregularForms) > 0 {
		overrides = make(map[domain.Person]string, len(e.IrregularForms))
		for key, form := range e.IrregularForms {
			person, err := domain.ParsePerson(key)
			if err != nil {
				return nil, err
			}
			if !person.IsConjugationSlot() {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOverridePerson, key)
			}
			overrides[person] = form
		}
	}

	var stemChange *domain.StemChange
	if e.StemChange != nil {
		stemChange = &domain.StemChange{From: e.StemChange.From, To: e.StemChange.To}
	}

	return domain.NewVerb(e.Infinitive, e.Meaning, category, overrides, stemChange)
}

// Verbs returns the seed list: the verbs in file when it is set, the
// built-in list otherwise.
func Verbs(file string) ([]*domain.Verb, error) {
	if file == "" {
		return DefaultVerbs(), nil
	}
	return LoadFile(file)
}
