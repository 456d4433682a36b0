package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/world.yaml
var embeddedWorld []byte

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid dataset")

var (
	defaultOnce  sync.Once
	defaultWorld *World
	defaultErr   error
)

// Default returns the compiled-in dataset. It panics if the embedded data
// does not validate, which is a build defect rather than a runtime one.
func Default() *World {
	defaultOnce.Do(func() {
		defaultWorld, defaultErr = Load(bytes.NewReader(embeddedWorld))
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded dataset: %v", defaultErr))
	}
	return defaultWorld
}

// LoadFile reads a dataset with the same schema as the embedded one.
func LoadFile(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a YAML dataset.
func Load(r io.Reader) (*World, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var w World
	if err := dec.Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	w.index()
	return &w, nil
}

func (w *World) validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	if w.Regions.Len() == 0 {
		fail("no regions")
	}
	seen := make(map[int]string)
	for rname, region := range w.Regions.All() {
		if strings.TrimSpace(rname) == "" {
			fail("region with empty name")
		}
		if !region.Impact.Valid() {
			fail("region %q: impact %q", rname, region.Impact)
		}
		if !region.Trend.ValidForRegion() {
			fail("region %q: trend %q", rname, region.Trend)
		}
		for cname, country := range region.Countries.All() {
			if strings.TrimSpace(cname) == "" {
				fail("region %q: country with empty name", rname)
			}
			for sname, sector := range country.Sectors.All() {
				where := rname + "/" + cname + "/" + sname
				if strings.TrimSpace(sname) == "" {
					fail("%s: sector with empty name", where)
				}
				for _, is := range sector.Issues {
					if prev, dup := seen[is.ID]; dup {
						fail("%s: issue id %d already used in %s", where, is.ID, prev)
					}
					seen[is.ID] = where
					if strings.TrimSpace(is.Title) == "" {
						fail("%s: issue %d has no title", where, is.ID)
					}
					if !is.Severity.Valid() {
						fail("%s: issue %d severity %q", where, is.ID, is.Severity)
					}
					if !is.Trend.ValidForIssue() {
						fail("%s: issue %d trend %q", where, is.ID, is.Trend)
					}
					for _, o := range is.RelatedOpportunities {
						if o.Match < 0 || o.Match > 100 {
							fail("%s: issue %d opportunity %q match %d out of range", where, is.ID, o.Title, o.Match)
						}
					}
				}
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func (w *World) index() {
	w.issues = make(map[int]issueRef)
	for rname, region := range w.Regions.All() {
		for cname, country := range region.Countries.All() {
			for sname, sector := range country.Sectors.All() {
				for _, is := range sector.Issues {
					w.issues[is.ID] = issueRef{path: [3]string{rname, cname, sname}, issue: is}
				}
			}
		}
	}
}
