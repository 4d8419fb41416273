package legis

import (
	"context"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/capitolworks/legisync/pkg/errors"
)

// LoadPeople reads the people reference file, a YAML sequence of Person
// entries with their dated roles.
func LoadPeople(path string) ([]Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var people []Person
	if err := yaml.Unmarshal(data, &people); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return people, nil
}

// LoadCommittees reads the committee reference file, a YAML sequence of
// Committee entries keyed by committee code.
func LoadCommittees(path string) ([]Committee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var committees []Committee
	if err := yaml.Unmarshal(data, &committees); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return committees, nil
}

// SeedPeople writes people into the store, replacing entries with the
// same ID.
func SeedPeople(ctx context.Context, store PersonStore, people []Person) error {
	for i := range people {
		if err := store.PutPerson(ctx, &people[i]); err != nil {
			return errors.WrapResource("seed", "person", strconv.FormatInt(people[i].ID, 10), err)
		}
	}
	return nil
}

// SeedCommittees writes committees into the store, replacing entries
// with the same code.
func SeedCommittees(ctx context.Context, store CommitteeStore, committees []Committee) error {
	for i := range committees {
		if err := store.PutCommittee(ctx, &committees[i]); err != nil {
			return errors.WrapResource("seed", "committee", committees[i].Code, err)
		}
	}
	return nil
}
