package directory

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/msomdec/spartan-directory/internal/domain"
)

// DatasetSize is the default number of generated directory records.
const DatasetSize = 30

// availableBias is the probability that a generated record is available.
const availableBias = 0.7

// Generation pools mirror the production seed data.
var (
	names = []string{
		"Priya Rai",
		"Divya Saxena",
		"Sanjay Thakur",
		"Meera Chopra",
		"Nikhil Das",
		"Riya Malhotra",
		"Varun Kapoor",
		"Aarav Mishra",
		"Kavya Iyer",
		"Aditya Sharma",
		"Sneha Reddy",
		"Rohan Bhat",
		"Ishita Mehta",
		"Arjun Pillai",
		"Karthik Rao",
	}

	designations = []string{"Admin", "City Lead", "Campus Admin", "Media Coordinator"}

	colleges = []string{
		"St. Xavier's, Mumbai",
		"Christ, Bangalore",
		"NMIMS, Mumbai",
		"VIT, Chennai",
		"IIT Delhi",
		"SRCC, Delhi University",
	}

	joinDates = []string{"23/1/23", "14/2/23", "05/3/23", "18/4/23", "09/5/23", "21/6/23"}

	avatarColors = []string{
		"E8D5B7", "B7D5E8", "D5E8B7", "E8B7D5",
		"B7E8D5", "D5B7E8", "E8E8B7", "B7B7E8",
	}
)

const approvedBy = "Sahil Mehra - Central Admin"

// Generate builds an n-record dataset from the fixed pools. Roughly 70% of
// records come out available. The same rng state always yields the same
// dataset.
func Generate(rng *rand.Rand, n int) []domain.Spartan {
	out := make([]domain.Spartan, n)
	for i := range out {
		name := pick(rng, names)
		status := domain.StatusAvailable
		if rng.Float64() >= availableBias {
			status = domain.StatusUnavailable
		}
		out[i] = domain.Spartan{
			ID:          strconv.Itoa(i + 1),
			Name:        name,
			Designation: pick(rng, designations),
			College:     pick(rng, colleges),
			DateJoined:  pick(rng, joinDates),
			ApprovedBy:  approvedBy,
			Status:      status,
			AvatarURL:   avatarURL(rng, name),
		}
	}
	return out
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}

func avatarURL(rng *rand.Rand, name string) string {
	var initials strings.Builder
	for _, part := range strings.Fields(name) {
		initials.WriteString(part[:1])
	}
	return fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=%s&color=3C3D3E&size=32",
		initials.String(), pick(rng, avatarColors),
	)
}

// datasetRecord is the JSON shape used by dataset files written with Save.
type datasetRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	College     string `json:"college"`
	DateJoined  string `json:"dateJoined"`
	ApprovedBy  string `json:"approvedBy"`
	Status      string `json:"status"`
	AvatarURL   string `json:"avatarUrl"`
}

// Save writes the dataset to a JSON file that Load can read back.
func Save(path string, dataset []domain.Spartan) error {
	records := make([]datasetRecord, len(dataset))
	for i, s := range dataset {
		records[i] = datasetRecord{
			ID:          s.ID,
			Name:        s.Name,
			Designation: s.Designation,
			College:     s.College,
			DateJoined:  s.DateJoined,
			ApprovedBy:  s.ApprovedBy,
			Status:      string(s.Status),
			AvatarURL:   s.AvatarURL,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// Load reads an externally supplied dataset file.
func Load(path string) ([]domain.Spartan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var records []datasetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	out := make([]domain.Spartan, len(records))
	for i, r := range records {
		status := domain.SpartanStatus(r.Status)
		if status != domain.StatusAvailable && status != domain.StatusUnavailable {
			return nil, fmt.Errorf("record %s: unknown status %q", r.ID, r.Status)
		}
		out[i] = domain.Spartan{
			ID:          r.ID,
			Name:        r.Name,
			Designation: r.Designation,
			College:     r.College,
			DateJoined:  r.DateJoined,
			ApprovedBy:  r.ApprovedBy,
			Status:      status,
			AvatarURL:   r.AvatarURL,
		}
	}
	return out, nil
}
