package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/invitation-letters/internal/schemas"
	"github.com/jonathan/invitation-letters/internal/types"
)

// RejectedRecord is a roster record that was left out of an import.
type RejectedRecord struct {
	Index      int    `json:"index"`
	EmployeeID int64  `json:"employee_id,omitempty"`
	Reason     string `json:"reason"`
}

// RosterResult holds the employees read from a roster file and the records
// that were skipped.
type RosterResult struct {
	Employees []types.Employee `json:"employees"`
	Rejected  []RejectedRecord `json:"rejected,omitempty"`
}

// LoadRoster reads and parses the roster file at path.
func LoadRoster(path string) (*RosterResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImportError{Path: path, Message: "failed to read roster file", Cause: err}
	}
	result, err := ParseRoster(data)
	if err != nil {
		return nil, &ImportError{Path: path, Message: "invalid roster file", Cause: err}
	}
	return result, nil
}

// ParseRoster validates data against the roster schema and converts each
// record. A record that fails validation, or repeats an earlier identifier,
// is rejected without failing the whole document.
func ParseRoster(data []byte) (*RosterResult, error) {
	if err := schemas.ValidateRoster(data); err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	result := &RosterResult{Employees: make([]types.Employee, 0, len(raw))}
	seen := make(map[int64]int, len(raw))
	for i, item := range raw {
		var rec types.EmployeeRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			result.Rejected = append(result.Rejected, RejectedRecord{Index: i, Reason: fmt.Sprintf("malformed record: %v", err)})
			continue
		}
		emp, err := rec.ToEmployee()
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedRecord{Index: i, EmployeeID: rec.EmployeeID, Reason: err.Error()})
			continue
		}
		if first, ok := seen[emp.ID]; ok {
			result.Rejected = append(result.Rejected, RejectedRecord{
				Index:      i,
				EmployeeID: emp.ID,
				Reason:     fmt.Sprintf("duplicate of record %d", first),
			})
			continue
		}
		seen[emp.ID] = i
		result.Employees = append(result.Employees, emp)
	}
	return result, nil
}

// MarshalRoster writes employees in the roster file format.
func MarshalRoster(employees []types.Employee) ([]byte, error) {
	records := make([]types.EmployeeRecord, len(employees))
	for i, e := range employees {
		records[i] = types.RecordFromEmployee(e)
	}
	return json.MarshalIndent(records, "", "  ")
}
