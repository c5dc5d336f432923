package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterSchema_IsValidJSON(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(RosterSchema(), &doc))
	assert.Equal(t, "array", doc["type"])
}

func TestValidateRoster_Valid(t *testing.T) {
	data := []byte(`[
		{"employeeId": 1, "fullName": "أحمد علي", "gender": "السيد", "jobTitle": "معلم",
		 "workLocation": "مدرسة النور", "division": "التعليم", "city": "الرياض"},
		{"employeeId": 2, "fullName": "سارة", "gender": "السيدة"}
	]`)

	assert.NoError(t, ValidateRoster(data))
}

func TestValidateRoster_EmptyArray(t *testing.T) {
	assert.NoError(t, ValidateRoster([]byte(`[]`)))
}

func TestValidateRoster_RecordFieldsAreNotChecked(t *testing.T) {
	assert.NoError(t, ValidateRoster([]byte(`[{"employeeId": 1, "gender": "السيد"}, {"employeeId": "7"}]`)))
}

func TestValidateRoster_ItemNotAnObject(t *testing.T) {
	err := ValidateRoster([]byte(`[{"employeeId": 1}, "7"]`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "1", validationErr.Errors[0].Field)
}

func TestValidateRoster_NotAnArray(t *testing.T) {
	err := ValidateRoster([]byte(`{"employeeId": 1}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateRoster_MalformedJSON(t *testing.T) {
	err := ValidateRoster([]byte(`{ invalid json }`))
	require.Error(t, err)
	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "unparsable documents surface as load errors, got %T", err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "roster.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, RosterSchema(), 0644))

	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`[{"employeeId": 3, "fullName": "منى", "gender": "السيدة"}]`), 0644))
	assert.NoError(t, ValidateFile(schemaPath, valid))

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`[1, "two"]`), 0644))
	err := ValidateFile(schemaPath, invalid)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(validationErr.Errors), 2)
}

func TestValidateFile_NotFound(t *testing.T) {
	err := ValidateFile("testdata/nonexistent_schema.json", "roster.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "0.fullName", Message: "is required"},
			{Field: "1.employeeId", Message: "must be an integer"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "0.fullName")
	assert.Contains(t, errorMsg, "1.employeeId")
}
