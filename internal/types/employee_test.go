package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHonorific(t *testing.T) {
	g, err := ParseHonorific(" السيد ")
	require.NoError(t, err)
	assert.Equal(t, GenderMale, g)

	g, err = ParseHonorific("السيدة")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	g, err = ParseHonorific("Mr")
	assert.Error(t, err)
	assert.Equal(t, GenderUnknown, g)
}

func TestGender_HonorificRoundTrip(t *testing.T) {
	for _, g := range []Gender{GenderMale, GenderFemale} {
		parsed, err := ParseHonorific(g.Honorific())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
	assert.Empty(t, GenderUnknown.Honorific())
}

func TestGender_JSON(t *testing.T) {
	data, err := json.Marshal(GenderFemale)
	require.NoError(t, err)
	assert.Equal(t, `"female"`, string(data))

	var g Gender
	require.NoError(t, json.Unmarshal([]byte(`"السيد"`), &g))
	assert.Equal(t, GenderMale, g)

	require.NoError(t, json.Unmarshal([]byte(`"other"`), &g))
	assert.Equal(t, GenderUnknown, g)
}

func TestEmployeeRecord_ToEmployee(t *testing.T) {
	rec := EmployeeRecord{
		EmployeeID:   42,
		FullName:     "  أحمد علي ",
		Gender:       HonorificMale,
		JobTitle:     "معلم",
		WorkLocation: "مدرسة النور",
		City:         "الرياض",
	}

	e, err := rec.ToEmployee()
	require.NoError(t, err)
	assert.Equal(t, int64(42), e.ID)
	assert.Equal(t, "أحمد علي", e.FullName)
	assert.Equal(t, GenderMale, e.Gender)
	assert.True(t, e.Valid())
	assert.Equal(t, NewGroupKey("مدرسة النور", "", "الرياض"), e.Key())
}

func TestEmployeeRecord_ToEmployee_Invalid(t *testing.T) {
	tests := []EmployeeRecord{
		{EmployeeID: 0, FullName: "x", Gender: HonorificMale},
		{EmployeeID: 1, FullName: "", Gender: HonorificMale},
		{EmployeeID: 1, FullName: "x", Gender: "Mr"},
	}
	for _, rec := range tests {
		_, err := rec.ToEmployee()
		assert.Error(t, err)
	}
}

func TestRecordFromEmployee(t *testing.T) {
	e := Employee{ID: 7, FullName: "فاطمة", Gender: GenderFemale, City: "جدة"}
	rec := RecordFromEmployee(e)
	assert.Equal(t, HonorificFemale, rec.Gender)

	back, err := rec.ToEmployee()
	require.NoError(t, err)
	assert.Equal(t, e, back)
}

func TestNewGroupKey_DefaultsEmptyFields(t *testing.T) {
	k := NewGroupKey(" ", "قسم", "")
	assert.Equal(t, NotAvailable, k.WorkLocation)
	assert.Equal(t, "قسم", k.Division)
	assert.Equal(t, NotAvailable, k.City)
	assert.Equal(t, k, NewGroupKey("", " قسم ", "  "))
}
