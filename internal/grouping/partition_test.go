package grouping

import (
	"testing"

	"github.com/jonathan/invitation-letters/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emp(id int64, g types.Gender, loc, div, city string) types.Employee {
	return types.Employee{ID: id, FullName: "e", Gender: g, WorkLocation: loc, Division: div, City: city}
}

func TestPartition_GroupsByCompositeKey(t *testing.T) {
	invited := []types.Employee{
		emp(1, types.GenderMale, "مدرسة أ", "ابتدائي", "الرياض"),
		emp(2, types.GenderFemale, "مدرسة ب", "ابتدائي", "الرياض"),
		emp(3, types.GenderMale, "مدرسة أ", "ابتدائي", "الرياض"),
		emp(4, types.GenderMale, "مدرسة أ", "متوسط", "الرياض"),
		emp(5, types.GenderFemale, "مدرسة أ", "ابتدائي", "جدة"),
	}

	groups, skipped := Partition(invited)
	assert.Empty(t, skipped)
	require.Len(t, groups, 4)

	assert.Equal(t, types.NewGroupKey("مدرسة أ", "ابتدائي", "الرياض"), groups[0].Key)
	require.Len(t, groups[0].Members, 2)
	assert.Equal(t, int64(1), groups[0].Members[0].ID)
	assert.Equal(t, int64(3), groups[0].Members[1].ID)

	assert.Equal(t, int64(2), groups[1].Members[0].ID)
	assert.Equal(t, int64(4), groups[2].Members[0].ID)
	assert.Equal(t, int64(5), groups[3].Members[0].ID)
}

func TestPartition_IdentifiersAppearOnce(t *testing.T) {
	invited := []types.Employee{
		emp(1, types.GenderMale, "a", "", ""),
		emp(2, types.GenderMale, "b", "", ""),
		emp(1, types.GenderMale, "b", "", ""),
	}
	groups, skipped := Partition(invited)

	seen := map[int64]int{}
	for _, g := range groups {
		for _, m := range g.Members {
			seen[m.ID]++
		}
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "employee %d", id)
	}
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Reason, "duplicate")
}

func TestPartition_MissingFieldsDefaultToSentinel(t *testing.T) {
	groups, _ := Partition([]types.Employee{
		emp(1, types.GenderMale, "", "", ""),
		emp(2, types.GenderFemale, "  ", "", " "),
	})
	require.Len(t, groups, 1)
	assert.Equal(t, types.NotAvailable, groups[0].Key.WorkLocation)
	assert.Equal(t, types.NotAvailable, groups[0].Key.Division)
	assert.Equal(t, types.NotAvailable, groups[0].Key.City)
	assert.Len(t, groups[0].Members, 2)
}

func TestPartition_SkipsMalformedRecords(t *testing.T) {
	groups, skipped := Partition([]types.Employee{
		emp(0, types.GenderMale, "a", "", ""),
		emp(2, types.GenderUnknown, "a", "", ""),
		emp(3, types.GenderFemale, "a", "", ""),
	})
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 1)
	require.Len(t, skipped, 2)
	assert.Equal(t, "missing employee id", skipped[0].Reason)
	assert.Equal(t, "missing gender", skipped[1].Reason)
}

func TestPartition_Empty(t *testing.T) {
	groups, skipped := Partition(nil)
	assert.Empty(t, groups)
	assert.Empty(t, skipped)
}

func TestIsResponsible(t *testing.T) {
	assert.True(t, IsResponsible("رئيس القسم"))
	assert.True(t, IsResponsible("  وكيلة المدرسة "))
	assert.True(t, IsResponsible("رئيسة"))
	assert.False(t, IsResponsible(""))
	assert.False(t, IsResponsible("   "))
	assert.False(t, IsResponsible("معلم"))
}

func TestFindResponsible_FirstMatchInRosterOrder(t *testing.T) {
	first := emp(10, types.GenderMale, "مدرسة أ", "ابتدائي", "الرياض")
	first.PostResponsibility = "وكيل"
	second := emp(11, types.GenderFemale, "مدرسة أ", "ابتدائي", "الرياض")
	second.PostResponsibility = "رئيسة"
	other := emp(12, types.GenderMale, "مدرسة ب", "ابتدائي", "الرياض")
	other.PostResponsibility = "رئيس"

	roster := []types.Employee{
		emp(1, types.GenderMale, "مدرسة أ", "ابتدائي", "الرياض"),
		other, first, second,
	}

	got, ok := FindResponsible(roster, types.NewGroupKey("مدرسة أ", "ابتدائي", "الرياض"))
	require.True(t, ok)
	assert.Equal(t, int64(10), got.ID)

	_, ok = FindResponsible(roster, types.NewGroupKey("مدرسة ج", "", ""))
	assert.False(t, ok)
}

func TestFindResponsible_ComparesDefaultedKeys(t *testing.T) {
	boss := emp(5, types.GenderMale, "مدرسة أ", "", "")
	boss.PostResponsibility = "رئيس"

	got, ok := FindResponsible([]types.Employee{boss}, types.NewGroupKey("مدرسة أ", "", ""))
	require.True(t, ok)
	assert.Equal(t, int64(5), got.ID)
}
