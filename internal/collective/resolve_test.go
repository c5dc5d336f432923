package collective

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/invitation-letters/internal/grammar"
	"github.com/jonathan/invitation-letters/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func male(id int64, name, title string) types.Employee {
	return types.Employee{ID: id, FullName: name, Gender: types.GenderMale, JobTitle: title, City: "الرياض"}
}

func female(id int64, name, title string) types.Employee {
	return types.Employee{ID: id, FullName: name, Gender: types.GenderFemale, JobTitle: title, City: "الرياض"}
}

func TestResolve_EmptyGroup(t *testing.T) {
	got := NewResolver(nil).Resolve(nil)
	if diff := cmp.Diff(types.CollectiveTitles{}, got); diff != "" {
		t.Errorf("Resolve(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SingleMale(t *testing.T) {
	got := NewResolver(nil).Resolve([]types.Employee{male(1, "Ahmed", "معلم")})

	want := types.CollectiveTitles{
		City:                "الرياض",
		MaleCollectiveTitle: "بالسيد Ahmed",
		CollectiveTitle:     "بالسيد Ahmed",
		ContextualPronoun:   "المعني",
		AgreedJobTitle:      "معلم",
		InviteeNames:        "Ahmed",
		MaleCount:           1,
		Total:               1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SingleFemale(t *testing.T) {
	got := NewResolver(nil).Resolve([]types.Employee{female(1, "فاطمة", "معلم")})
	assert.Equal(t, "بالسيدة فاطمة", got.CollectiveTitle)
	assert.Empty(t, got.MaleCollectiveTitle)
	assert.Equal(t, "المعنية", got.ContextualPronoun)
	assert.Equal(t, "معلمة", got.AgreedJobTitle)
}

func TestResolve_TwoFemales(t *testing.T) {
	got := NewResolver(nil).Resolve([]types.Employee{
		female(1, "فاطمة", "معلمة"),
		female(2, "مريم", "معلمة"),
	})
	assert.Equal(t, "بالسيدتين فاطمة ومريم", got.CollectiveTitle)
	assert.Equal(t, got.CollectiveTitle, got.FemaleCollectiveTitle)
	assert.NotContains(t, got.CollectiveTitle, " والسيدتين")
	assert.Equal(t, "المعنيتين", got.ContextualPronoun)
	assert.Equal(t, "معلمتي", got.AgreedJobTitle)
	assert.Equal(t, "فاطمة ومريم", got.InviteeNames)
}

func TestResolve_MaleAndFemale(t *testing.T) {
	got := NewResolver(nil).Resolve([]types.Employee{
		female(2, "مريم", "معلمة"),
		male(1, "أحمد", "معلم"),
	})
	assert.Equal(t, "بالسيد أحمد", got.MaleCollectiveTitle)
	assert.Equal(t, "والسيدة مريم", got.FemaleCollectiveTitle)
	assert.Equal(t, "بالسيد أحمد والسيدة مريم", got.CollectiveTitle)
	assert.Equal(t, "المعنيين", got.ContextualPronoun)
	// The first member is female but a mixed pair agrees in the masculine.
	assert.Equal(t, "معلمي", got.AgreedJobTitle)
	assert.Equal(t, "مريم وأحمد", got.InviteeNames)
	assert.Equal(t, 1, got.MaleCount)
	assert.Equal(t, 1, got.FemaleCount)
}

func TestResolve_PluralWithOneMale(t *testing.T) {
	d := grammar.Default()
	got := NewResolver(d).Resolve([]types.Employee{
		female(1, "فاطمة", "وكيلة"),
		female(2, "مريم", "وكيلة"),
		male(3, "خالد", "وكيل"),
	})
	assert.Equal(t, "بالسيد خالد والسيدتين فاطمة ومريم", got.CollectiveTitle)
	assert.Equal(t, d.Pronouns.Masculine.Plural, got.ContextualPronoun)
	assert.Equal(t, "وكلاء", got.AgreedJobTitle)
	assert.Equal(t, 3, got.Total)
}

func TestResolve_PluralFemales(t *testing.T) {
	got := NewResolver(nil).Resolve([]types.Employee{
		female(1, "أ", "مشرفة"),
		female(2, "ب", "مشرفة"),
		female(3, "ج", "مشرفة"),
	})
	assert.Equal(t, "بالسيدات أ وب وج", got.CollectiveTitle)
	assert.Equal(t, "المعنيات", got.ContextualPronoun)
	assert.Equal(t, "مشرفات", got.AgreedJobTitle)
}

func TestResolve_PluralMales(t *testing.T) {
	got := NewResolver(nil).Resolve([]types.Employee{
		male(1, "أ", "رئيس قسم"),
		male(2, "ب", "رئيس قسم"),
		male(3, "ج", "رئيس قسم"),
	})
	assert.Equal(t, "بالسادة أ وب وج", got.CollectiveTitle)
	assert.Equal(t, "رؤساء أقسام", got.AgreedJobTitle)
}

func TestResolve_UnknownTitlePassesThrough(t *testing.T) {
	got := NewResolver(nil).Resolve([]types.Employee{
		male(1, "أ", "Pilot"),
		male(2, "ب", "معلم"),
	})
	assert.Equal(t, "Pilot", got.AgreedJobTitle)
}

func TestResolve_FeminineDualTitleNormalized(t *testing.T) {
	got := NewResolver(nil).Resolve([]types.Employee{
		male(1, "أ", "ممفتشتي"),
	})
	assert.Equal(t, "مفتش", got.AgreedJobTitle)
}

func TestResolve_Idempotent(t *testing.T) {
	r := NewResolver(nil)
	members := []types.Employee{
		male(1, "أ", "مدير"),
		female(2, "ب", "مديرة"),
		female(3, "ج", "مديرة"),
	}
	snapshot := append([]types.Employee(nil), members...)

	first := r.Resolve(members)
	second := r.Resolve(members)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Resolve not idempotent (-first +second):\n%s", diff)
	}
	require.Equal(t, snapshot, members)
}

func TestAgreementLaw(t *testing.T) {
	d := grammar.Default()
	r := NewResolver(d)

	single := r.Resolve([]types.Employee{female(1, "أ", "")})
	assert.Equal(t, d.Pronouns.Feminine.Singular, single.ContextualPronoun)
	assert.Contains(t, single.CollectiveTitle, d.Honorifics.Feminine.Singular)

	pair := r.Resolve([]types.Employee{male(1, "أ", ""), male(2, "ب", "")})
	assert.Equal(t, d.Pronouns.Masculine.Dual, pair.ContextualPronoun)
	assert.Equal(t, Preposition+d.Honorifics.Masculine.Dual+" أ وب", pair.CollectiveTitle)
	assert.Empty(t, pair.AgreedJobTitle)
}
