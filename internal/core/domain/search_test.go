package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRequest_Validate(t *testing.T) {
	valid := SearchRequest{
		Find:      "foo",
		Mode:      ModeLiteral,
		Direction: DirectionDown,
		Where:     WhereCurrent,
	}

	t.Run("accepts a well-formed request", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("rejects unknown enumerations", func(t *testing.T) {
		for name, mutate := range map[string]func(*SearchRequest){
			"mode":      func(r *SearchRequest) { r.Mode = "fuzzy" },
			"direction": func(r *SearchRequest) { r.Direction = "sideways" },
			"where":     func(r *SearchRequest) { r.Where = "everywhere" },
		} {
			t.Run(name, func(t *testing.T) {
				r := valid
				mutate(&r)
				assert.ErrorIs(t, r.Validate(), ErrInvalidRequest)
			})
		}
	})

	t.Run("function mode requires a function name", func(t *testing.T) {
		r := valid
		r.Mode = ModeFunction
		assert.ErrorIs(t, r.Validate(), ErrInvalidRequest)

		r.Replace = "uppercase"
		assert.NoError(t, r.Validate())
	})
}

func TestMode(t *testing.T) {
	assert.False(t, ModeLiteral.IsRegex())
	assert.True(t, ModeRegex.IsRegex())
	assert.True(t, ModeFunction.IsRegex())
	assert.False(t, Mode("fuzzy").IsValid())
}

func TestWhere_IsGroup(t *testing.T) {
	assert.True(t, WhereText.IsGroup())
	assert.True(t, WhereStyles.IsGroup())
	assert.True(t, WhereSelected.IsGroup())
	assert.False(t, WhereCurrent.IsGroup())
	assert.False(t, WhereMarked.IsGroup())
}

func TestAction_IsExhaustive(t *testing.T) {
	assert.True(t, ActionReplaceAll.IsExhaustive())
	assert.True(t, ActionCount.IsExhaustive())
	assert.False(t, ActionFind.IsExhaustive())
	assert.False(t, ActionReplace.IsExhaustive())
	assert.False(t, ActionReplaceFind.IsExhaustive())
}

func TestCategoryForName(t *testing.T) {
	assert.Equal(t, CategoryText, CategoryForName("OEBPS/ch1.xhtml"))
	assert.Equal(t, CategoryText, CategoryForName("notes.TXT"))
	assert.Equal(t, CategoryStyles, CategoryForName("styles/main.css"))
	assert.Equal(t, CategoryOther, CategoryForName("cover.jpg"))
	assert.Equal(t, CategoryOther, CategoryForName("mimetype"))
}

func TestDefaults_NewRequest(t *testing.T) {
	d := DefaultSettings()
	req := d.NewRequest("foo", "bar")

	assert.Equal(t, "foo", req.Find)
	assert.Equal(t, "bar", req.Replace)
	assert.Equal(t, ModeLiteral, req.Mode)
	assert.Equal(t, DirectionDown, req.Direction)
	assert.Equal(t, WhereCurrent, req.Where)
	assert.True(t, req.Wrap)
	assert.False(t, req.CaseSensitive)
	require.NoError(t, req.Validate())
}
