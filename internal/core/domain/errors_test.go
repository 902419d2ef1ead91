package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMapToSentinels(t *testing.T) {
	cases := map[string]struct {
		err      error
		sentinel error
	}{
		"invalid pattern":    {&InvalidPatternError{Raw: "("}, ErrInvalidPattern},
		"no such function":   {&NoSuchFunctionError{Name: "nope"}, ErrNoSuchFunction},
		"no match":           {&NoMatchError{Query: "foo"}, ErrNoMatch},
		"nothing to replace": {&NothingToReplaceError{}, ErrNothingToReplace},
		"empty scope":        {&EmptyScopeError{Where: WhereMarked, Reason: "no marked text"}, ErrEmptyScope},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.sentinel)
		})
	}
}

func TestNoMatchError_WrapHint(t *testing.T) {
	plain := &NoMatchError{Query: "foo"}
	assert.Equal(t, "no matches were found for foo", plain.Error())

	hinted := &NoMatchError{Query: "foo", WrapDisabled: true}
	assert.Contains(t, hinted.Error(), "search wrapping is off")
}

func TestNothingToReplaceError_Messages(t *testing.T) {
	assert.Equal(t,
		"you must first run find, before trying to replace",
		(&NothingToReplaceError{}).Error())
	assert.Equal(t,
		"currently selected text does not match the search query",
		(&NothingToReplaceError{SelectionMismatch: true}).Error())
}
