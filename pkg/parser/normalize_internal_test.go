package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leapddl/pkg/dialects/generic"
)

func TestCaseNormalizer_Unquoted(t *testing.T) {
	n := newCaseNormalizer(generic.Generic)
	tests := []struct {
		in, want string
	}{
		{"varchar", "VARCHAR"},
		{"timestamp with time zone", "TIMESTAMP WITH TIME ZONE"},
		{"enum('a','B')", "ENUM('a','B')"},
		{"`my type`", "`my type`"},
		{"app.\"Mood\"", "APP.\"Mood\""},
		{"[dbo].ssn", "[dbo].SSN"},
		{"text 'unterminated", "TEXT 'unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, n.unquoted(tt.in))
		})
	}
}

func TestCaseNormalizer_Generator(t *testing.T) {
	n := newCaseNormalizer(generic.Generic)
	s := func(v string) *string { return &v }

	assert.Nil(t, n.generator(nil))
	assert.Equal(t, "CURRENT_TIMESTAMP(3)", *n.generator(s("current_timestamp(3)")))
	assert.Equal(t, "NOW()", *n.generator(s("now()")))
	assert.Equal(t, "my_func()", *n.generator(s("my_func()")))
	assert.Equal(t, "'now()'", *n.generator(s("'now()'")))
	assert.Equal(t, "-1", *n.generator(s("-1")))
}
