package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Go,JavaScript", []string{"Go", "JavaScript"}},
		{" Go , JavaScript ", []string{"Go", "JavaScript"}},
		{"Go,,JavaScript,", []string{"Go", "JavaScript"}},
		{" , ,", []string{}},
		{"Go", []string{"Go"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseSkills(tt.input), "input %q", tt.input)
	}
}

func TestBuildProfileFieldsSparseness(t *testing.T) {
	fields := buildProfileFields(profileRequest{
		Status: "Developer",
		Skills: "Go",
	})

	assert.Nil(t, fields.Company)
	assert.Nil(t, fields.Website)
	assert.Nil(t, fields.Bio)
	assert.NotNil(t, fields.Status)
	assert.Equal(t, []string{"Go"}, fields.Skills)
	// Social is rebuilt on every upsert, supplied keys or not.
	assert.NotNil(t, fields.Social)

	fields = buildProfileFields(profileRequest{
		Status:  "Developer",
		Skills:  "Go",
		Company: "Acme",
		Twitter: "https://twitter.com/acme",
	})
	assert.Equal(t, "Acme", *fields.Company)
	assert.Equal(t, "https://twitter.com/acme", fields.Social.Twitter)
}

func TestGravatarURL(t *testing.T) {
	a := gravatarURL("Ada@Example.com ")
	b := gravatarURL("ada@example.com")
	assert.Equal(t, a, b)
	assert.Contains(t, a, "https://www.gravatar.com/avatar/")
	assert.Contains(t, a, "s=200")
}
